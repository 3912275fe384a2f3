package publish

// Marker identifies a banner that has already been applied to a page.  The
// check is a raw substring match against the page's storage-format body, so
// the text here has to appear exactly as Confluence persists it -- i.e. with
// the ampersand HTML-escaped.  If Confluence ever changes its storage
// escaping, the match silently stops finding old banners and pages get
// stamped twice.
const Marker = "Platform Status &amp; Rollout Report"

// Separator sits between the banner and the page's previous content.
const Separator = "\n\n"

// StatusBlock is the default banner, in Confluence storage format.  It is
// prepended wholesale; existing page content is never touched.
const StatusBlock = `<ac:structured-macro ac:name="info">
  <ac:rich-text-body>
    <p><strong>Platform Status &amp; Rollout Report</strong></p>
    <p>This banner was published automatically and reflects the state of the rollout as of the last publish run.</p>
  </ac:rich-text-body>
</ac:structured-macro>

<h2>Platform Status &amp; Rollout Report</h2>

<ac:structured-macro ac:name="panel" ac:schema-version="1">
  <ac:parameter ac:name="bgColor">#deebff</ac:parameter>
  <ac:rich-text-body>
    <p><strong>Current milestone:</strong> ingestion pipeline v2 rollout</p>
    <ul>
      <li>All services migrated to the v2 ingestion path</li>
      <li>Backfill of historical loads complete</li>
      <li>Dashboards and alerts updated for the new pipeline</li>
    </ul>
  </ac:rich-text-body>
</ac:structured-macro>

<p><ac:structured-macro ac:name="status"><ac:parameter ac:name="colour">Green</ac:parameter><ac:parameter ac:name="title">ON TRACK</ac:parameter></ac:structured-macro></p>

<hr/>`

// Compose prepends a banner to a page's existing body.  Prepend, never
// append, never replace: the old content is only pushed down.
func Compose(banner, body string) string {
	return banner + Separator + body
}
