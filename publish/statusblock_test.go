package publish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerAppearsInStatusBlock(t *testing.T) {
	// The idempotence guard is a raw substring match, so the banner must
	// contain the marker exactly as Confluence stores it.
	assert.True(t, strings.Contains(StatusBlock, Marker))
}

func TestMarkerIsStorageEscaped(t *testing.T) {
	// Confluence persists "&" as "&amp;" in storage format; an unescaped
	// marker would never match a stored page body.
	assert.Contains(t, Marker, "&amp;")
	assert.NotContains(t, StatusBlock, "Status & Rollout")
}

func TestCompose(t *testing.T) {
	composed := Compose("<h2>banner</h2>", "<p>existing</p>")

	assert.Equal(t, "<h2>banner</h2>\n\n<p>existing</p>", composed)
	assert.True(t, strings.HasPrefix(composed, "<h2>banner</h2>"))
	assert.True(t, strings.HasSuffix(composed, "<p>existing</p>"))
}
