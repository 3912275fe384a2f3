/*
Copyright © 2025 pencilcase
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"

	"github.com/pencilcase/confluence-status/publish"
)

var publishUsage = strings.TrimSpace(`
Prepend the status banner to every page in a space.

Pages that already contain the banner marker are left untouched, so running
this twice in a row is safe: the second run writes nothing.
`)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Prepend the status banner to every page in a space",
	Long:  publishUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		debugLog("  DryRun: %v\n", DryRun)
		return runPublish(ctx)
	},
}

var (
	Workers        int
	DryRun         bool
	WithVCR        bool
	VersionMessage string
	BannerFile     string
)

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().IntVar(&Workers, "workers", 1, "number of pages to process concurrently")
	publishCmd.Flags().BoolVarP(&DryRun, "dry-run", "n", false, "report what would change without writing anything")
	publishCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
	publishCmd.Flags().StringVarP(&VersionMessage, "message", "m", "Prepended status banner", "version message recorded against each page update")
	publishCmd.Flags().StringVar(&BannerFile, "banner-file", "", "storage-format file to publish instead of the built-in banner")
}

func runPublish(ctx context.Context) error {
	if Space == "" {
		return fmt.Errorf("cmd: no space key set, use --space or set it in your config file")
	}

	api, err := newAPIClient()
	if err != nil {
		return err
	}

	if WithVCR {
		// set up VCR recordings.
		opts := &recorder.Options{
			CassetteName:       "fixtures/confluence-status",
			Mode:               recorder.ModeReplayWithNewEpisodes,
			SkipRequestLatency: true,
			RealTransport:      http.DefaultTransport,
		}
		r, err := recorder.NewWithOptions(opts)
		if err != nil {
			return fmt.Errorf("cmd: couldn't set up go-vcr recording: %w", err)
		}

		defer r.Stop() // Make sure recorder is stopped once done with it

		// Add a hook which removes Authorization headers from all requests
		hook := func(i *cassette.Interaction) error {
			delete(i.Request.Headers, "Authorization")
			return nil
		}
		r.AddHook(hook, recorder.AfterCaptureHook)
		r.SetReplayableInteractions(true)

		api.Client = r.GetDefaultClient()
	}

	// get current user information
	currentUser, err := api.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("cmd: couldn't query current user: %w", err)
	}

	fmt.Printf("Logged in to id.atlassian.com as '%s (%s)'...\n", currentUser.DisplayName, currentUser.AccountID)

	banner, err := loadBanner()
	if err != nil {
		return err
	}

	publisher := &publish.Publisher{
		API:            api,
		Banner:         banner,
		Message:        VersionMessage,
		Workers:        Workers,
		DryRun:         DryRun,
		Logger:         log.New(os.Stdout, "", 0),
		ProgressOutput: os.Stdout,
	}

	report, err := publisher.Run(ctx, Space)
	if err != nil {
		return fmt.Errorf("cmd: publish run failed: %w", err)
	}

	fmt.Printf("\nSpace %s: %d updated, %d already stamped, %d fetch failures, %d write failures.\n",
		report.SpaceKey,
		report.Count(publish.Updated),
		report.Count(publish.SkippedMarker),
		report.Count(publish.FetchFailed),
		report.Count(publish.WriteFailed))

	if DryRun {
		fmt.Printf("Dry run: %d pages would have been updated.\n", report.Count(publish.WouldUpdate))
	}

	if report.Failed() {
		return fmt.Errorf("cmd: %d page update(s) failed", report.Count(publish.WriteFailed))
	}

	return nil
}

// loadBanner returns the banner to publish: the contents of --banner-file if
// given, otherwise empty, which makes the publisher use its built-in block.
func loadBanner() (string, error) {
	if BannerFile == "" {
		return "", nil
	}

	raw, err := os.ReadFile(BannerFile)
	if err != nil {
		return "", fmt.Errorf("cmd: couldn't read banner file: %w", err)
	}

	banner := string(raw)
	if !strings.Contains(banner, publish.Marker) {
		// Without the marker inside the banner, a second run would stamp
		// every page again.
		return "", fmt.Errorf("cmd: banner file doesn't contain the marker %q, updates wouldn't be idempotent", publish.Marker)
	}

	return banner, nil
}
