/*
Copyright © 2025 pencilcase
*/
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pencilcase/confluence-status/confluence"
)

var listPagesUsage = strings.TrimSpace(`
Print the pages of a space, in the order the publisher would visit them.
`)

var OutputFormat string

var listPagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "Print list of pages in a space",
	Long:  listPagesUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if Space == "" {
			return fmt.Errorf("cmd: no space key set, use --space or set it in your config file")
		}

		api, err := newAPIClient()
		if err != nil {
			return err
		}

		log.Printf("Listing pages in space %s...\n", Space)
		pages, err := api.ListAllContent(ctx, confluence.ContentQuery{
			SpaceKey: Space,
			Type:     "page",
			Limit:    100,
		})
		if err != nil {
			return fmt.Errorf("cmd: couldn't list pages in space %s: %w", Space, err)
		}

		log.Printf("Found %d pages in '%s'.\n", len(pages), Space)

		switch OutputFormat {
		case "yaml":
			type pageLine struct {
				ID    string `yaml:"id"`
				Title string `yaml:"title"`
			}
			lines := make([]pageLine, 0, len(pages))
			for _, page := range pages {
				lines = append(lines, pageLine{ID: page.ID, Title: page.Title})
			}
			out, err := yaml.Marshal(lines)
			if err != nil {
				return fmt.Errorf("cmd: couldn't marshal page list: %w", err)
			}
			fmt.Print(string(out))

		case "text":
			for i, page := range pages {
				fmt.Printf("  %d. %s (ID: %s)\n", i+1, page.Title, page.ID)
			}

		default:
			return fmt.Errorf("cmd: unknown output format %q, expected text or yaml", OutputFormat)
		}

		return nil
	},
}

func init() {
	listCmd.AddCommand(listPagesCmd)

	listPagesCmd.Flags().StringVarP(&OutputFormat, "output", "o", "text", "output format: text or yaml")
}
