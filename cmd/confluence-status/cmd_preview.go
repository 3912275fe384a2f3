/*
Copyright © 2025 pencilcase
*/
package main

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pencilcase/confluence-status/publish"
)

var previewUsage = strings.TrimSpace(`
Render the status banner as Markdown on stdout.

The banner is stored in Confluence storage format, which is hard to eyeball.
This renders what would be published, without talking to Confluence at all.
`)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the status banner as Markdown",
	Long:  previewUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview()
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&BannerFile, "banner-file", "", "storage-format file to preview instead of the built-in banner")
}

type previewHeader struct {
	Source string `yaml:"source"`
	Marker string `yaml:"marker"`
}

func runPreview() error {
	banner, err := loadBanner()
	if err != nil {
		return err
	}

	source := "built-in"
	if BannerFile != "" {
		source = BannerFile
	}
	if banner == "" {
		banner = publish.StatusBlock
	}

	converter := md.NewConverter("", true, nil)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())

	markdown, err := converter.ConvertString(banner)
	if err != nil {
		return fmt.Errorf("cmd: failed to convert banner to Markdown: %w", err)
	}

	yamlHeader, err := yaml.Marshal(previewHeader{
		Source: source,
		Marker: publish.Marker,
	})
	if err != nil {
		return fmt.Errorf("cmd: couldn't marshal header YAML: %w", err)
	}

	fmt.Printf(`---
%s---
%s
`,
		string(yamlHeader),
		markdown)

	return nil
}
