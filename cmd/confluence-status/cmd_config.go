/*
Copyright © 2025 pencilcase
*/
package main

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands about configuration",
	Long: `
Commands in this namespace help you inspect the tool's configuration.
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
