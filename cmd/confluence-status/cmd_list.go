/*
Copyright © 2025 pencilcase
*/
package main

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Commands to list items",
	Long: `
Commands in this namespace are to help you explore the Confluence wiki before
publishing anything to it.
`,
}

func init() {
	rootCmd.AddCommand(listCmd)
}
