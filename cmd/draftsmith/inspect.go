package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draftsmith/draftsmith/internal/docio"
	"github.com/draftsmith/draftsmith/internal/formatting"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE.docx",
	Short: "Report the formatting of each block in a .docx file",
	Long: `Report the formatting of each paragraph and table in a .docx file,
in the shape a word processor's formatting panel would show: font,
alignment, indentation, spacing and page geometry.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		doc, err := docio.ReadDocx(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		out, err := json.MarshalIndent(formatting.Inspect(doc), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
