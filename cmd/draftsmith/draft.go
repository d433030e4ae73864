package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftsmith/draftsmith/internal/docio"
	"github.com/draftsmith/draftsmith/internal/home"
	"github.com/draftsmith/draftsmith/internal/pipeline"
	"github.com/draftsmith/draftsmith/internal/providers"
	"github.com/draftsmith/draftsmith/internal/store"
)

var (
	draftCaseSummary string
	draftCaseFile    string
	draftReference   string
	draftOut         string
)

var draftCmd = &cobra.Command{
	Use:   "draft SAMPLE1 SAMPLE2",
	Short: "Draft a document from two samples and a case summary",
	Long: `Draft a legal document from two sample documents of the same type.

The samples establish the section structure and per-section boilerplate;
the case summary supplies the facts. Samples may be .docx or plain text.

The draft is written to stdout, or to --out. An --out path ending in
.docx produces a formatted document; pass --reference to transfer the
formatting of an existing .docx onto it.

Examples:
  draftsmith draft a.docx b.docx --case-summary "Smith v. Jones, breach of contract"
  draftsmith draft a.txt b.txt --case-file facts.txt --out draft.docx --reference style.docx`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		caseSummary := draftCaseSummary
		if caseSummary == "" && draftCaseFile != "" {
			data, err := os.ReadFile(draftCaseFile)
			if err != nil {
				return err
			}
			caseSummary = strings.TrimSpace(string(data))
		}
		if caseSummary == "" {
			return fmt.Errorf("a case summary is required (--case-summary or --case-file)")
		}

		sample1, err := readSample(args[0])
		if err != nil {
			return err
		}
		sample2, err := readSample(args[1])
		if err != nil {
			return err
		}

		req := &pipeline.Request{
			Sample1:     sample1,
			Sample2:     sample2,
			CaseSummary: caseSummary,
			DocxOutput:  strings.EqualFold(filepath.Ext(draftOut), ".docx"),
		}

		if draftReference != "" {
			data, err := os.ReadFile(draftReference)
			if err != nil {
				return err
			}
			ref, err := docio.ReadDocx(data)
			if err != nil {
				return fmt.Errorf("reference %s: %w", draftReference, err)
			}
			req.Reference = ref
		}

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()
		logger := newLogger(cfg.LogLevel)

		llm, err := providers.New(cfg.ToProviderConfig())
		if err != nil {
			return err
		}

		storageDir := cfg.Storage.Dir
		if storageDir == "" {
			storageDir = h.StoragePath()
		}
		p := pipeline.New(llm, logger,
			pipeline.WithTemplateStore(store.NewTemplateStore(storageDir, cfg.Storage.PerRequest)),
			pipeline.WithAssignMode(cfg.Drafting.FormattingAssignment),
		)

		result, err := p.Run(ctx, req)
		if err != nil {
			return err
		}

		if req.DocxOutput {
			if err := os.WriteFile(draftOut, result.Docx, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "draft written to %s\n", draftOut)
			return nil
		}
		if draftOut != "" {
			if err := os.WriteFile(draftOut, []byte(result.FinalDraft+"\n"), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "draft written to %s\n", draftOut)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.FinalDraft)
		return nil
	},
}

// readSample loads a sample document from disk and decodes it to text.
func readSample(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := docio.FileToText(path, data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

func init() {
	draftCmd.Flags().StringVar(&draftCaseSummary, "case-summary", "", "Case facts as a string")
	draftCmd.Flags().StringVar(&draftCaseFile, "case-file", "", "File containing the case facts")
	draftCmd.Flags().StringVar(&draftReference, "reference", "", "Reference .docx whose formatting is transferred to the output")
	draftCmd.Flags().StringVar(&draftOut, "out", "", "Output path (.docx for a formatted document; default stdout)")

	rootCmd.AddCommand(draftCmd)
}
