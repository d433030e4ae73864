package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/draftsmith/draftsmith/internal/config"
	"github.com/draftsmith/draftsmith/version"
)

var (
	cfgFile string
	homeDir string
)

var rootCmd = &cobra.Command{
	Use:   "draftsmith",
	Short: "LLM-powered legal document drafting pipeline",
	Long: `Draftsmith turns two sample legal documents and a case summary into a
complete first draft, section by section.

The pipeline includes:
  - Blueprint discovery: the section structure shared by the samples
  - Per-section template extraction from both samples
  - Draft generation against the case summary
  - Assembly as flowing text or a formatted .docx`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.draftsmith/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "draftsmith home directory (default: ~/.draftsmith)",
	)

	// Pick up API keys from a local .env before config resolution runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}

// loadConfig creates the config manager, preferring an explicit --config
// path, then the home directory's config.yaml when present.
func loadConfig() (*config.Manager, error) {
	return config.NewManager(cfgFile)
}
