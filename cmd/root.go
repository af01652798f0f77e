package cmd

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/vkazakov/repetitor/internal/blob"
	"github.com/vkazakov/repetitor/internal/chat"
	"github.com/vkazakov/repetitor/internal/gemini"
	"github.com/vkazakov/repetitor/internal/logger"
	"github.com/vkazakov/repetitor/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "repetitor",
	Short: "TUI English tutor for school students, powered by Gemini",
	Long: `Repetitor is a terminal chat client for an AI English tutor.
Conversations are organized into sessions, each with its own learning mode,
difficulty level, and model. Sessions are saved locally and survive restarts.

Requires the GEMINI_API_KEY environment variable.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("repetitor %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("repetitor %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir, err := blob.DefaultDir()
	if err != nil {
		return fmt.Errorf("error locating storage directory: %w", err)
	}
	store, err := blob.NewFileStore(dir)
	if err != nil {
		return fmt.Errorf("error opening storage: %w", err)
	}

	gen, err := gemini.New(context.Background())
	if err != nil {
		return fmt.Errorf("%v\n\nSet GEMINI_API_KEY and try again", err)
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	m := ui.NewModel(chat.New(store, gen))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
