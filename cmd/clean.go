package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vkazakov/repetitor/internal/blob"
	"github.com/vkazakov/repetitor/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all saved chats and log files",
	Long: `Deletes the saved application state (all chat sessions, the active
selection, and the theme) along with the debug log file.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	dir, err := blob.DefaultDir()
	if err != nil {
		return fmt.Errorf("error locating storage directory: %w", err)
	}
	store, err := blob.NewFileStore(dir)
	if err != nil {
		return fmt.Errorf("error opening storage: %w", err)
	}

	if !skipConfirm {
		fmt.Printf("This will delete all saved chats in %s and the log file. Continue? [y/N] ", dir)
		reader := bufio.NewReader(input)
		answer, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("error reading confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := store.Clear()
	if err != nil {
		return fmt.Errorf("error clearing saved chats: %w", err)
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Printf("Removed %d state file(s).\n", removed)
	if logsCleared > 0 {
		fmt.Printf("Removed %d log file(s).\n", logsCleared)
	}
	return nil
}
