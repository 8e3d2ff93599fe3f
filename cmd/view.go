package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/brogergvhs/apodd/internal/apod"
	"github.com/brogergvhs/apodd/internal/ui"
	"github.com/brogergvhs/apodd/internal/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var flagNoFetch bool

func init() {
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive viewer (default command)",
		RunE:  runView,
	}

	for _, c := range []*cobra.Command{rootCmd, viewCmd} {
		c.Flags().BoolVar(&flagNoFetch, "no-fetch", false, "do not fetch on start, wait for r")
	}

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	// The viewer owns the terminal, so logs only go to a file.
	logSvc := ui.NewLogger(cfg.Debug)
	logSvc.SetOutput(io.Discard)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(util.ExpandHome(cfg.LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logSvc.SetOutput(f)
	}

	fetcher, err := newFetcher(cfg, logSvc, apod.Options{Reporter: logSvc})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		ui.NewViewer(ui.ViewerOptions{
			Context:      cmd.Context(),
			Fetcher:      fetcher,
			FetchOnStart: cfg.FetchOnStart,
		}),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)

	if _, err := p.Run(); err != nil {
		logSvc.Errorf("viewer stopped: %v\n", err)
		return fmt.Errorf("viewer: %w", err)
	}

	return nil
}
