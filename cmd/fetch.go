package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/brogergvhs/apodd/internal/apod"
	"github.com/brogergvhs/apodd/internal/ui"
	"github.com/brogergvhs/apodd/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagSave    bool
	flagPreview bool
)

var (
	// stdoutIsTerminal decides whether fetch draws a progress bar.
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	progressOutput   io.Writer = os.Stdout
)

func init() {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch today's picture and print what was found. Uses the defaults from the selected config, overwritten by CLI flags",
		RunE:  runFetch,
	}

	fetchCmd.Flags().BoolVar(&flagSave, "save", false, "save the picture as PNG after fetching")
	fetchCmd.Flags().BoolVar(&flagPreview, "preview", false, "print a colour preview of the picture")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Fetch today's picture and save it as PNG into the save directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagSave = true
			return runFetch(cmd, args)
		},
	}

	rootCmd.AddCommand(fetchCmd, saveCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, usedPath, err := loadConfig()
	if err != nil {
		return err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if cfg.Debug {
		fmt.Printf("Config file: %s\n", usedPath)
		cfg.Print()
		fmt.Println()
	}

	ctx, cancel := util.SetupInterruptHandler(cmd.Context())
	defer cancel()

	interactive := stdoutIsTerminal()

	var pm *ui.MPBProgressManager
	opts := apod.Options{}
	if interactive {
		pm = ui.NewProgressManager(progressOutput)
		opts.NewProgress = pm.Factory("image")
	}

	fetcher, err := newFetcher(cfg, logSvc, opts)
	if err != nil {
		if pm != nil {
			pm.Close()
		}
		return err
	}

	err = fetcher.FetchLatest(ctx)
	if pm != nil {
		pm.Close()
	}
	if err != nil {
		return err
	}

	printSummary(fetcher.Snapshot())

	if flagPreview {
		printPreview(fetcher.Snapshot(), interactive)
	}

	if flagSave {
		path, err := fetcher.OnUserSaveRequested()
		if err != nil {
			return err
		}
		fmt.Println("Saved to:", path)
	} else if dir := cfg.SaveDirectory(); dir != "" {
		fmt.Printf("\nRun `apodd save` to write %s\n", apod.PNGPath(dir, fetcher.Snapshot().Filename))
	}

	return nil
}

func printSummary(snap apod.ImageContext) {
	w, h := snap.Dimensions()

	fmt.Println()
	fmt.Printf("Title:    %s\n", snap.Title)
	fmt.Printf("File:     %s\n", snap.Filename)
	fmt.Printf("Source:   %s\n", snap.SourceURL)
	fmt.Printf("Size:     %dx%d\n", w, h)
	fmt.Printf("Data:     %s\n", util.Human(snap.Bytes))
	fmt.Printf("Status:   %s\n", snap.Status)
}

func printPreview(snap apod.ImageContext, interactive bool) {
	cols, rows := 80, 24
	if interactive {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols, rows = w, h-1
		}
	}

	fmt.Println()
	fmt.Println(ui.RenderHalfBlocks(snap.ImageData, cols, rows))
}
