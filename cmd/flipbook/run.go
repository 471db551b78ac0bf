package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/flipbook"
)

type runOptions struct {
	scriptPath string
	page       float64
	noBookmark bool
}

func newRunCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &runOptions{page: -1}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the book in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "Replay a JSON input script")
	cmd.Flags().Float64Var(&opts.page, "progress", -1, "Open at this progress instead of the bookmark")
	cmd.Flags().BoolVar(&opts.noBookmark, "no-bookmark", false, "Neither restore nor save the reading position")

	return cmd
}

func runWindow(cmd *cobra.Command, rootFlags *rootFlags, opts *runOptions) error {
	cfg, err := loadConfig("run", rootFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, "run", rootFlags, cfg)
	if err != nil {
		return err
	}

	book, err := flipbook.NewBook(cfg.Book)
	if err != nil {
		return newCommandError("run", "creating book", err, "Check the book section of your config.")
	}

	store := openBookmarks(cfg, opts.noBookmark, log)
	if opts.page >= 0 {
		book.Restore(opts.page)
	} else {
		restoreBookmark(book, store, log)
	}

	w := flipbook.NewWidget(book)
	w.SetLogger(log.Zerolog())
	w.SetDebugMode(rootFlags.debug || cfg.Log.Debug)
	if cfg.Window.ScreenshotDir != "" {
		w.ScreenshotDir = cfg.Window.ScreenshotDir
	}

	if opts.scriptPath != "" {
		runner, err := loadScript(opts.scriptPath)
		if err != nil {
			return newCommandError("run", "loading script", err, "Check the script's JSON and action names.")
		}
		w.SetScript(runner)
	}

	// The widget disposes the book on exit; the store keeps the last target.
	err = flipbook.Run(w, flipbook.RunConfig{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		TPS:        cfg.Window.TPS,
		Resizable:  cfg.Window.Resizable,
		Fullscreen: cfg.Window.Fullscreen,
		ShowFPS:    cfg.Window.ShowFPS,
	})
	saveBookmark(book, store, log)
	if err != nil {
		return newCommandError("run", "running the window", err, "Make sure a display is available, or try 'flipbook tui'.")
	}
	return nil
}

func loadScript(path string) (*flipbook.ScriptRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return flipbook.ParseScript(data)
}
