package main

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/flipbook"
	"github.com/phanxgames/flipbook/internal/tui"
)

type tuiOptions struct {
	fps        int
	noBookmark bool
}

func newTUICmd(rootFlags *rootFlags) *cobra.Command {
	opts := &tuiOptions{}

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Flip through the book in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, rootFlags, opts)
		},
	}

	cmd.Flags().IntVar(&opts.fps, "fps", 60, "Frames per second")
	cmd.Flags().BoolVar(&opts.noBookmark, "no-bookmark", false, "Neither restore nor save the reading position")

	return cmd
}

func runTUI(cmd *cobra.Command, rootFlags *rootFlags, opts *tuiOptions) error {
	cfg, err := loadConfig("tui", rootFlags)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, "tui", rootFlags, cfg)
	if err != nil {
		return err
	}

	book, err := flipbook.NewBook(cfg.Book)
	if err != nil {
		return newCommandError("tui", "creating book", err, "Check the book section of your config.")
	}
	defer book.Dispose()

	store := openBookmarks(cfg, opts.noBookmark, log)
	restoreBookmark(book, store, log)

	_, err = tui.Run(cmd.Context(), book, opts.fps)
	saveBookmark(book, store, log)
	if err != nil {
		return newCommandError("tui", "running the terminal interface", err, "Run flipbook from an interactive terminal.")
	}
	return nil
}
