package main

import (
	"github.com/phanxgames/flipbook"
	"github.com/phanxgames/flipbook/internal/bookmark"
	"github.com/phanxgames/flipbook/internal/config"
	"github.com/phanxgames/flipbook/internal/logger"
)

// openBookmarks opens the configured bookmark storage. Storage failures are
// logged and degrade to a store that remembers nothing.
func openBookmarks(cfg *config.File, disabled bool, log *logger.Logger) *bookmark.Store {
	if disabled || !cfg.Bookmark.Enabled {
		return bookmark.Memoryless()
	}
	store, err := bookmark.Open(cfg.Bookmark.AppName)
	if err != nil {
		log.Error(err, "bookmarks disabled")
		return bookmark.Memoryless()
	}
	return store
}

// restoreBookmark places book at the saved position, if any.
func restoreBookmark(book *flipbook.Book, store *bookmark.Store, log *logger.Logger) {
	rec, found, err := store.Load()
	if err != nil {
		log.Error(err, "ignoring saved bookmark")
		return
	}
	if !found {
		return
	}
	book.Restore(rec.Position(book.Config().PageCount))
	log.WithFields(map[string]any{"progress": book.Progress()}).Info("bookmark restored")
}

func saveBookmark(book *flipbook.Book, store *bookmark.Store, log *logger.Logger) {
	if err := store.Save(book.Progress(), book.Config().PageCount); err != nil {
		log.Error(err, "saving bookmark")
	}
}
