// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package feed delivers catalog favorite changes to observers outside the process.

The store notifies synchronously; everything in this package hands the change
off to a buffered queue so that slow network peers never delay a toggle.

Observers:

  - Broadcaster: Server-Sent Events stream for presentation clients.
  - RedisRelay: Optional pub/sub relay for other consumers of the same events.
*/
package feed

import (
	"time"

	"github.com/taibuivan/yomira-kids/internal/core/book"
)

// Message is the wire form of a [book.Change].
//
// It carries the identity and new state of the book, not its pages; clients
// refetch the book when they need content.
type Message struct {
	Type          book.ChangeType `json:"type"`
	BookID        string          `json:"book_id"`
	Title         string          `json:"title"`
	IsFavorite    bool            `json:"is_favorite"`
	FavoriteCount int             `json:"favorite_count"`
	At            time.Time       `json:"at"`
}

// NewMessage converts a store change into its wire form.
func NewMessage(change book.Change) Message {
	return Message{
		Type:          change.Type,
		BookID:        change.Book.ID,
		Title:         change.Book.Title,
		IsFavorite:    change.Book.IsFavorite,
		FavoriteCount: change.FavoriteCount,
		At:            change.At.UTC(),
	}
}
