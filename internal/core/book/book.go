// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book defines the catalog of children's books and the favorites state model.

It owns the fixed set of books compiled into the binary, the per-book favorite flag,
and the presentation-facing reading use cases built on top of them.

Core Responsibility:

  - Catalog: Immutable books and their ordered pages, seeded once at startup.
  - Favorites: The only mutable state, toggled per book and observed by subscribers.
  - Reading: Page-by-page navigation inside a single book.

The presentation layer never touches the store directly; it goes through [Service].
*/
package book

import "time"

// # Core Entities

// Book is a single entry in the catalog.
//
// Pages is never empty and its order is the reading order.
type Book struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"` // URL-safe identifier derived from the title
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverColor string `json:"cover_color"`
	Emoji      string `json:"emoji"`
	AgeRange   string `json:"age_range"` // Free-text label, e.g. "3-6 лет"
	Pages      []Page `json:"pages"`
	IsFavorite bool   `json:"is_favorite"`
}

// PageCount returns the number of pages in the book.
func (b Book) PageCount() int {
	return len(b.Pages)
}

// clone returns a copy of b that shares no memory with the original.
func (b Book) clone() Book {
	pages := make([]Page, len(b.Pages))
	copy(pages, b.Pages)
	b.Pages = pages
	return b
}

// Page is one page of a book's narrative.
type Page struct {
	ID              string `json:"id"` // Unique within the parent book
	Text            string `json:"text"`
	Illustration    string `json:"illustration"`
	BackgroundColor string `json:"background_color"`
}

// # Change Events

// ChangeType identifies the favorite transition that produced a [Change].
type ChangeType string

const (
	// ChangeFavorited is emitted when a book enters the favorites view.
	ChangeFavorited ChangeType = "favorited"

	// ChangeUnfavorited is emitted when a book leaves the favorites view.
	ChangeUnfavorited ChangeType = "unfavorited"
)

// Change describes a single favorite toggle as seen by subscribers.
type Change struct {
	Type          ChangeType `json:"type"`
	Book          Book       `json:"book"`
	FavoriteCount int        `json:"favorite_count"` // Size of the favorites view after the change
	At            time.Time  `json:"at"`
}

// Listener receives store changes. It runs on the goroutine that called
// [Repository.ToggleFavorite] and must not block.
type Listener func(Change)

// # Reader Views

// Reading is the reader's view of one page inside a book.
type Reading struct {
	BookID     string  `json:"book_id"`
	Title      string  `json:"title"`
	Page       Page    `json:"page"`
	Number     int     `json:"number"` // 1-indexed
	Total      int     `json:"total"`
	IsFirst    bool    `json:"is_first"`
	IsLast     bool    `json:"is_last"`
	Progress   float64 `json:"progress"` // Percent of the book read, including the current page
	IsFavorite bool    `json:"is_favorite"`
}

// Summary is the home screen aggregate.
type Summary struct {
	Featured      []Book `json:"featured"`
	TotalBooks    int    `json:"total_books"`
	FavoriteCount int    `json:"favorite_count"`
}

// # Field Identifiers

// Field names used in validation errors and response maps.
const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldPages      = "pages"
	FieldPageID     = "page_id"
	FieldPageNumber = "number"
	FieldItems      = "items"
	FieldTotal      = "total"
)
