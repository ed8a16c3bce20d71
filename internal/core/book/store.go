// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

// # Catalog Data Access

// Repository defines the access contract for the catalog and its favorites.
//
// None of the lookups fail: a missing book is reported through the boolean
// result, never through an error.
type Repository interface {

	/*
		GetAllBooks returns every book in catalog order.

		Returns:
		  - []Book: Snapshots; mutating them does not affect the store
	*/
	GetAllBooks() []Book

	/*
		GetFavoriteBooks returns the favorites view in the order the books were favorited.

		Returns:
		  - []Book: Snapshots with IsFavorite set; empty (never nil) when nothing is favorited
	*/
	GetFavoriteBooks() []Book

	/*
		GetBookByID returns the book with the given identifier.

		Parameters:
		  - id: string (Opaque catalog identifier)

		Returns:
		  - Book: The snapshot, zero value when missing
		  - bool: false if no book matches
	*/
	GetBookByID(id string) (Book, bool)

	/*
		GetBookBySlug returns the book matching the URL-safe identifier.

		Parameters:
		  - slug: string

		Returns:
		  - Book: The snapshot, zero value when missing
		  - bool: false if no book matches
	*/
	GetBookBySlug(slug string) (Book, bool)

	/*
		ToggleFavorite flips the favorite flag of a book and notifies subscribers.

		Parameters:
		  - id: string (Catalog identifier)

		Returns:
		  - Book: The updated snapshot
		  - bool: false if no book matches; the call was then a no-op
	*/
	ToggleFavorite(id string) (Book, bool)

	/*
		Subscribe registers a listener for favorite changes.

		Parameters:
		  - listener: Listener

		Returns:
		  - func(): Removes the listener; safe to call more than once
	*/
	Subscribe(listener Listener) func()

	// Len returns the number of books in the catalog.
	Len() int

	// FavoriteCount returns the size of the favorites view.
	FavoriteCount() int
}
