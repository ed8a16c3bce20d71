// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"math"

	"github.com/taibuivan/yomira-kids/internal/platform/apperr"
	"github.com/taibuivan/yomira-kids/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-kids/internal/platform/validate"
	"github.com/taibuivan/yomira-kids/pkg/slice"
)

const (
	// resourceName is used in NOT_FOUND messages.
	resourceName = "Book"

	// maxIdentifierLen caps ids and slugs accepted from clients.
	maxIdentifierLen = 200

	// DefaultFeaturedCount is how many books the home screen features.
	DefaultFeaturedCount = 3
)

// # Service Layer

// Service orchestrates the reading use cases on top of the catalog [Repository].
type Service struct {
	repo          Repository
	featuredCount int
}

// NewService constructs a new [Service]. featuredCount below zero falls back to
// [DefaultFeaturedCount].
func NewService(repo Repository, featuredCount int) *Service {
	if featuredCount < 0 {
		featuredCount = DefaultFeaturedCount
	}
	return &Service{repo: repo, featuredCount: featuredCount}
}

// # Catalog Lookups

/*
ListBooks returns one page of the catalog in catalog order.

Parameters:
  - context: context.Context
  - limit: int (Max records to return)
  - offset: int (Index of the first record)

Returns:
  - []Book: The requested window; empty past the end
  - int: Total number of books (for pagination metadata)
*/
func (service *Service) ListBooks(context context.Context, limit, offset int) ([]Book, int) {
	books := service.repo.GetAllBooks()
	return slice.Window(books, offset, limit), len(books)
}

/*
GetBook fetches a single book by catalog id or slug.

Description: The id is tried first because it is the identifier the
presentation layer obtained from a previous read; the slug is a fallback
for human-readable links.

Parameters:
  - context: context.Context
  - identifier: string (ID or Slug)

Returns:
  - Book: The snapshot
  - error: apperr NOT_FOUND or VALIDATION_ERROR
*/
func (service *Service) GetBook(context context.Context, identifier string) (Book, error) {
	validator := &validate.Validator{}
	validator.Required(FieldID, identifier).MaxLen(FieldID, identifier, maxIdentifierLen)
	if err := validator.Err(); err != nil {
		return Book{}, err
	}

	if found, ok := service.repo.GetBookByID(identifier); ok {
		return found, nil
	}

	if found, ok := service.repo.GetBookBySlug(identifier); ok {
		return found, nil
	}

	return Book{}, apperr.NotFound(resourceName)
}

// # Reader

/*
ReadPage returns the reader's view of one page.

Parameters:
  - context: context.Context
  - identifier: string (ID or Slug)
  - number: int (1-indexed page number)

Returns:
  - Reading: Page content plus position within the book
  - error: NOT_FOUND for an unknown book, VALIDATION_ERROR for a page outside 1..Total
*/
func (service *Service) ReadPage(context context.Context, identifier string, number int) (Reading, error) {
	found, err := service.GetBook(context, identifier)
	if err != nil {
		return Reading{}, err
	}

	total := found.PageCount()

	validator := &validate.Validator{}
	validator.Range(FieldPageNumber, number, 1, total)
	if err := validator.Err(); err != nil {
		return Reading{}, err
	}

	return Reading{
		BookID:     found.ID,
		Title:      found.Title,
		Page:       found.Pages[number-1],
		Number:     number,
		Total:      total,
		IsFirst:    number == 1,
		IsLast:     number == total,
		Progress:   progress(number, total),
		IsFavorite: found.IsFavorite,
	}, nil
}

// # Home & Favorites

/*
Home returns the home screen aggregate.

Returns:
  - Summary: The first featured books in catalog order plus catalog and favorites counts
*/
func (service *Service) Home(context context.Context) Summary {
	books := service.repo.GetAllBooks()

	return Summary{
		Featured:      slice.Window(books, 0, service.featuredCount),
		TotalBooks:    len(books),
		FavoriteCount: service.repo.FavoriteCount(),
	}
}

// Favorites returns the favorites view in the order the books were favorited.
func (service *Service) Favorites(context context.Context) []Book {
	return service.repo.GetFavoriteBooks()
}

/*
ToggleFavorite flips the favorite flag of a book.

Description: The store treats unknown ids as a silent no-op. The service keeps
that contract (nothing changes, nothing is notified) and reports NOT_FOUND so
the transport can answer a stale identifier.

Parameters:
  - context: context.Context
  - id: string (Catalog id; slugs are not accepted for mutations)

Returns:
  - Book: The updated snapshot
  - error: NOT_FOUND for unknown ids
*/
func (service *Service) ToggleFavorite(context context.Context, id string) (Book, error) {
	logger := ctxutil.GetLogger(context)

	updated, ok := service.repo.ToggleFavorite(id)
	if !ok {
		logger.Debug("favorite_toggle_ignored", slog.String("book_id", id))
		return Book{}, apperr.NotFound(resourceName)
	}

	logger.Info("favorite_toggled",
		slog.String("book_id", updated.ID),
		slog.Bool("is_favorite", updated.IsFavorite),
	)

	return updated, nil
}

// # Internal Helpers

// progress returns the percentage of the book read, rounded to one decimal.
func progress(number, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(number)/float64(total)*1000) / 10
}
