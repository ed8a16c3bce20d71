// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/yomira-kids/pkg/slug"
)

// ErrInvalidCatalog is wrapped by every seed validation failure.
var ErrInvalidCatalog = errors.New("book: invalid catalog")

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// # Seed Schema

type catalogFile struct {
	Books []bookRecord `yaml:"books"`
}

type bookRecord struct {
	ID         string       `yaml:"id"`
	Title      string       `yaml:"title"`
	Author     string       `yaml:"author"`
	CoverColor string       `yaml:"cover_color"`
	Emoji      string       `yaml:"emoji"`
	AgeRange   string       `yaml:"age_range"`
	Pages      []pageRecord `yaml:"pages"`
}

type pageRecord struct {
	ID              string `yaml:"id"`
	Text            string `yaml:"text"`
	Illustration    string `yaml:"illustration"`
	BackgroundColor string `yaml:"background_color"`
}

// # Loading

// LoadCatalog decodes and validates the catalog compiled into the binary.
func LoadCatalog() ([]Book, error) {
	return ParseCatalog(embeddedCatalog)
}

/*
ParseCatalog decodes a YAML catalog document into validated books.

Description: Display strings are normalised to NFC and every book gets a slug
derived from its title. The result is checked with [Validate].

Parameters:
  - data: []byte (YAML with a top-level "books" list)

Returns:
  - []Book: Books in document order
  - error: Decoding failures or an [ErrInvalidCatalog] violation
*/
func ParseCatalog(data []byte) ([]Book, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("book: decoding catalog: %w", err)
	}

	books := make([]Book, 0, len(file.Books))
	for _, record := range file.Books {
		books = append(books, record.toBook())
	}

	if err := Validate(books); err != nil {
		return nil, err
	}

	return books, nil
}

func (record bookRecord) toBook() Book {
	title := nfc(record.Title)

	pages := make([]Page, 0, len(record.Pages))
	for _, p := range record.Pages {
		pages = append(pages, Page{
			ID:              strings.TrimSpace(p.ID),
			Text:            nfc(p.Text),
			Illustration:    nfc(p.Illustration),
			BackgroundColor: strings.TrimSpace(p.BackgroundColor),
		})
	}

	return Book{
		ID:         strings.TrimSpace(record.ID),
		Slug:       slug.From(title),
		Title:      title,
		Author:     nfc(record.Author),
		CoverColor: strings.TrimSpace(record.CoverColor),
		Emoji:      nfc(record.Emoji),
		AgeRange:   nfc(record.AgeRange),
		Pages:      pages,
	}
}

// # Invariants

/*
Validate checks the catalog invariants.

Rules:
  - The catalog is not empty.
  - Every book has a non-empty id and title, and ids are unique.
  - Slugs, when present, are unique.
  - Every book has at least one page and page ids are non-empty and unique within the book.
*/
func Validate(books []Book) error {
	if len(books) == 0 {
		return fmt.Errorf("%w: no books", ErrInvalidCatalog)
	}

	ids := make(map[string]struct{}, len(books))
	slugs := make(map[string]string, len(books))

	for i, b := range books {
		if b.ID == "" {
			return fmt.Errorf("%w: book #%d has no %s", ErrInvalidCatalog, i+1, FieldID)
		}
		if _, dup := ids[b.ID]; dup {
			return fmt.Errorf("%w: duplicate book id %q", ErrInvalidCatalog, b.ID)
		}
		ids[b.ID] = struct{}{}

		if strings.TrimSpace(b.Title) == "" {
			return fmt.Errorf("%w: book %q has no %s", ErrInvalidCatalog, b.ID, FieldTitle)
		}

		if b.Slug != "" {
			if other, dup := slugs[b.Slug]; dup {
				return fmt.Errorf("%w: books %q and %q share slug %q", ErrInvalidCatalog, other, b.ID, b.Slug)
			}
			slugs[b.Slug] = b.ID
		}

		if len(b.Pages) == 0 {
			return fmt.Errorf("%w: book %q has no %s", ErrInvalidCatalog, b.ID, FieldPages)
		}

		pageIDs := make(map[string]struct{}, len(b.Pages))
		for n, p := range b.Pages {
			if p.ID == "" {
				return fmt.Errorf("%w: book %q page %d has no %s", ErrInvalidCatalog, b.ID, n+1, FieldPageID)
			}
			if _, dup := pageIDs[p.ID]; dup {
				return fmt.Errorf("%w: book %q repeats page id %q", ErrInvalidCatalog, b.ID, p.ID)
			}
			pageIDs[p.ID] = struct{}{}
		}
	}

	return nil
}

func nfc(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
