// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/yomira-kids/pkg/slice"
)

// # In-Memory Implementation

// entry is a book plus the bookkeeping needed to order the favorites view.
type entry struct {
	book Book

	// favoriteSeq is the toggle sequence at which the book became a favorite.
	// It is zero whenever book.IsFavorite is false.
	favoriteSeq uint64
}

type subscription struct {
	listener Listener
}

// MemoryStore is the process-lifetime [Repository] for the catalog.
//
// The favorites view is computed from the primary collection on every read,
// so it cannot drift from the IsFavorite flags.
type MemoryStore struct {
	// writeMu serialises toggles together with their notifications so
	// subscribers observe changes in mutation order.
	writeMu sync.Mutex

	mu      sync.RWMutex
	entries []entry
	byID    map[string]int
	bySlug  map[string]int
	seq     uint64

	listenersMu sync.Mutex
	listeners   []*subscription

	now func() time.Time
}

// NewMemoryStore seeds a store with books after checking the catalog invariants.
func NewMemoryStore(books []Book) (*MemoryStore, error) {
	if err := Validate(books); err != nil {
		return nil, err
	}

	store := &MemoryStore{
		entries: make([]entry, len(books)),
		byID:    make(map[string]int, len(books)),
		bySlug:  make(map[string]int, len(books)),
		now:     time.Now,
	}

	for i, b := range books {
		seeded := b.clone()
		seeded.IsFavorite = false

		store.entries[i] = entry{book: seeded}
		store.byID[seeded.ID] = i
		if seeded.Slug != "" {
			store.bySlug[seeded.Slug] = i
		}
	}

	return store, nil
}

// # Reads

// GetAllBooks implements [Repository].
func (store *MemoryStore) GetAllBooks() []Book {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return slice.Map(store.entries, snapshot)
}

// GetFavoriteBooks implements [Repository].
func (store *MemoryStore) GetFavoriteBooks() []Book {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.favoritesLocked()
}

// GetBookByID implements [Repository].
func (store *MemoryStore) GetBookByID(id string) (Book, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	i, ok := store.byID[id]
	if !ok {
		return Book{}, false
	}
	return store.entries[i].book.clone(), true
}

// GetBookBySlug implements [Repository].
func (store *MemoryStore) GetBookBySlug(slug string) (Book, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	i, ok := store.bySlug[slug]
	if !ok {
		return Book{}, false
	}
	return store.entries[i].book.clone(), true
}

// Len implements [Repository].
func (store *MemoryStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.entries)
}

// FavoriteCount implements [Repository].
func (store *MemoryStore) FavoriteCount() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.favoriteCountLocked()
}

// # Mutation

// ToggleFavorite implements [Repository].
//
// The flag, the favorite sequence and therefore the favorites view change under
// one write lock. Listeners run after the lock is released and before the call
// returns, so they may read the store but must not toggle.
func (store *MemoryStore) ToggleFavorite(id string) (Book, bool) {
	store.writeMu.Lock()
	defer store.writeMu.Unlock()

	store.mu.Lock()
	i, ok := store.byID[id]
	if !ok {
		store.mu.Unlock()
		return Book{}, false
	}

	current := &store.entries[i]
	changeType := ChangeFavorited

	if current.book.IsFavorite {
		current.book.IsFavorite = false
		current.favoriteSeq = 0
		changeType = ChangeUnfavorited
	} else {
		store.seq++
		current.book.IsFavorite = true
		current.favoriteSeq = store.seq
	}

	updated := current.book.clone()
	change := Change{
		Type:          changeType,
		Book:          current.book.clone(),
		FavoriteCount: store.favoriteCountLocked(),
		At:            store.now(),
	}
	store.mu.Unlock()

	store.notify(change)

	return updated, true
}

// # Subscriptions

// Subscribe implements [Repository].
func (store *MemoryStore) Subscribe(listener Listener) func() {
	sub := &subscription{listener: listener}

	store.listenersMu.Lock()
	store.listeners = append(store.listeners, sub)
	store.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			store.listenersMu.Lock()
			defer store.listenersMu.Unlock()
			store.listeners = slices.DeleteFunc(store.listeners, func(s *subscription) bool {
				return s == sub
			})
		})
	}
}

// notify delivers change to every listener in subscription order.
func (store *MemoryStore) notify(change Change) {
	store.listenersMu.Lock()
	listeners := slices.Clone(store.listeners)
	store.listenersMu.Unlock()

	for _, sub := range listeners {
		sub.listener(change)
	}
}

// # Internal Helpers

func (store *MemoryStore) favoritesLocked() []Book {
	favorites := slice.Filter(store.entries, func(e entry) bool {
		return e.book.IsFavorite
	})

	slices.SortFunc(favorites, func(a, b entry) int {
		return cmp.Compare(a.favoriteSeq, b.favoriteSeq)
	})

	books := slice.Map(favorites, snapshot)
	if books == nil {
		return []Book{}
	}
	return books
}

func (store *MemoryStore) favoriteCountLocked() int {
	count := 0
	for _, e := range store.entries {
		if e.book.IsFavorite {
			count++
		}
	}
	return count
}

func snapshot(e entry) Book {
	return e.book.clone()
}
