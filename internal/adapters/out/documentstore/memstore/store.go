// Package memstore is an in-process ports.DocumentStore. It backs local
// development (DISPATCH_STORE_DRIVER=memory) and the use-case tests, and it
// pushes change notifications like a real document database would.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"dispatch/internal/adapters/out/documentstore/changefeed"
	"dispatch/internal/adapters/out/documentstore/docquery"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

var _ ports.DocumentStore = (*Store)(nil)

// Store keeps documents in memory. Records are deep-copied on the way in and
// out, so callers never share state with the store.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]ports.Record
	feeds       map[string]map[*changefeed.Feed]struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		collections: make(map[string]map[string]ports.Record),
		feeds:       make(map[string]map[*changefeed.Feed]struct{}),
	}
}

// Put stores data under a caller-chosen id, replacing any existing document.
// Used to seed fixtures and legacy records.
func (s *Store) Put(ctx context.Context, collection, id string, data ports.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := docquery.Clone(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = cp
	s.notify(collection)
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (ports.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	rec, ok := s.collections[collection][id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	return docquery.Clone(rec)
}

func (s *Store) Find(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs := make([]ports.Document, 0, len(s.collections[collection]))
	for id, rec := range s.collections[collection] {
		cp, err := docquery.Clone(rec)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		docs = append(docs, ports.Document{ID: id, Data: cp})
	}
	s.mu.RUnlock()

	return docquery.Apply(docs, q), nil
}

func (s *Store) Add(ctx context.Context, collection string, data ports.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cp, err := docquery.Clone(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = cp
	s.notify(collection)
	return id, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields ports.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := docquery.Clone(fields)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.collections[collection][id]
	if !ok {
		return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	s.collections[collection][id] = docquery.Merge(current, cp)
	s.notify(collection)
	return nil
}

// Watch registers a feed that is signalled after every write to collection.
// The feed stops when ctx is cancelled or the caller closes it.
func (s *Store) Watch(ctx context.Context, collection string) (ports.Watcher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var feed *changefeed.Feed
	feed = changefeed.New(func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.feeds[collection], feed)
		return nil
	})

	s.mu.Lock()
	if s.feeds[collection] == nil {
		s.feeds[collection] = make(map[*changefeed.Feed]struct{})
	}
	s.feeds[collection][feed] = struct{}{}
	s.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			_ = feed.Close()
		case <-feed.Done():
		}
	}()

	return feed, nil
}

// Watchers returns the number of open feeds on collection.
func (s *Store) Watchers(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.feeds[collection])
}

func (s *Store) Close(context.Context) error {
	s.mu.Lock()
	feeds := make([]*changefeed.Feed, 0)
	for _, set := range s.feeds {
		for f := range set {
			feeds = append(feeds, f)
		}
	}
	s.mu.Unlock()

	for _, f := range feeds {
		_ = f.Close()
	}
	return nil
}

// collection must be called with mu held.
func (s *Store) collection(name string) map[string]ports.Record {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]ports.Record)
		s.collections[name] = c
	}
	return c
}

// notify must be called with mu held.
func (s *Store) notify(collection string) {
	for f := range s.feeds[collection] {
		f.Notify()
	}
}
