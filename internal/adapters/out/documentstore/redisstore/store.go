// Package redisstore is a ports.DocumentStore on Redis. Each document is a
// JSON string; a set per collection indexes the ids and a pub/sub channel per
// collection carries change notifications.
//
// Key layout:
//
//	{prefix}:{collection}:doc:{id}   JSON document
//	{prefix}:{collection}:ids        set of document ids
//	{prefix}:{collection}:changes    pub/sub channel, payload is the changed id
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/documentstore/changefeed"
	"dispatch/internal/adapters/out/documentstore/docquery"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "dispatch"

	// maxUpdateAttempts bounds optimistic-lock retries when concurrent
	// writers touch the same document.
	maxUpdateAttempts = 5
)

var (
	_ ports.DocumentStore = (*Store)(nil)
	_ ports.Pinger        = (*Store)(nil)

	errSubscriptionClosed = errors.New("redis subscription closed")
)

// Store implements ports.DocumentStore using go-redis.
type Store struct {
	client *redis.Client
	prefix string
}

// New connects to redisURL (redis://[:password@]host[:port][/db]) and
// verifies connectivity.
func New(ctx context.Context, redisURL, prefix string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewWithClient(client, prefix), nil
}

// NewWithClient wraps an existing client. An empty prefix selects "dispatch".
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) docKey(collection, id string) string {
	return fmt.Sprintf("%s:%s:doc:%s", s.prefix, collection, id)
}

func (s *Store) idsKey(collection string) string {
	return fmt.Sprintf("%s:%s:ids", s.prefix, collection)
}

func (s *Store) channel(collection string) string {
	return fmt.Sprintf("%s:%s:changes", s.prefix, collection)
}

func (s *Store) Get(ctx context.Context, collection, id string) (ports.Record, error) {
	raw, err := s.client.Get(ctx, s.docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return docquery.Decode(raw)
}

func (s *Store) Find(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	ids, err := s.client.SMembers(ctx, s.idsKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list ids of %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return []ports.Document{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(collection, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load documents of %s: %w", collection, err)
	}

	docs := make([]ports.Document, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Indexed id without a document: a concurrent writer has not
			// finished, or the key was removed out of band.
			continue
		}
		rec, err := docquery.Decode([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("document %s/%s: %w", collection, ids[i], err)
		}
		docs = append(docs, ports.Document{ID: ids[i], Data: rec})
	}

	return docquery.Apply(docs, q), nil
}

func (s *Store) Add(ctx context.Context, collection string, data ports.Record) (string, error) {
	payload, err := docquery.Encode(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.docKey(collection, id), payload, 0)
		pipe.SAdd(ctx, s.idsKey(collection), id)
		pipe.Publish(ctx, s.channel(collection), id)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return id, nil
}

// Update merges fields under WATCH/MULTI so that concurrent updates of other
// fields are never lost.
func (s *Store) Update(ctx context.Context, collection, id string, fields ports.Record) error {
	key := s.docKey(collection, id)

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
		}
		if err != nil {
			return err
		}

		current, err := docquery.Decode(raw)
		if err != nil {
			return err
		}
		payload, err := docquery.Encode(docquery.Merge(current, fields))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			pipe.Publish(ctx, s.channel(collection), id)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, ports.ErrDocumentNotFound) {
			return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
		}
		return err
	}
	return fmt.Errorf("failed to update document %s/%s: %w", collection, id, redis.TxFailedErr)
}

// Watch subscribes to the collection channel. The subscription is confirmed
// before Watch returns, so no write made afterwards is missed.
func (s *Store) Watch(ctx context.Context, collection string) (ports.Watcher, error) {
	pubsub := s.client.Subscribe(ctx, s.channel(collection))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", collection, err)
	}

	messages := pubsub.Channel()
	feed := changefeed.New(pubsub.Close)

	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = feed.Close()
				return
			case <-feed.Done():
				return
			case _, ok := <-messages:
				if !ok {
					feed.Fail(errSubscriptionClosed)
					return
				}
				feed.Notify()
			}
		}
	}()

	return feed, nil
}

// Ping checks if Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}
