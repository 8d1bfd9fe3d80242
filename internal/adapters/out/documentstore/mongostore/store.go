// Package mongostore is a ports.DocumentStore on MongoDB. New documents get
// ObjectID ids, exposed as hex strings; documents written by other clients
// with string ids stay addressable by that string. Pushes come from change
// streams, which require a replica set. On a standalone server Watch reports ErrWatchUnsupported and
// callers poll.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/documentstore/changefeed"
	"dispatch/internal/core/ports"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// changeStreamsNotSupported is the server error code for $changeStream on a
// standalone deployment.
const changeStreamsNotSupported = 40573

// sortMissing is a temporary field that pushes documents lacking the order
// field behind the rest.
const sortMissing = "__sortMissing"

var (
	_ ports.DocumentStore = (*Store)(nil)
	_ ports.Pinger        = (*Store)(nil)
)

// Store implements ports.DocumentStore using the official MongoDB driver.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Options tunes the client connection.
type Options struct {
	URI      string
	Database string

	// Direct forces a direct connection to the given host, needed when the
	// replica set advertises hostnames unreachable from the client.
	Direct bool
}

// New connects and pings the primary.
func New(ctx context.Context, opts Options) (*Store, error) {
	clientOpts := options.Client().ApplyURI(opts.URI)
	if opts.Direct {
		clientOpts.SetDirect(true)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &Store{client: client, db: client.Database(opts.Database)}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (ports.Record, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, idFilter(id)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}

	return toRecord(raw), nil
}

// Find pushes filters and ordering to the server. Documents missing the order
// field, or holding null in it, sort last in both directions.
func (s *Store) Find(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	cursor, err := s.db.Collection(collection).Aggregate(ctx, findPipeline(q))
	if err != nil {
		return nil, fmt.Errorf("failed to find documents in %s: %w", collection, err)
	}

	var raws []bson.M
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("failed to read documents of %s: %w", collection, err)
	}

	docs := make([]ports.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, ports.Document{ID: documentID(raw), Data: toRecord(raw)})
	}
	return docs, nil
}

func findPipeline(q ports.Query) mongo.Pipeline {
	filter := bson.D{}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}
	pipeline := mongo.Pipeline{{{Key: "$match", Value: filter}}}
	if q.OrderBy == "" {
		return pipeline
	}

	dir := 1
	if q.Descending {
		dir = -1
	}
	missing := bson.M{"$in": bson.A{bson.M{"$type": "$" + q.OrderBy}, bson.A{"missing", "null"}}}

	return append(pipeline,
		bson.D{{Key: "$addFields", Value: bson.M{sortMissing: missing}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: sortMissing, Value: 1},
			{Key: q.OrderBy, Value: dir},
			{Key: "_id", Value: 1},
		}}},
		bson.D{{Key: "$project", Value: bson.M{sortMissing: 0}}},
	)
}

// idFilter matches id as a plain string, and also as an ObjectID when it
// parses as one.
func idFilter(id string) bson.M {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{"_id": id}
	}
	return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
}

func documentID(raw bson.M) string {
	return cast.ToString(normalize(raw["_id"]))
}

func (s *Store) Add(ctx context.Context, collection string, data ports.Record) (string, error) {
	doc := bson.M{}
	for k, v := range data {
		doc[k] = v
	}
	oid := primitive.NewObjectID()
	doc["_id"] = oid

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return oid.Hex(), nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields ports.Record) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx, idFilter(id), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	return nil
}

// Watch opens a change stream on the collection.
func (s *Store) Watch(ctx context.Context, collection string) (ports.Watcher, error) {
	stream, err := s.db.Collection(collection).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == changeStreamsNotSupported {
			return nil, ports.ErrWatchUnsupported
		}
		return nil, fmt.Errorf("failed to watch %s: %w", collection, err)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	feed := changefeed.New(func() error {
		cancel()
		return nil
	})

	go func() {
		defer func() { _ = stream.Close(context.Background()) }()

		for stream.Next(streamCtx) {
			feed.Notify()
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			feed.Fail(err)
			return
		}
		_ = feed.Close()
	}()

	return feed, nil
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toRecord(raw bson.M) ports.Record {
	rec := make(ports.Record, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		rec[k] = normalize(v)
	}
	return rec
}

// normalize converts driver-specific value types into plain Go values.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = normalize(inner)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = normalize(inner)
		}
		return out
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	default:
		return v
	}
}
