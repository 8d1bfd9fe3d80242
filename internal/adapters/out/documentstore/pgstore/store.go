// Package pgstore is a ports.DocumentStore on PostgreSQL. All collections
// share one jsonb table; equality filters use containment (@>) and updates
// merge with the jsonb concatenation operator, so each write is a single
// statement. PostgreSQL has no push channel here: Watch reports
// ErrWatchUnsupported and callers poll.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/adapters/out/documentstore/docquery"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	_ ports.DocumentStore = (*Store)(nil)
	_ ports.Pinger        = (*Store)(nil)
)

// Store implements ports.DocumentStore using GORM.
type Store struct {
	db *gorm.DB
}

// Open connects to dsn and migrates the documents table.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewWithDB(db)
}

// NewWithDB wraps an existing connection and migrates the documents table.
func NewWithDB(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&DocumentDTO{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (ports.Record, error) {
	var dto DocumentDTO
	err := s.db.WithContext(ctx).First(&dto, "collection = ? AND id = ?", collection, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, id, err)
	}
	return docquery.Decode([]byte(dto.Data))
}

func (s *Store) Find(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	tx := s.db.WithContext(ctx).Where("collection = ?", collection)

	for _, f := range q.Filters {
		probe, err := docquery.Encode(ports.Record{f.Field: f.Value})
		if err != nil {
			return nil, err
		}
		tx = tx.Where("data @> ?::jsonb", string(probe))
	}

	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		// The field name is user data inside an ORDER BY expression, which
		// cannot be a bind parameter.
		tx = tx.Order(fmt.Sprintf("data -> %s %s NULLS LAST", pq.QuoteLiteral(q.OrderBy), dir))
	}
	tx = tx.Order("id ASC")

	var dtos []DocumentDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents in %s: %w", collection, err)
	}

	docs := make([]ports.Document, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := docquery.Decode([]byte(dto.Data))
		if err != nil {
			return nil, fmt.Errorf("document %s/%s: %w", collection, dto.ID, err)
		}
		docs = append(docs, ports.Document{ID: dto.ID, Data: rec})
	}
	return docs, nil
}

func (s *Store) Add(ctx context.Context, collection string, data ports.Record) (string, error) {
	payload, err := docquery.Encode(data)
	if err != nil {
		return "", err
	}

	dto := DocumentDTO{
		Collection: collection,
		ID:         uuid.NewString(),
		Data:       string(payload),
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return "", fmt.Errorf("failed to add document to %s: %w", collection, err)
	}
	return dto.ID, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields ports.Record) error {
	payload, err := docquery.Encode(fields)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Where("collection = ? AND id = ?", collection, id).
		Update("data", gorm.Expr("data || ?::jsonb", string(payload)))
	if result.Error != nil {
		return fmt.Errorf("failed to update document %s/%s: %w", collection, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ports.ErrDocumentNotFound)
	}
	return nil
}

func (s *Store) Watch(context.Context, string) (ports.Watcher, error) {
	return nil, ports.ErrWatchUnsupported
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
