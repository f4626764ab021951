package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"
)

const (
	tableEntries    = "kv_entries"
	columnKey       = "entry_key"
	columnPayload   = "payload"
	columnUpdatedAt = "updated_at"
)

// BlobStore is a string-keyed store of opaque payloads.
type BlobStore interface {
	// Get returns the payload for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put inserts or replaces the payload for key.
	Put(ctx context.Context, key string, payload []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// sqlBlobStore keeps each key as one row of kv_entries.
type sqlBlobStore struct {
	db      *sql.DB
	dialect string
	now     func() time.Time
	logger  *zap.Logger
}

func (s *sqlBlobStore) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *sqlBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := s.builder().
		Select(columnPayload).
		From(entsql.Table(tableEntries)).
		Where(entsql.EQ(columnKey, key)).
		Query()

	var payload string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return []byte(payload), nil
}

func (s *sqlBlobStore) Put(ctx context.Context, key string, payload []byte) error {
	query, args := s.builder().
		Insert(tableEntries).
		Columns(columnKey, columnPayload, columnUpdatedAt).
		Values(key, string(payload), s.now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(columnKey),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	s.logger.Debug("stored entry", zap.String("key", key), zap.Int("bytes", len(payload)))
	return nil
}

func (s *sqlBlobStore) Delete(ctx context.Context, key string) error {
	query, args := s.builder().
		Delete(tableEntries).
		Where(entsql.EQ(columnKey, key)).
		Query()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	s.logger.Debug("deleted entry", zap.String("key", key))
	return nil
}
