// Package repository provides interfaces for repository operations.
package repository

import (
	"context"
)

// PriceBookRepositoryInterface defines the interface for price book repository operations.
type PriceBookRepositoryInterface interface {
	GetActive(ctx context.Context, season string) (*PriceBookVersion, error)
	Create(ctx context.Context, season string, entries []PriceBookEntryDocument, createdBy, notes string) (*PriceBookVersion, error)
	History(ctx context.Context, season string, limit int) ([]PriceBookVersion, error)
}

// LogsRepositoryInterface defines the interface for logs repository operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
