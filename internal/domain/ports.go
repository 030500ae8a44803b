package domain

import "context"

type HotelRepository interface {
	// Save inserts when h.Idx is zero, otherwise updates and returns ErrNotFound
	// if no such hotel exists.
	Save(ctx context.Context, h Hotel) (Hotel, error)
	// FindByID returns ErrNotFound when no hotel has the given idx.
	FindByID(ctx context.Context, idx int64) (Hotel, error)
	DeleteByID(ctx context.Context, idx int64) error
	FindAll(ctx context.Context) ([]Hotel, error)
	FindByNameLike(ctx context.Context, pattern string) ([]Hotel, error)
}

type HotelImageRepository interface {
	Save(ctx context.Context, img HotelImage) (HotelImage, error)
	FindByHotelIdx(ctx context.Context, hotelIdx int64) ([]HotelImage, error)
	DeleteByHotelIdx(ctx context.Context, hotelIdx int64) error
}

// Store groups the repositories and the transaction boundary they share.
type Store interface {
	Hotels() HotelRepository
	Images() HotelImageRepository
	// WithTx runs fn against a Store bound to a single transaction.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type CatalogClient interface {
	GetProperty(ctx context.Context, id int64) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
