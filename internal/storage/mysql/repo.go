package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hotel_reservation/internal/domain"
)

// Store implements domain.Store on top of GORM.
type Store struct{ db *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) Hotels() domain.HotelRepository      { return &hotelRepo{db: s.db} }
func (s *Store) Images() domain.HotelImageRepository { return &imageRepo{db: s.db} }

func (s *Store) WithTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Migrate creates or alters the hotels and hotel_images tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&hotelRow{}, &hotelImageRow{})
}

type hotelRepo struct{ db *gorm.DB }

func (r *hotelRepo) Save(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	row := toHotelRow(h)
	db := r.db.WithContext(ctx)
	if row.Idx == 0 {
		if err := db.Create(&row).Error; err != nil {
			return domain.Hotel{}, err
		}
		return row.toDomain(), nil
	}
	// keep created_at; description may legitimately be empty, hence Select
	row.UpdatedAt = time.Now()
	res := db.Model(&hotelRow{Idx: row.Idx}).
		Select("name", "phone", "address", "description", "updated_at").
		Updates(&row)
	if res.Error != nil {
		return domain.Hotel{}, res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL counts changed rows only, so confirm the row is really gone
		var n int64
		if err := db.Model(&hotelRow{}).Where("idx = ?", row.Idx).Count(&n).Error; err != nil {
			return domain.Hotel{}, err
		}
		if n == 0 {
			return domain.Hotel{}, domain.ErrNotFound
		}
	}
	return row.toDomain(), nil
}

func (r *hotelRepo) FindByID(ctx context.Context, idx int64) (domain.Hotel, error) {
	var row hotelRow
	err := r.db.WithContext(ctx).Where("idx = ?", idx).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Hotel{}, err
	}
	return row.toDomain(), nil
}

func (r *hotelRepo) DeleteByID(ctx context.Context, idx int64) error {
	return r.db.WithContext(ctx).Where("idx = ?", idx).Delete(&hotelRow{}).Error
}

func (r *hotelRepo) FindAll(ctx context.Context) ([]domain.Hotel, error) {
	var rows []hotelRow
	if err := r.db.WithContext(ctx).Order("idx").Find(&rows).Error; err != nil {
		return nil, err
	}
	return hotelsFromRows(rows), nil
}

func (r *hotelRepo) FindByNameLike(ctx context.Context, pattern string) ([]domain.Hotel, error) {
	var rows []hotelRow
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", pattern).
		Order("idx").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return hotelsFromRows(rows), nil
}

func hotelsFromRows(rows []hotelRow) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

type imageRepo struct{ db *gorm.DB }

func (r *imageRepo) Save(ctx context.Context, img domain.HotelImage) (domain.HotelImage, error) {
	row := toImageRow(img)
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return domain.HotelImage{}, err
	}
	return row.toDomain(), nil
}

func (r *imageRepo) FindByHotelIdx(ctx context.Context, hotelIdx int64) ([]domain.HotelImage, error) {
	var rows []hotelImageRow
	err := r.db.WithContext(ctx).
		Where("hotel_idx = ?", hotelIdx).
		Order("sort_order, idx").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.HotelImage, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *imageRepo) DeleteByHotelIdx(ctx context.Context, hotelIdx int64) error {
	return r.db.WithContext(ctx).Where("hotel_idx = ?", hotelIdx).Delete(&hotelImageRow{}).Error
}
