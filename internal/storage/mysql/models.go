package mysql

import (
	"time"

	"hotel_reservation/internal/domain"
)

type hotelRow struct {
	Idx         int64     `gorm:"column:idx;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;size:255;not null;index"`
	Phone       string    `gorm:"column:phone;size:64;not null"`
	Address     string    `gorm:"column:address;size:512;not null"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (hotelRow) TableName() string { return "hotels" }

type hotelImageRow struct {
	Idx       int64     `gorm:"column:idx;primaryKey;autoIncrement"`
	HotelIdx  int64     `gorm:"column:hotel_idx;not null;index"`
	URL       string    `gorm:"column:url;type:text;not null"`
	AltText   string    `gorm:"column:alt_text;size:255"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (hotelImageRow) TableName() string { return "hotel_images" }

func toHotelRow(h domain.Hotel) hotelRow {
	return hotelRow{Idx: h.Idx, Name: h.Name, Phone: h.Phone, Address: h.Address, Description: h.Description}
}

func (r hotelRow) toDomain() domain.Hotel {
	return domain.Hotel{Idx: r.Idx, Name: r.Name, Phone: r.Phone, Address: r.Address, Description: r.Description}
}

func toImageRow(img domain.HotelImage) hotelImageRow {
	return hotelImageRow{Idx: img.Idx, HotelIdx: img.HotelIdx, URL: img.URL, AltText: img.AltText, SortOrder: img.SortOrder}
}

func (r hotelImageRow) toDomain() domain.HotelImage {
	return domain.HotelImage{Idx: r.Idx, HotelIdx: r.HotelIdx, URL: r.URL, AltText: r.AltText, SortOrder: r.SortOrder}
}
