package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"hotel_reservation/internal/domain"
)

type ImportResult string

const (
	Imported  ImportResult = "imported"
	Duplicate ImportResult = "duplicate"
	Missing   ImportResult = "missing"
	Invalid   ImportResult = "invalid"
)

// ImportService copies hotels from the remote catalog through HotelService.AddHotel.
type ImportService struct {
	catalog domain.CatalogClient
	hotels  *HotelService
}

func NewImportService(c domain.CatalogClient, h *HotelService) *ImportService {
	return &ImportService{catalog: c, hotels: h}
}

func (s *ImportService) ImportHotel(ctx context.Context, id int64) (ImportResult, error) {
	// 404/401/403 are misses, anything else bubbles up.
	p, err := s.catalog.GetProperty(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			log.Warn().Int64("id", id).Err(err).Msg("catalog property unavailable")
			return Missing, nil
		}
		return "", err
	}

	in := payload(p).toHotelDto()

	dup, err := s.exists(ctx, in)
	if err != nil {
		return "", err
	}
	if dup {
		return Duplicate, nil
	}

	if _, err := s.hotels.AddHotel(ctx, in); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			log.Warn().Int64("id", id).Err(err).Msg("catalog property incomplete")
			return Invalid, nil
		}
		return "", fmt.Errorf("import property %d: %w", id, err)
	}
	return Imported, nil
}

// exists reports whether a hotel with the same name and address is already stored.
func (s *ImportService) exists(ctx context.Context, in domain.HotelDto) (bool, error) {
	if in.Name == "" {
		return false, nil
	}
	same, err := s.hotels.FindHotelsByName(ctx, in.Name)
	if err != nil {
		return false, err
	}
	for _, h := range same {
		if h.Name == in.Name && h.Address == in.Address {
			return true, nil
		}
	}
	return false, nil
}
