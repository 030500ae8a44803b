package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_reservation/internal/domain"
)

type HotelService struct {
	store    domain.Store
	cache    domain.Cache
	cacheTTL time.Duration
	// bumped on every invalidation; FindHotel skips the cache fill when it moved
	writes atomic.Uint64
}

// NewHotelService wires the service. c may be nil to disable caching.
func NewHotelService(st domain.Store, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{store: st, cache: c, cacheTTL: ttl}
}

// AddHotel always inserts a new hotel; any Idx on the input is ignored.
func (s *HotelService) AddHotel(ctx context.Context, in domain.HotelDto) (domain.HotelDto, error) {
	in.Idx = 0
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	if err := validateNewHotel(in); err != nil {
		return domain.HotelDto{}, err
	}

	var out domain.HotelDto
	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		h, err := tx.Hotels().Save(ctx, hotelFromDto(in))
		if err != nil {
			return err
		}
		imgs := make([]domain.HotelImage, 0, len(in.Images))
		for i, d := range in.Images {
			img, err := tx.Images().Save(ctx, imageFromDto(h.Idx, i, d))
			if err != nil {
				return fmt.Errorf("save image %d of hotel %d: %w", i, h.Idx, err)
			}
			imgs = append(imgs, img)
		}
		out = hotelToDto(h, imgs)
		return nil
	})
	if err != nil {
		return domain.HotelDto{}, err
	}
	log.Info().Int64("idx", out.Idx).Int("images", len(out.Images)).Msg("hotel created")
	return out, nil
}

func validateNewHotel(in domain.HotelDto) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: hotel name is required", domain.ErrInvalidArgument)
	case in.Phone == "":
		return fmt.Errorf("%w: hotel phone is required", domain.ErrInvalidArgument)
	case in.Address == "":
		return fmt.Errorf("%w: hotel address is required", domain.ErrInvalidArgument)
	}
	return nil
}

// Delete removes the hotel and its images. A missing hotel is reported as
// DeleteNotFound, not as an error.
func (s *HotelService) Delete(ctx context.Context, idx int64) (domain.DeleteOutcome, error) {
	outcome := domain.DeleteOK
	err := s.store.WithTx(ctx, func(tx domain.Store) error {
		if _, err := tx.Hotels().FindByID(ctx, idx); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				outcome = domain.DeleteNotFound
				return nil
			}
			return err
		}
		if err := tx.Images().DeleteByHotelIdx(ctx, idx); err != nil {
			return err
		}
		return tx.Hotels().DeleteByID(ctx, idx)
	})
	if err != nil {
		return domain.DeleteNotFound, err
	}
	if outcome == domain.DeleteOK {
		s.invalidate(ctx, idx)
		log.Info().Int64("idx", idx).Msg("hotel deleted")
	}
	return outcome, nil
}

// RemoveHotel deletes the hotel identified by in.Idx and fails when it does not exist.
func (s *HotelService) RemoveHotel(ctx context.Context, in domain.HotelDto) error {
	outcome, err := s.Delete(ctx, in.Idx)
	if err != nil {
		return err
	}
	if outcome == domain.DeleteNotFound {
		return fmt.Errorf("%w: no hotel to delete: %w", domain.ErrInvalidArgument, domain.ErrNotFound)
	}
	return nil
}

// DeleteHotel reports "success" or "fail" instead of failing on a missing hotel.
func (s *HotelService) DeleteHotel(ctx context.Context, idx int64) (string, error) {
	outcome, err := s.Delete(ctx, idx)
	if err != nil {
		return "", err
	}
	return outcome.String(), nil
}

func (s *HotelService) ModifyHotel(ctx context.Context, idx int64, p domain.HotelPatch) (domain.HotelDto, error) {
	h, err := s.store.Hotels().FindByID(ctx, idx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.HotelDto{}, fmt.Errorf("no hotel to modify: %w", domain.ErrNotFound)
		}
		return domain.HotelDto{}, err
	}
	applyPatch(&h, p)
	saved, err := s.store.Hotels().Save(ctx, h)
	if errors.Is(err, domain.ErrNotFound) {
		// deleted after the lookup above
		return domain.HotelDto{}, fmt.Errorf("no hotel to modify: %w", err)
	}
	if err != nil {
		return domain.HotelDto{}, err
	}
	s.invalidate(ctx, idx)
	log.Info().Int64("idx", idx).Msg("hotel modified")
	return s.toDto(ctx, saved)
}

func (s *HotelService) FindHotel(ctx context.Context, idx int64) (domain.HotelDto, bool, error) {
	key := cacheKey(idx)
	var hv domain.HotelDto
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &hv); ok {
			return hv, true, nil
		}
	}
	gen := s.writes.Load()
	h, err := s.store.Hotels().FindByID(ctx, idx)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.HotelDto{}, false, nil
	}
	if err != nil {
		return domain.HotelDto{}, false, err
	}
	hv, err = s.toDto(ctx, h)
	if err != nil {
		return domain.HotelDto{}, false, err
	}
	// a write that landed after our read must not be masked by a stale fill
	if s.cache != nil && s.writes.Load() == gen {
		_ = s.cache.Set(ctx, key, hv, int(s.cacheTTL.Seconds()))
	}
	return hv, true, nil
}

func (s *HotelService) FindAllHotels(ctx context.Context) ([]domain.HotelDto, error) {
	log.Debug().Msg("find all hotels")
	hs, err := s.store.Hotels().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.toDtos(ctx, hs)
}

// FindHotelsByName runs a LIKE query. Patterns without wildcards match as substrings.
func (s *HotelService) FindHotelsByName(ctx context.Context, pattern string) ([]domain.HotelDto, error) {
	log.Debug().Str("keyword", pattern).Msg("find hotels by name")
	hs, err := s.store.Hotels().FindByNameLike(ctx, likePattern(pattern))
	if err != nil {
		return nil, err
	}
	return s.toDtos(ctx, hs)
}

func likePattern(p string) string {
	if strings.ContainsAny(p, "%_") {
		return p
	}
	return "%" + p + "%"
}

func (s *HotelService) toDtos(ctx context.Context, hs []domain.Hotel) ([]domain.HotelDto, error) {
	out := make([]domain.HotelDto, 0, len(hs))
	for _, h := range hs {
		d, err := s.toDto(ctx, h)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// toDto maps h and fills its images in store order.
func (s *HotelService) toDto(ctx context.Context, h domain.Hotel) (domain.HotelDto, error) {
	imgs, err := s.store.Images().FindByHotelIdx(ctx, h.Idx)
	if err != nil {
		return domain.HotelDto{}, err
	}
	return hotelToDto(h, imgs), nil
}

func cacheKey(idx int64) string { return fmt.Sprintf("hotel:%d", idx) }

func (s *HotelService) invalidate(ctx context.Context, idx int64) {
	s.writes.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(idx)); err != nil {
		log.Warn().Err(err).Int64("idx", idx).Msg("cache invalidation failed")
	}
}
