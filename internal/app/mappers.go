package app

import "hotel_reservation/internal/domain"

func hotelFromDto(d domain.HotelDto) domain.Hotel {
	return domain.Hotel{
		Idx:         d.Idx,
		Name:        d.Name,
		Phone:       d.Phone,
		Address:     d.Address,
		Description: d.Description,
	}
}

func hotelToDto(h domain.Hotel, imgs []domain.HotelImage) domain.HotelDto {
	out := domain.HotelDto{
		Idx:         h.Idx,
		Name:        h.Name,
		Phone:       h.Phone,
		Address:     h.Address,
		Description: h.Description,
		Images:      make([]domain.HotelImageDto, 0, len(imgs)),
	}
	for _, img := range imgs {
		out.Images = append(out.Images, imageToDto(img))
	}
	return out
}

func imageFromDto(hotelIdx int64, pos int, d domain.HotelImageDto) domain.HotelImage {
	return domain.HotelImage{
		HotelIdx:  hotelIdx,
		URL:       d.URL,
		AltText:   d.AltText,
		SortOrder: pos,
	}
}

func imageToDto(img domain.HotelImage) domain.HotelImageDto {
	return domain.HotelImageDto{
		Idx:       img.Idx,
		URL:       img.URL,
		AltText:   img.AltText,
		SortOrder: img.SortOrder,
	}
}

// applyPatch overwrites only the fields set on p.
func applyPatch(h *domain.Hotel, p domain.HotelPatch) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Address != nil {
		h.Address = *p.Address
	}
	if p.Phone != nil {
		h.Phone = *p.Phone
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
}
