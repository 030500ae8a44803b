package app

import (
	"strings"

	"hotel_reservation/internal/domain"
)

// payload is a loosely typed catalog document addressed with dot paths.
type payload map[string]any

// aliases lists the paths tried, in order, for each hotel field.
var aliases = map[string][]string{
	"name":        {"name", "hotel_name", "property_name", "translations.name"},
	"phone":       {"phone", "phone_number", "telephone", "contact.phone", "contact.phone_number"},
	"description": {"description", "markdown_description", "description_long", "translations.description"},
	"address":     {"address_raw", "address", "full_address", "formatted_address", "location.address"},
	"caption":     {"caption", "title", "alt", "description"},
}

// addressParts are joined when no single address field is present.
var addressParts = []string{
	"address.addressLine1", "address.addressLine2", "address.street",
	"address.city", "address.postcode", "address.country",
	"street", "city", "postcode", "country",
}

func (p payload) at(path string) any {
	var cur any = map[string]any(p)
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[key]; !ok {
			return nil
		}
	}
	return cur
}

// str returns the trimmed string at path, or "" for anything else.
func (p payload) str(path string) string {
	s, _ := p.at(path).(string)
	return strings.TrimSpace(s)
}

func (p payload) field(name string) string {
	for _, path := range aliases[name] {
		if s := p.str(path); s != "" {
			return s
		}
	}
	return ""
}

func (p payload) address() string {
	if s := p.field("address"); s != "" {
		return s
	}
	parts := make([]string, 0, len(addressParts))
	for _, path := range addressParts {
		if s := p.str(path); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// images reads the first non-empty list under "photos" or "images". Entries
// may be bare URLs or objects carrying url/src plus an optional caption.
func (p payload) images() []domain.HotelImageDto {
	for _, key := range []string{"photos", "images"} {
		list, _ := p.at(key).([]any)
		var out []domain.HotelImageDto
		for _, item := range list {
			var img domain.HotelImageDto
			switch v := item.(type) {
			case string:
				img.URL = strings.TrimSpace(v)
			case map[string]any:
				obj := payload(v)
				if img.URL = obj.str("url"); img.URL == "" {
					img.URL = obj.str("src")
				}
				img.AltText = obj.field("caption")
			}
			if img.URL != "" {
				img.SortOrder = len(out)
				out = append(out, img)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// toHotelDto projects the document onto the fields AddHotel needs.
func (p payload) toHotelDto() domain.HotelDto {
	return domain.HotelDto{
		Name:        p.field("name"),
		Phone:       p.field("phone"),
		Address:     p.address(),
		Description: p.field("description"),
		Images:      p.images(),
	}
}
