package domain

// Transfer objects returned at the service boundary.
type HotelDto struct {
	Idx         int64           `json:"idx"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	Address     string          `json:"address"`
	Description string          `json:"description,omitempty"`
	Images      []HotelImageDto `json:"images"`
}

type HotelImageDto struct {
	Idx       int64  `json:"idx,omitempty"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text,omitempty"`
	SortOrder int    `json:"sort_order"`
}
