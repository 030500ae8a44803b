package domain

// Hotel is a lodging property. Idx is assigned by the store and never changes.
type Hotel struct {
	Idx         int64
	Name        string
	Phone       string
	Address     string
	Description string
}

// HotelImage belongs to exactly one Hotel through HotelIdx.
type HotelImage struct {
	Idx       int64
	HotelIdx  int64
	URL       string
	AltText   string
	SortOrder int
}

// HotelPatch is a partial update; nil fields are left unchanged.
type HotelPatch struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

type DeleteOutcome int

const (
	DeleteOK DeleteOutcome = iota
	DeleteNotFound
)

// String returns the legacy status strings used by the admin endpoint.
func (o DeleteOutcome) String() string {
	if o == DeleteOK {
		return "success"
	}
	return "fail"
}
