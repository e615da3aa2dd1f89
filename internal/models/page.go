package models

// DefaultPageLimit is the number of users returned when no limit is given.
const DefaultPageLimit = 100

// FilterPage describes an offset/limit window over the users table.
type FilterPage struct {
	Offset int `query:"offset" validate:"gte=0"`
	Limit  int `query:"limit" validate:"gte=0"`
}

// NewFilterPage returns the default page.
func NewFilterPage() FilterPage {
	return FilterPage{Offset: 0, Limit: DefaultPageLimit}
}
