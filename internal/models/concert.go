package models

// Concert identifies the destination event of a ride. Date is a calendar date
// string (YYYY-MM-DD); Time, Image, PriceRange and URL are display extras
// carried through from the event search provider.
type Concert struct {
	ID         string `json:"id"`
	Artist     string `json:"artist" validate:"required"`
	Venue      string `json:"venue"`
	City       string `json:"city"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time,omitempty"`
	Image      string `json:"image,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
	URL        string `json:"url,omitempty"`
}
