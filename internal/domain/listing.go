package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Listing struct {
	ID           int
	HostID       int
	Title        string
	Description  string
	NightlyPrice decimal.Decimal
	Address      string
	City         string
	Country      string
	ImageUrls    []string
	Amenities    []string
	MaxGuests    int
	Bedrooms     int
	Bathrooms    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListingFilters narrows a listing search. The zero value matches everything.
type ListingFilters struct {
	Pagination
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Guests   int
	// When both dates are set, listings with an overlapping active booking
	// are excluded from the results.
	AvailableFrom *time.Time
	AvailableTo   *time.Time
}

type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	GetById(ctx context.Context, id int) (*Listing, error)
	GetAll(ctx context.Context, filters ListingFilters) ([]*Listing, *Metadata, error)
	GetByHostId(ctx context.Context, hostId int) ([]*Listing, error)
	Update(ctx context.Context, listing *Listing) error
	Delete(ctx context.Context, id int) error
}
