package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// StayRange is a half-open interval of calendar dates [CheckIn, CheckOut).
// Time-of-day is not significant; both endpoints are truncated to midnight UTC.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func NewStayRange(checkIn, checkOut time.Time) StayRange {
	return StayRange{
		CheckIn:  ToDate(checkIn),
		CheckOut: ToDate(checkOut),
	}
}

// ToDate truncates a timestamp to date granularity.
func ToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (r StayRange) IsValid() bool {
	return r.CheckOut.After(r.CheckIn)
}

func (r StayRange) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn) / (24 * time.Hour))
}

// Overlaps reports whether two stays share at least one night. Touching
// boundaries do not overlap, so back-to-back stays are allowed: one guest's
// checkout day is the next guest's check-in day.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

type Booking struct {
	ID         int
	Reference  string
	ListingID  int
	GuestID    int
	Stay       StayRange
	TotalPrice decimal.Decimal
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BookingWithHost carries a booking together with the owning listing's host,
// which is what the cancellation path needs for its authorization check.
type BookingWithHost struct {
	Booking
	HostID int
}

type GuestBookingSummary struct {
	BookingID       int
	Reference       string
	Stay            StayRange
	TotalPrice      decimal.Decimal
	Status          BookingStatus
	CreatedAt       time.Time
	ListingID       int
	ListingTitle    string
	ListingImageUrl string
	ListingCity     string
	ListingCountry  string
	NightlyPrice    decimal.Decimal
}

type HostBookingSummary struct {
	BookingID    int
	Reference    string
	Stay         StayRange
	TotalPrice   decimal.Decimal
	Status       BookingStatus
	CreatedAt    time.Time
	ListingID    int
	ListingTitle string
	GuestID      int
	GuestName    string
	GuestEmail   string
}

type BookingRepository interface {
	// Create persists the candidate booking if and only if its stay does not
	// overlap any non-cancelled booking for the same listing. The check and
	// the insert are atomic with respect to concurrent Create calls for that
	// listing; overlap is reported as ErrBookingConflict and nothing is
	// persisted.
	Create(ctx context.Context, booking *Booking) error
	GetWithHostById(ctx context.Context, id int) (*BookingWithHost, error)
	// Cancel transitions a confirmed booking to cancelled. The transition is
	// one-way: cancelling an already cancelled booking fails with
	// ErrBookingAlreadyCancelled.
	Cancel(ctx context.Context, id int) (*Booking, error)
	GetSummariesByGuestId(ctx context.Context, guestId int, pagination Pagination) ([]GuestBookingSummary, *Metadata, error)
	GetSummariesByHostId(ctx context.Context, hostId int, pagination Pagination) ([]HostBookingSummary, *Metadata, error)
	GetActiveRangesByListingId(ctx context.Context, listingId int) ([]StayRange, error)
}
