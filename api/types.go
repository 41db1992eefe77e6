// Package api defines the request and response shapes of the StayHaven HTTP API.
package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationIssue `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateListingRequest struct {
	Title        string          `json:"title" validate:"required,min=5,max=200"`
	Description  string          `json:"description" validate:"required,min=20"`
	NightlyPrice decimal.Decimal `json:"nightlyPrice" validate:"required,positive_price"`
	Address      string          `json:"address" validate:"required"`
	City         string          `json:"city" validate:"required"`
	Country      string          `json:"country" validate:"required"`
	ImageUrls    []string        `json:"imageUrls" validate:"required,min=1,dive,url"`
	Amenities    []string        `json:"amenities"`
	MaxGuests    int             `json:"maxGuests" validate:"required,min=1"`
	Bedrooms     int             `json:"bedrooms" validate:"min=0"`
	Bathrooms    int             `json:"bathrooms" validate:"min=0"`
}

type UpdateListingRequest struct {
	Title        string          `json:"title" validate:"required,min=5,max=200"`
	Description  string          `json:"description" validate:"required,min=20"`
	NightlyPrice decimal.Decimal `json:"nightlyPrice" validate:"required,positive_price"`
	Address      string          `json:"address" validate:"required"`
	City         string          `json:"city" validate:"required"`
	Country      string          `json:"country" validate:"required"`
	ImageUrls    []string        `json:"imageUrls" validate:"required,min=1,dive,url"`
	Amenities    []string        `json:"amenities"`
	MaxGuests    int             `json:"maxGuests" validate:"required,min=1"`
	Bedrooms     int             `json:"bedrooms" validate:"min=0"`
	Bathrooms    int             `json:"bathrooms" validate:"min=0"`
}

type Listing struct {
	Id           int             `json:"id"`
	HostId       int             `json:"hostId"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	NightlyPrice decimal.Decimal `json:"nightlyPrice"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Country      string          `json:"country"`
	ImageUrls    []string        `json:"imageUrls"`
	Amenities    []string        `json:"amenities"`
	MaxGuests    int             `json:"maxGuests"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type ListingsResponse struct {
	Listings []Listing `json:"listings"`
	Metadata Metadata  `json:"metadata"`
}

type HostListingsResponse struct {
	Listings []Listing `json:"listings"`
}

type BookedRange struct {
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
}

type ListingDetailResponse struct {
	Listing
	BookedRanges []BookedRange `json:"bookedRanges"`
}

type CreateBookingRequest struct {
	ListingId int        `json:"listingId" validate:"required,min=1"`
	StartDate types.Date `json:"startDate" validate:"required"`
	EndDate   types.Date `json:"endDate" validate:"required"`
}

type BookingResponse struct {
	Id         int             `json:"id"`
	Reference  string          `json:"reference"`
	ListingId  int             `json:"listingId"`
	GuestId    int             `json:"guestId"`
	StartDate  types.Date      `json:"startDate"`
	EndDate    types.Date      `json:"endDate"`
	Nights     int             `json:"nights"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type GuestBooking struct {
	Id              int             `json:"id"`
	Reference       string          `json:"reference"`
	StartDate       types.Date      `json:"startDate"`
	EndDate         types.Date      `json:"endDate"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	ListingId       int             `json:"listingId"`
	ListingTitle    string          `json:"listingTitle"`
	ListingImageUrl string          `json:"listingImageUrl,omitempty"`
	ListingCity     string          `json:"listingCity"`
	ListingCountry  string          `json:"listingCountry"`
	NightlyPrice    decimal.Decimal `json:"nightlyPrice"`
}

type GuestBookingsResponse struct {
	Bookings []GuestBooking `json:"bookings"`
	Metadata Metadata       `json:"metadata"`
}

type HostBooking struct {
	Id           int             `json:"id"`
	Reference    string          `json:"reference"`
	StartDate    types.Date      `json:"startDate"`
	EndDate      types.Date      `json:"endDate"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	ListingId    int             `json:"listingId"`
	ListingTitle string          `json:"listingTitle"`
	GuestId      int             `json:"guestId"`
	GuestName    string          `json:"guestName"`
	GuestEmail   string          `json:"guestEmail"`
}

type HostBookingsResponse struct {
	Bookings []HostBooking `json:"bookings"`
	Metadata Metadata      `json:"metadata"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}
