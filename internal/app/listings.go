package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stayhaven/stayhaven/api"
	"github.com/stayhaven/stayhaven/internal/domain"
)

var listingSortColumns = map[string]bool{
	"created_at":     true,
	"-created_at":    true,
	"nightly_price":  true,
	"-nightly_price": true,
}

func (app *Application) GetListings(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	params, err := readPaginationParams(qs)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sort := readString(qs, "sort", "-created_at")
	if !listingSortColumns[sort] {
		app.badRequestResponse(w, r, fmt.Errorf("invalid sort parameter"))
		return
	}

	filters := domain.ListingFilters{
		Pagination: toPagination(params),
	}
	filters.Term = readString(qs, "term", "")
	filters.Sort = sort

	filters.MinPrice, err = readOptionalDecimal(qs.Get("minPrice"), "minPrice")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters.MaxPrice, err = readOptionalDecimal(qs.Get("maxPrice"), "maxPrice")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	guests, err := readOptionalInt(qs, "guests")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if guests != nil {
		filters.Guests = *guests
	}

	filters.AvailableFrom, filters.AvailableTo, err = readAvailabilityWindow(qs.Get("startDate"), qs.Get("endDate"))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	listings, metadata, err := app.listingRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ListingsResponse{
		Listings: toApiListings(listings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetListingById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "listingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	listing, err := app.listingRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Booked ranges let clients grey out unavailable dates.
	bookedRanges, err := app.bookingRepo.GetActiveRangesByListingId(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ListingDetailResponse{
		Listing:      toApiListing(listing),
		BookedRanges: toApiBookedRanges(bookedRanges),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateListing(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateListingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	listing := &domain.Listing{
		HostID:       app.contextGetUserId(r),
		Title:        input.Title,
		Description:  input.Description,
		NightlyPrice: input.NightlyPrice,
		Address:      input.Address,
		City:         input.City,
		Country:      input.Country,
		ImageUrls:    input.ImageUrls,
		Amenities:    input.Amenities,
		MaxGuests:    input.MaxGuests,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
	}

	if listing.Amenities == nil {
		listing.Amenities = []string{}
	}

	err = app.listingRepo.Create(r.Context(), listing)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	logger.Info("listing created", "listing_id", listing.ID)

	err = app.writeJSON(w, http.StatusCreated, toApiListing(listing), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateListing(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r, "listingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateListingRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	listing, err := app.listingRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Only the host who owns the listing may change it.
	if listing.HostID != app.contextGetUserId(r) {
		logger.Warn("unauthorized listing update attempt", "listing_id", id)
		app.forbiddenResponse(w, r)
		return
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.NightlyPrice = input.NightlyPrice
	listing.Address = input.Address
	listing.City = input.City
	listing.Country = input.Country
	listing.ImageUrls = input.ImageUrls
	listing.Amenities = input.Amenities
	listing.MaxGuests = input.MaxGuests
	listing.Bedrooms = input.Bedrooms
	listing.Bathrooms = input.Bathrooms

	if listing.Amenities == nil {
		listing.Amenities = []string{}
	}

	err = app.listingRepo.Update(r.Context(), listing)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("listing updated", "listing_id", listing.ID)

	err = app.writeJSON(w, http.StatusOK, toApiListing(listing), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteListing(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r, "listingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	listing, err := app.listingRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if listing.HostID != app.contextGetUserId(r) {
		logger.Warn("unauthorized listing delete attempt", "listing_id", id)
		app.forbiddenResponse(w, r)
		return
	}

	err = app.listingRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("listing deleted", "listing_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetHostListings(w http.ResponseWriter, r *http.Request) {
	hostId := app.contextGetUserId(r)

	listings, err := app.listingRepo.GetByHostId(r.Context(), hostId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.HostListingsResponse{
		Listings: toApiListings(listings),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func readOptionalDecimal(s, key string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil, fmt.Errorf("invalid %s parameter", key)
	}

	return &d, nil
}

func readAvailabilityWindow(startDate, endDate string) (*time.Time, *time.Time, error) {
	if startDate == "" && endDate == "" {
		return nil, nil, nil
	}

	if startDate == "" || endDate == "" {
		return nil, nil, fmt.Errorf("startDate and endDate must be provided together")
	}

	start, err := time.Parse(time.DateOnly, startDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid startDate parameter")
	}

	end, err := time.Parse(time.DateOnly, endDate)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid endDate parameter")
	}

	if !end.After(start) {
		return nil, nil, domain.ErrInvalidDateRange
	}

	return &start, &end, nil
}

func toApiListing(listing *domain.Listing) api.Listing {
	return api.Listing{
		Id:           listing.ID,
		HostId:       listing.HostID,
		Title:        listing.Title,
		Description:  listing.Description,
		NightlyPrice: listing.NightlyPrice,
		Address:      listing.Address,
		City:         listing.City,
		Country:      listing.Country,
		ImageUrls:    listing.ImageUrls,
		Amenities:    listing.Amenities,
		MaxGuests:    listing.MaxGuests,
		Bedrooms:     listing.Bedrooms,
		Bathrooms:    listing.Bathrooms,
		CreatedAt:    listing.CreatedAt,
	}
}

func toApiListings(listings []*domain.Listing) []api.Listing {
	apiListings := make([]api.Listing, len(listings))

	for i, v := range listings {
		apiListings[i] = toApiListing(v)
	}

	return apiListings
}

func toApiBookedRanges(ranges []domain.StayRange) []api.BookedRange {
	bookedRanges := make([]api.BookedRange, len(ranges))

	for i, v := range ranges {
		bookedRanges[i] = api.BookedRange{
			StartDate: types.Date{Time: v.CheckIn},
			EndDate:   types.Date{Time: v.CheckOut},
		}
	}

	return bookedRanges
}
