package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stayhaven/stayhaven/api"
	"github.com/stayhaven/stayhaven/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type paginationParams struct {
	Page     *int `validate:"omitempty,min=1"`
	PageSize *int `validate:"omitempty,min=1,max=50"`
}

func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

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

	// Validation is ordered; the first failing rule wins and nothing is
	// persisted on any failure path.
	stay := domain.NewStayRange(input.StartDate.Time, input.EndDate.Time)
	if !stay.IsValid() {
		app.badRequestResponse(w, r, domain.ErrInvalidDateRange)
		return
	}

	if stay.CheckIn.Before(domain.ToDate(time.Now())) {
		app.badRequestResponse(w, r, domain.ErrPastCheckInDate)
		return
	}

	listing, err := app.listingRepo.GetById(r.Context(), input.ListingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	guestId := app.contextGetUserId(r)

	if guestId == listing.HostID {
		app.badRequestResponse(w, r, domain.ErrSelfBooking)
		return
	}

	booking := &domain.Booking{
		ListingID:  listing.ID,
		GuestID:    guestId,
		Stay:       stay,
		TotalPrice: listing.NightlyPrice.Mul(decimal.NewFromInt(int64(stay.Nights()))),
	}

	err = app.bookingRepo.Create(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingConflict):
			logger.Warn("booking rejected due to date conflict",
				"listing_id", listing.ID,
				"start_date", stay.CheckIn.Format(time.DateOnly),
				"end_date", stay.CheckOut.Format(time.DateOnly))
			app.metrics.bookingConflicts.Add(r.Context(), 1)
			app.badRequestResponse(w, r, domain.ErrBookingConflict)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.bookingsCreated.Add(r.Context(), 1)
	logger.Info("booking created", "booking_id", booking.ID, "listing_id", listing.ID)

	app.sendBookingMail(r, booking, "booking_confirmation.tmpl", listing.Title)

	resp := toBookingResponse(booking)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	id, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetWithHostById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Only the guest who booked or the host of the booked listing may cancel.
	actorId := app.contextGetUserId(r)

	if actorId != booking.GuestID && actorId != booking.HostID {
		logger.Warn("unauthorized cancellation attempt", "booking_id", id)
		app.forbiddenResponse(w, r)
		return
	}

	cancelled, err := app.bookingRepo.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			app.badRequestResponse(w, r, domain.ErrBookingAlreadyCancelled)
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.bookingsCanceled.Add(r.Context(), 1)
	logger.Info("booking cancelled", "booking_id", id)

	app.sendBookingMail(r, cancelled, "booking_cancelled.tmpl", "")

	resp := toBookingResponse(cancelled)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	params, err := readPaginationParams(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	guestId := app.contextGetUserId(r)
	pagination := toPagination(params)

	bookings, metadata, err := app.bookingRepo.GetSummariesByGuestId(r.Context(), guestId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.GuestBookingsResponse{
		Bookings: toGuestBookings(bookings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetHostBookings(w http.ResponseWriter, r *http.Request) {
	params, err := readPaginationParams(r.URL.Query())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	hostId := app.contextGetUserId(r)
	pagination := toPagination(params)

	bookings, metadata, err := app.bookingRepo.GetSummariesByHostId(r.Context(), hostId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.HostBookingsResponse{
		Bookings: toHostBookings(bookings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// sendBookingMail notifies the guest asynchronously. Delivery is best effort:
// a failed send is logged, never surfaced to the request.
func (app *Application) sendBookingMail(r *http.Request, booking *domain.Booking, templateFile, listingTitle string) {
	// The send outlives the request; keep the request-scoped values (request
	// id, logger) but not its cancellation.
	ctx := context.WithoutCancel(r.Context())
	r = r.WithContext(ctx)

	go func() {
		gLogger := app.contextGetLogger(r)

		defer func() {
			if err := recover(); err != nil {
				gLogger.Error("panic occurred during sending booking mail", "panic", err)
			}
		}()

		guest, err := app.userRepo.GetById(r.Context(), booking.GuestID)
		if err != nil {
			gLogger.Error("failed to load guest for booking mail", "error", err)
			return
		}

		data := map[string]any{
			"guestName":    guest.Name,
			"listingTitle": listingTitle,
			"reference":    booking.Reference,
			"checkIn":      booking.Stay.CheckIn.Format(time.DateOnly),
			"checkOut":     booking.Stay.CheckOut.Format(time.DateOnly),
			"totalPrice":   booking.TotalPrice.StringFixed(2),
		}

		err = app.mailer.Send(guest.Email, templateFile, data)
		if err != nil {
			gLogger.Error("failed to send booking mail", "error", err)
		}
	}()
}

func toPagination(params paginationParams) domain.Pagination {
	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	return pagination
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:         booking.ID,
		Reference:  booking.Reference,
		ListingId:  booking.ListingID,
		GuestId:    booking.GuestID,
		StartDate:  types.Date{Time: booking.Stay.CheckIn},
		EndDate:    types.Date{Time: booking.Stay.CheckOut},
		Nights:     booking.Stay.Nights(),
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		CreatedAt:  booking.CreatedAt,
	}
}

func toGuestBookings(bookings []domain.GuestBookingSummary) []api.GuestBooking {
	guestBookings := make([]api.GuestBooking, len(bookings))

	for i, v := range bookings {
		guestBooking := &guestBookings[i]

		guestBooking.Id = v.BookingID
		guestBooking.Reference = v.Reference
		guestBooking.StartDate = types.Date{Time: v.Stay.CheckIn}
		guestBooking.EndDate = types.Date{Time: v.Stay.CheckOut}
		guestBooking.TotalPrice = v.TotalPrice
		guestBooking.Status = string(v.Status)
		guestBooking.CreatedAt = v.CreatedAt
		guestBooking.ListingId = v.ListingID
		guestBooking.ListingTitle = v.ListingTitle
		guestBooking.ListingImageUrl = v.ListingImageUrl
		guestBooking.ListingCity = v.ListingCity
		guestBooking.ListingCountry = v.ListingCountry
		guestBooking.NightlyPrice = v.NightlyPrice
	}

	return guestBookings
}

func toHostBookings(bookings []domain.HostBookingSummary) []api.HostBooking {
	hostBookings := make([]api.HostBooking, len(bookings))

	for i, v := range bookings {
		hostBooking := &hostBookings[i]

		hostBooking.Id = v.BookingID
		hostBooking.Reference = v.Reference
		hostBooking.StartDate = types.Date{Time: v.Stay.CheckIn}
		hostBooking.EndDate = types.Date{Time: v.Stay.CheckOut}
		hostBooking.TotalPrice = v.TotalPrice
		hostBooking.Status = string(v.Status)
		hostBooking.CreatedAt = v.CreatedAt
		hostBooking.ListingId = v.ListingID
		hostBooking.ListingTitle = v.ListingTitle
		hostBooking.GuestId = v.GuestID
		hostBooking.GuestName = v.GuestName
		hostBooking.GuestEmail = v.GuestEmail
	}

	return hostBookings
}
