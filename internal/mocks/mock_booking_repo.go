package mocks

import (
	"context"

	"github.com/stayhaven/stayhaven/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepo) GetWithHostById(ctx context.Context, id int) (*domain.BookingWithHost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingWithHost), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetSummariesByGuestId(
	ctx context.Context,
	guestId int,
	pagination domain.Pagination) ([]domain.GuestBookingSummary, *domain.Metadata, error) {

	args := m.Called(ctx, guestId, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.GuestBookingSummary), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingRepo) GetSummariesByHostId(
	ctx context.Context,
	hostId int,
	pagination domain.Pagination) ([]domain.HostBookingSummary, *domain.Metadata, error) {

	args := m.Called(ctx, hostId, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.HostBookingSummary), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingRepo) GetActiveRangesByListingId(ctx context.Context, listingId int) ([]domain.StayRange, error) {
	args := m.Called(ctx, listingId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StayRange), args.Error(1)
}
