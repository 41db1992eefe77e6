package mocks

import (
	"context"

	"github.com/stayhaven/stayhaven/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockListingRepo struct {
	mock.Mock
	domain.ListingRepository
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepo) GetById(ctx context.Context, id int) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepo) GetAll(
	ctx context.Context,
	filters domain.ListingFilters) ([]*domain.Listing, *domain.Metadata, error) {

	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*domain.Listing), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockListingRepo) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepo) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepo) GetByHostId(ctx context.Context, hostId int) ([]*domain.Listing, error) {
	args := m.Called(ctx, hostId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
