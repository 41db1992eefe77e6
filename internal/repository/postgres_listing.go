package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayhaven/stayhaven/internal/domain"
)

type PostgresListingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresListingRepository(db *pgxpool.Pool) *PostgresListingRepository {
	return &PostgresListingRepository{
		db: db,
	}
}

func (p *PostgresListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	query := `
		INSERT INTO listings
			(host_id, title, description, nightly_price, address, city, country,
			image_urls, amenities, max_guests, bedrooms, bathrooms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		listing.HostID,
		listing.Title,
		listing.Description,
		listing.NightlyPrice,
		listing.Address,
		listing.City,
		listing.Country,
		listing.ImageUrls,
		listing.Amenities,
		listing.MaxGuests,
		listing.Bedrooms,
		listing.Bathrooms).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (p *PostgresListingRepository) GetById(ctx context.Context, id int) (*domain.Listing, error) {
	query := `
		SELECT id, host_id, title, description, nightly_price, address, city, country,
			image_urls, amenities, max_guests, bedrooms, bathrooms, created_at, updated_at
		FROM listings
		WHERE id = $1
	`

	var listing domain.Listing

	err := p.db.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.HostID,
		&listing.Title,
		&listing.Description,
		&listing.NightlyPrice,
		&listing.Address,
		&listing.City,
		&listing.Country,
		&listing.ImageUrls,
		&listing.Amenities,
		&listing.MaxGuests,
		&listing.Bedrooms,
		&listing.Bathrooms,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &listing, nil
}

func (p *PostgresListingRepository) GetAll(
	ctx context.Context,
	filters domain.ListingFilters) ([]*domain.Listing, *domain.Metadata, error) {

	// The availability window excludes listings that have a non-cancelled
	// booking overlapping [AvailableFrom, AvailableTo) under the half-open
	// interval test.
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), l.id, l.host_id, l.title, l.description, l.nightly_price,
			l.address, l.city, l.country, l.image_urls, l.amenities, l.max_guests,
			l.bedrooms, l.bathrooms, l.created_at
		FROM listings l
		WHERE ((to_tsvector('english', l.title) @@ plainto_tsquery('english', $1)
			OR to_tsvector('english', l.description) @@ plainto_tsquery('english', $1)
			OR l.city ILIKE '%%' || $1 || '%%')
			OR $1 = '')
			AND ($2::numeric IS NULL OR l.nightly_price >= $2)
			AND ($3::numeric IS NULL OR l.nightly_price <= $3)
			AND ($4::int = 0 OR l.max_guests >= $4)
			AND ($5::date IS NULL OR $6::date IS NULL OR NOT EXISTS (
				SELECT 1
				FROM bookings b
				WHERE b.listing_id = l.id
					AND b.status <> 'cancelled'
					AND b.start_date < $6
					AND b.end_date > $5))
		ORDER BY %s %s
		LIMIT $7 OFFSET $8`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(
		ctx,
		query,
		filters.Term,
		filters.MinPrice,
		filters.MaxPrice,
		filters.Guests,
		filters.AvailableFrom,
		filters.AvailableTo,
		filters.Limit(),
		filters.Offset(),
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	listings := []*domain.Listing{}

	for rows.Next() {
		var listing domain.Listing

		err := rows.Scan(
			&totalRecords,
			&listing.ID,
			&listing.HostID,
			&listing.Title,
			&listing.Description,
			&listing.NightlyPrice,
			&listing.Address,
			&listing.City,
			&listing.Country,
			&listing.ImageUrls,
			&listing.Amenities,
			&listing.MaxGuests,
			&listing.Bedrooms,
			&listing.Bathrooms,
			&listing.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		listings = append(listings, &listing)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return listings, metadata, nil
}

func (p *PostgresListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, nightly_price = $3, address = $4,
			city = $5, country = $6, image_urls = $7, amenities = $8,
			max_guests = $9, bedrooms = $10, bathrooms = $11, updated_at = NOW()
		WHERE id = $12
		RETURNING updated_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		listing.Title,
		listing.Description,
		listing.NightlyPrice,
		listing.Address,
		listing.City,
		listing.Country,
		listing.ImageUrls,
		listing.Amenities,
		listing.MaxGuests,
		listing.Bedrooms,
		listing.Bathrooms,
		listing.ID).Scan(&listing.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

// Delete removes the listing and, through ON DELETE CASCADE, its bookings.
func (p *PostgresListingRepository) Delete(ctx context.Context, id int) error {
	result, err := p.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresListingRepository) GetByHostId(ctx context.Context, hostId int) ([]*domain.Listing, error) {
	query := `
		SELECT id, host_id, title, description, nightly_price, address, city, country,
			image_urls, amenities, max_guests, bedrooms, bathrooms, created_at, updated_at
		FROM listings
		WHERE host_id = $1
		ORDER BY created_at DESC
	`

	rows, err := p.db.Query(ctx, query, hostId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []*domain.Listing{}

	for rows.Next() {
		var listing domain.Listing

		err := rows.Scan(
			&listing.ID,
			&listing.HostID,
			&listing.Title,
			&listing.Description,
			&listing.NightlyPrice,
			&listing.Address,
			&listing.City,
			&listing.Country,
			&listing.ImageUrls,
			&listing.Amenities,
			&listing.MaxGuests,
			&listing.Bedrooms,
			&listing.Bathrooms,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		)

		if err != nil {
			return nil, err
		}

		listings = append(listings, &listing)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return listings, nil
}
