package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stayhaven/stayhaven/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create commits the booking only if its stay is free. The listing row is
// locked for the duration of the transaction, so concurrent commits for the
// same listing are serialized while commits for other listings proceed in
// parallel. The exclusion constraint on bookings backs the same invariant at
// the database level.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var listingId int

		err := tx.QueryRow(ctx, `SELECT id FROM listings WHERE id = $1 FOR UPDATE`, booking.ListingID).Scan(&listingId)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		query := `
			SELECT count(*)
			FROM bookings
			WHERE listing_id = $1
				AND status <> 'cancelled'
				AND start_date < $3
				AND end_date > $2
		`

		var conflicts int
		err = tx.QueryRow(ctx, query, booking.ListingID, booking.Stay.CheckIn, booking.Stay.CheckOut).Scan(&conflicts)
		if err != nil {
			return err
		}

		if conflicts > 0 {
			return domain.ErrBookingConflict
		}

		booking.Reference = uuid.NewString()
		booking.Status = domain.BookingStatusConfirmed

		query = `
			INSERT INTO bookings (reference, listing_id, guest_id, start_date, end_date, total_price, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.ListingID,
			booking.GuestID,
			booking.Stay.CheckIn,
			booking.Stay.CheckOut,
			booking.TotalPrice,
			booking.Status).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
				return domain.ErrBookingConflict
			}

			return err
		}

		return nil
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresBookingRepository) GetWithHostById(ctx context.Context, id int) (*domain.BookingWithHost, error) {
	query := `
		SELECT b.id, b.reference, b.listing_id, b.guest_id, b.start_date, b.end_date,
			b.total_price, b.status, b.created_at, b.updated_at, l.host_id
		FROM bookings b
		JOIN listings l ON b.listing_id = l.id
		WHERE b.id = $1
	`

	var booking domain.BookingWithHost

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ListingID,
		&booking.GuestID,
		&booking.Stay.CheckIn,
		&booking.Stay.CheckOut,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.HostID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &booking, nil
}

// Cancel performs the conditional transition in a single statement, so a
// racing duplicate cancel observes ErrBookingAlreadyCancelled rather than
// silently succeeding twice.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status <> $2
		RETURNING id, reference, listing_id, guest_id, start_date, end_date,
			total_price, status, created_at, updated_at
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id, domain.BookingStatusCancelled).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.ListingID,
		&booking.GuestID,
		&booking.Stay.CheckIn,
		&booking.Stay.CheckOut,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err == nil {
		return &booking, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// The update matched nothing: either the booking does not exist, or it
	// has already reached the cancelled status.
	var status domain.BookingStatus

	err = p.db.QueryRow(ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	if status == domain.BookingStatusCancelled {
		return nil, domain.ErrBookingAlreadyCancelled
	}

	return nil, domain.ErrRecordNotFound
}

func (p *PostgresBookingRepository) GetSummariesByGuestId(
	ctx context.Context,
	guestId int,
	pagination domain.Pagination) ([]domain.GuestBookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.reference,
			b.start_date,
			b.end_date,
			b.total_price,
			b.status,
			b.created_at,
			l.id,
			l.title,
			COALESCE(l.image_urls[1], ''),
			l.city,
			l.country,
			l.nightly_price
		FROM bookings b
		JOIN listings l ON b.listing_id = l.id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, guestId, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.GuestBookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.GuestBookingSummary

		err := rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.Reference,
			&booking.Stay.CheckIn,
			&booking.Stay.CheckOut,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.ListingID,
			&booking.ListingTitle,
			&booking.ListingImageUrl,
			&booking.ListingCity,
			&booking.ListingCountry,
			&booking.NightlyPrice,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetSummariesByHostId(
	ctx context.Context,
	hostId int,
	pagination domain.Pagination) ([]domain.HostBookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.reference,
			b.start_date,
			b.end_date,
			b.total_price,
			b.status,
			b.created_at,
			l.id,
			l.title,
			u.id,
			u.name,
			u.email
		FROM bookings b
		JOIN listings l ON b.listing_id = l.id
		JOIN users u ON b.guest_id = u.id
		WHERE l.host_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, hostId, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.HostBookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.HostBookingSummary

		err := rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.Reference,
			&booking.Stay.CheckIn,
			&booking.Stay.CheckOut,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.ListingID,
			&booking.ListingTitle,
			&booking.GuestID,
			&booking.GuestName,
			&booking.GuestEmail,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) GetActiveRangesByListingId(
	ctx context.Context,
	listingId int) ([]domain.StayRange, error) {

	query := `
		SELECT start_date, end_date
		FROM bookings
		WHERE listing_id = $1 AND status <> 'cancelled'
		ORDER BY start_date
	`

	rows, err := p.db.Query(ctx, query, listingId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ranges := make([]domain.StayRange, 0)

	for rows.Next() {
		var stay domain.StayRange

		err = rows.Scan(&stay.CheckIn, &stay.CheckOut)
		if err != nil {
			return nil, err
		}

		ranges = append(ranges, stay)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ranges, nil
}
