// Package repo contains all database access logic for the HiVoyage API.
// No business logic lives here — only SQL and type mapping.
//
// The trip is an aggregate root: itinerary and packing rows are only ever
// written inside the same transaction as their parent trip, so a child row
// whose parent does not exist can never be observed.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/hivoyage/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation without any manual cleanup.
// Begin on a pgx.Tx opens a savepoint, so nesting stays correct in tests.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for the trip aggregate.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock
// or with the in-memory implementation in mem.go.
type TripRepo interface {
	// Create inserts a new trip aggregate and returns the persisted record
	// (with DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a full trip aggregate (itinerary and packing included)
	// by its UUID primary key. Returns domain.ErrNotFound if no trip exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByOwner returns all trip aggregates for an owner, ordered by
	// start_date ascending with unscheduled trips last, then by created_at.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error)

	// Save overwrites the scalar fields of an existing trip and fully
	// replaces its child collections, atomically. Returns domain.ErrNotFound
	// if the trip no longer exists.
	Save(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and all of its children atomically.
	// Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListMissingCoordinates returns every trip (across all owners) that has
	// no resolved latitude/longitude yet. Children are not loaded; pair with
	// UpdateCoordinates, which touches nothing but the coordinate columns.
	ListMissingCoordinates(ctx context.Context) ([]domain.Trip, error)

	// UpdateCoordinates sets the coordinates of a single trip without
	// rewriting any other field or the child collections. Returns
	// domain.ErrNotFound if the trip no longer exists.
	UpdateCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, owner_id, owner_email, destination, start_date, end_date,
		latitude, longitude, created_at, updated_at`

// Create inserts the trip row and its children in one transaction.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		INSERT INTO trips (owner_id, owner_email, destination, start_date, end_date, latitude, longitude)
		VALUES (@owner_id, @owner_email, @destination, @start_date, @end_date, @latitude, @longitude)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"owner_id":    trip.OwnerID,
		"owner_email": trip.OwnerEmail,
		"destination": trip.Destination,
		"start_date":  trip.StartDate, // nil becomes NULL
		"end_date":    trip.EndDate,
		"latitude":    trip.Latitude,
		"longitude":   trip.Longitude,
	}

	result, err := scanTrip(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if err := insertChildren(ctx, tx, result.ID, trip.Itinerary, trip.Packing); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: commit: %w", err)
	}

	result.Itinerary = append([]domain.ItineraryItem{}, trip.Itinerary...)
	result.Packing = append([]domain.PackingItem{}, trip.Packing...)
	result.NormalizeChildren()
	return result, nil
}

// GetByID retrieves a trip by primary key, children included.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	if err := r.loadChildren(ctx, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

// ListByOwner returns the owner's trips with children, scheduled trips first
// in ascending start-date order.
func (r *pgTripRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner_id = @owner_id
		ORDER BY start_date ASC NULLS LAST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	byID := map[uuid.UUID]int{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: scan: %w", err)
		}
		byID[t.ID] = len(trips)
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: rows: %w", err)
	}
	if len(trips) == 0 {
		return []domain.Trip{}, nil
	}

	// Two bulk queries instead of 2N per-trip lookups.
	const itinQ = `
		SELECT i.trip_id, i.day, i.title, i.location, i.description
		FROM itinerary_items i
		JOIN trips t ON t.id = i.trip_id
		WHERE t.owner_id = @owner_id
		ORDER BY i.day ASC, i.id ASC`
	itinRows, err := r.db.Query(ctx, itinQ, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: itinerary: %w", err)
	}
	defer itinRows.Close()
	for itinRows.Next() {
		var tripID pgtype.UUID
		var item domain.ItineraryItem
		if err := itinRows.Scan(&tripID, &item.Day, &item.Title, &item.Location, &item.Description); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: itinerary scan: %w", err)
		}
		if i, ok := byID[uuid.UUID(tripID.Bytes)]; ok {
			trips[i].Itinerary = append(trips[i].Itinerary, item)
		}
	}
	if err := itinRows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: itinerary rows: %w", err)
	}

	const packQ = `
		SELECT p.trip_id, p.name, p.checked
		FROM packing_items p
		JOIN trips t ON t.id = p.trip_id
		WHERE t.owner_id = @owner_id
		ORDER BY p.id ASC`
	packRows, err := r.db.Query(ctx, packQ, pgx.NamedArgs{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: packing: %w", err)
	}
	defer packRows.Close()
	for packRows.Next() {
		var tripID pgtype.UUID
		var item domain.PackingItem
		if err := packRows.Scan(&tripID, &item.Name, &item.Checked); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListByOwner: packing scan: %w", err)
		}
		if i, ok := byID[uuid.UUID(tripID.Bytes)]; ok {
			trips[i].Packing = append(trips[i].Packing, item)
		}
	}
	if err := packRows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListByOwner: packing rows: %w", err)
	}

	for i := range trips {
		trips[i].NormalizeChildren()
	}
	return trips, nil
}

// Save updates the trip's scalar fields and replaces both child collections
// in a single transaction. Two concurrent saves of the same trip serialize on
// the row update, so a renumbered itinerary can never be half-applied.
func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const q = `
		UPDATE trips
		SET destination = @destination,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    latitude    = @latitude,
		    longitude   = @longitude,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"latitude":    trip.Latitude,
		"longitude":   trip.Longitude,
	}

	result, err := scanTrip(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM itinerary_items WHERE trip_id = @id`, pgx.NamedArgs{"id": trip.ID}); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: clear itinerary: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM packing_items WHERE trip_id = @id`, pgx.NamedArgs{"id": trip.ID}); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: clear packing: %w", err)
	}
	if err := insertChildren(ctx, tx, trip.ID, trip.Itinerary, trip.Packing); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Save: commit: %w", err)
	}

	result.Itinerary = append([]domain.ItineraryItem{}, trip.Itinerary...)
	result.Packing = append([]domain.PackingItem{}, trip.Packing...)
	result.NormalizeChildren()
	return result, nil
}

// Delete removes the trip by primary key. Child rows go with it via the
// ON DELETE CASCADE foreign keys, keeping the aggregate delete atomic.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ListMissingCoordinates returns trips lacking either coordinate, oldest first.
func (r *pgTripRepo) ListMissingCoordinates(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE latitude IS NULL OR longitude IS NULL
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListMissingCoordinates: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListMissingCoordinates: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListMissingCoordinates: rows: %w", err)
	}
	return trips, nil
}

// UpdateCoordinates writes only the coordinate columns.
func (r *pgTripRepo) UpdateCoordinates(ctx context.Context, id uuid.UUID, lat, lon float64) error {
	const q = `
		UPDATE trips
		SET latitude = @latitude, longitude = @longitude, updated_at = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "latitude": lat, "longitude": lon})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.UpdateCoordinates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.UpdateCoordinates: %w", domain.ErrNotFound)
	}
	return nil
}

// loadChildren populates the trip's itinerary and packing slices.
func (r *pgTripRepo) loadChildren(ctx context.Context, trip *domain.Trip) error {
	const itinQ = `
		SELECT day, title, location, description
		FROM itinerary_items
		WHERE trip_id = @trip_id
		ORDER BY day ASC, id ASC`

	itinRows, err := r.db.Query(ctx, itinQ, pgx.NamedArgs{"trip_id": trip.ID})
	if err != nil {
		return fmt.Errorf("itinerary: %w", err)
	}
	defer itinRows.Close()
	for itinRows.Next() {
		var item domain.ItineraryItem
		if err := itinRows.Scan(&item.Day, &item.Title, &item.Location, &item.Description); err != nil {
			return fmt.Errorf("itinerary scan: %w", err)
		}
		trip.Itinerary = append(trip.Itinerary, item)
	}
	if err := itinRows.Err(); err != nil {
		return fmt.Errorf("itinerary rows: %w", err)
	}

	const packQ = `
		SELECT name, checked
		FROM packing_items
		WHERE trip_id = @trip_id
		ORDER BY id ASC`

	packRows, err := r.db.Query(ctx, packQ, pgx.NamedArgs{"trip_id": trip.ID})
	if err != nil {
		return fmt.Errorf("packing: %w", err)
	}
	defer packRows.Close()
	for packRows.Next() {
		var item domain.PackingItem
		if err := packRows.Scan(&item.Name, &item.Checked); err != nil {
			return fmt.Errorf("packing scan: %w", err)
		}
		trip.Packing = append(trip.Packing, item)
	}
	if err := packRows.Err(); err != nil {
		return fmt.Errorf("packing rows: %w", err)
	}

	trip.NormalizeChildren()
	return nil
}

// insertChildren writes the child collections for a trip within the caller's
// transaction. Insertion order is preserved via the bigserial id column.
func insertChildren(ctx context.Context, tx pgx.Tx, tripID uuid.UUID, itinerary []domain.ItineraryItem, packing []domain.PackingItem) error {
	const itinQ = `
		INSERT INTO itinerary_items (trip_id, day, title, location, description)
		VALUES (@trip_id, @day, @title, @location, @description)`
	for _, item := range itinerary {
		args := pgx.NamedArgs{
			"trip_id":     tripID,
			"day":         item.Day,
			"title":       item.Title,
			"location":    item.Location,
			"description": item.Description,
		}
		if _, err := tx.Exec(ctx, itinQ, args); err != nil {
			return fmt.Errorf("insert itinerary item: %w", err)
		}
	}

	const packQ = `
		INSERT INTO packing_items (trip_id, name, checked)
		VALUES (@trip_id, @name, @checked)`
	for _, item := range packing {
		args := pgx.NamedArgs{
			"trip_id": tripID,
			"name":    item.Name,
			"checked": item.Checked,
		}
		if _, err := tx.Exec(ctx, packQ, args); err != nil {
			return fmt.Errorf("insert packing item: %w", err)
		}
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanTrip to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, nullable date, and nullable coordinate conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		ownerID   pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		lat       pgtype.Float8
		lon       pgtype.Float8
	)

	err := s.Scan(&id, &ownerID, &t.OwnerEmail, &t.Destination, &startDate, &endDate,
		&lat, &lon, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.OwnerID = uuid.UUID(ownerID.Bytes)
	if startDate.Valid {
		sd := startDate.Time
		t.StartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		t.EndDate = &ed
	}
	if lat.Valid {
		v := lat.Float64
		t.Latitude = &v
	}
	if lon.Valid {
		v := lon.Float64
		t.Longitude = &v
	}

	return t, nil
}
