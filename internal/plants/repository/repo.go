package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/plantkeeper/plantkeeper-backend/internal/plants/domain"
)

const plantColumns = `
id, name, category, care_level, watering_frequency,
coalesce(health_status,''), coalesce(last_watered,''), coalesce(next_watering,''),
coalesce(description,''), coalesce(image_url,''),
owner_email, coalesce(owner_name,''), created_at, updated_at`

// Repo provides persistence operations for plants.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts a new plant and returns its generated id.
func (r *Repo) Create(ctx context.Context, p *domain.Plant) (string, error) {
	id := uuid.New().String()

	const q = `
INSERT INTO plants (
  id, name, category, care_level, watering_frequency, health_status,
  last_watered, next_watering, description, image_url, owner_email, owner_name
)
VALUES ($1, $2, $3, $4, $5, nullif($6,''), nullif($7,''), nullif($8,''), nullif($9,''), nullif($10,''), $11, nullif($12,''))
RETURNING id;
`
	var inserted string
	err := r.db.QueryRowContext(ctx, q,
		id, p.Name, p.Category, p.CareLevel, p.WateringFrequency, p.HealthStatus,
		p.LastWatered, p.NextWatering, p.Description, p.Image, p.OwnerEmail, p.OwnerName,
	).Scan(&inserted)
	if err != nil {
		return "", err
	}
	return inserted, nil
}

// List returns every plant, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Plant, error) {
	const q = `
SELECT ` + plantColumns + `
FROM plants
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlants(rows)
}

// ListByOwner returns the plants owned by the given email, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Plant, error) {
	const q = `
SELECT ` + plantColumns + `
FROM plants
WHERE owner_email = $1
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, ownerEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlants(rows)
}

// Get returns one plant by id.
func (r *Repo) Get(ctx context.Context, id string) (*domain.Plant, error) {
	const q = `
SELECT ` + plantColumns + `
FROM plants
WHERE id = $1;
`
	var p domain.Plant
	err := scanPlant(r.db.QueryRowContext(ctx, q, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update replaces the mutable fields of a plant and reports how many rows
// changed (0 when the id is unknown).
func (r *Repo) Update(ctx context.Context, id string, p *domain.Plant) (int64, error) {
	const q = `
UPDATE plants
SET name = $2, category = $3, care_level = $4, watering_frequency = $5,
    health_status = nullif($6,''), last_watered = nullif($7,''), next_watering = nullif($8,''),
    description = nullif($9,''), image_url = nullif($10,''), updated_at = now()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		id, p.Name, p.Category, p.CareLevel, p.WateringFrequency, p.HealthStatus,
		p.LastWatered, p.NextWatering, p.Description, p.Image,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a plant and reports how many rows were deleted.
func (r *Repo) Delete(ctx context.Context, id string) (int64, error) {
	const q = `DELETE FROM plants WHERE id = $1;`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListDue returns plants whose next-watering date is on or before the given
// ISO date. Dates are stored as YYYY-MM-DD text, which orders correctly
// under string comparison.
func (r *Repo) ListDue(ctx context.Context, date string) ([]domain.Plant, error) {
	const q = `
SELECT ` + plantColumns + `
FROM plants
WHERE next_watering IS NOT NULL AND next_watering <= $1
ORDER BY next_watering ASC;
`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPlants(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlant(row scanner, p *domain.Plant) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Category, &p.CareLevel, &p.WateringFrequency,
		&p.HealthStatus, &p.LastWatered, &p.NextWatering,
		&p.Description, &p.Image,
		&p.OwnerEmail, &p.OwnerName, &p.CreatedAt, &p.UpdatedAt,
	)
}

func scanPlants(rows *sql.Rows) ([]domain.Plant, error) {
	out := make([]domain.Plant, 0, 16)
	for rows.Next() {
		var p domain.Plant
		if err := scanPlant(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
