package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("user not found")

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Profile is the locally stored mirror of a Firebase user.
type Profile struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"firebase_uid"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpsertUser struct {
	FirebaseUID string
	Email       string
	DisplayName string
	PhotoURL    string
}

// EnsureUser inserts or refreshes the profile row for a Firebase user.
// Empty fields never overwrite previously stored values.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.FirebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into users (firebase_uid, email, display_name, photo_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  photo_url = coalesce(excluded.photo_url, users.photo_url),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRowContext(ctx, q, u.FirebaseUID, u.Email, u.DisplayName, u.PhotoURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// GetByUID returns the stored profile for a Firebase UID.
func (r *Repo) GetByUID(ctx context.Context, firebaseUID string) (*Profile, error) {
	const q = `
select id::text, firebase_uid, coalesce(email,''), coalesce(display_name,''), coalesce(photo_url,''), created_at, updated_at
from users
where firebase_uid = $1;
`
	var p Profile
	err := r.db.QueryRowContext(ctx, q, firebaseUID).
		Scan(&p.ID, &p.FirebaseUID, &p.Email, &p.DisplayName, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateProfile replaces the display name and avatar for a Firebase UID.
func (r *Repo) UpdateProfile(ctx context.Context, firebaseUID, displayName, photoURL string) error {
	const q = `
update users
set display_name = nullif($2,''), photo_url = nullif($3,''), updated_at = now()
where firebase_uid = $1;
`
	res, err := r.db.ExecContext(ctx, q, firebaseUID, displayName, photoURL)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
