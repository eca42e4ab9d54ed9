// Package prefs stores each user's current formula, measurement system and
// gender selection in a local SQLite database.
package prefs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/claude/bodyfat/internal/formulas"
	"github.com/claude/bodyfat/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned by Get when a user has no saved preferences.
var ErrNotFound = errors.New("preferences not found")

// ErrInvalid is wrapped by Put when a selection is not recognized.
var ErrInvalid = errors.New("invalid preferences")

// Preferences is a user's current selection.
type Preferences struct {
	User      string                   `json:"user"`
	Formula   models.FormulaID         `json:"formula"`
	System    models.MeasurementSystem `json:"system"`
	Gender    models.Gender            `json:"gender"`
	UpdatedAt time.Time                `json:"updated_at,omitzero"`
}

// Validate reports the first unrecognized selection.
func (p Preferences) Validate() error {
	switch {
	case p.User == "":
		return fmt.Errorf("%w: user is required", ErrInvalid)
	case !formulas.IsAvailable(p.Formula):
		return fmt.Errorf("%w: unknown formula %q", ErrInvalid, p.Formula)
	case !p.System.Valid():
		return fmt.Errorf("%w: unknown measurement system %q", ErrInvalid, p.System)
	case !p.Gender.Valid():
		return fmt.Errorf("%w: unknown gender %q", ErrInvalid, p.Gender)
	}
	return nil
}

// Store is a SQLite-backed preference store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the preference database at dir/prefs.db and
// applies pending migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating preferences dir %s: %w", dir, err)
	}
	dbPath := filepath.Join(dir, "prefs.db")

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening preferences db: %w", err)
	}
	// A single connection serializes writers; SQLite allows one at a time.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging preferences db: %w", err)
	}
	return &Store{db: db}, nil
}

// RunMigrations applies all embedded migrations to the database at dbPath.
func RunMigrations(dbPath string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+dbPath)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the saved preferences of user.
func (s *Store) Get(ctx context.Context, user string) (*Preferences, error) {
	var (
		p         Preferences
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, formula, system, gender, updated_at FROM preferences WHERE user_id = ?`,
		user,
	).Scan(&p.User, &p.Formula, &p.System, &p.Gender, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying preferences: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

// Put validates and saves p, replacing any previous selection for p.User.
// The stored UpdatedAt is returned in the result.
func (s *Store) Put(ctx context.Context, p Preferences) (*Preferences, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO preferences (user_id, formula, system, gender, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			formula = excluded.formula,
			system = excluded.system,
			gender = excluded.gender,
			updated_at = excluded.updated_at`,
		p.User, string(p.Formula), string(p.System), string(p.Gender), p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("saving preferences: %w", err)
	}
	return &p, nil
}

// Delete removes the saved preferences of user. Deleting a user with no
// preferences is not an error.
func (s *Store) Delete(ctx context.Context, user string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE user_id = ?`, user); err != nil {
		return fmt.Errorf("deleting preferences: %w", err)
	}
	return nil
}
