package store

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"guestpass-backend/models"
)

//go:embed schema.sql
var schemaSQL string

const guestColumns = `id, token, type, title, first_name, surname, full_name, phone, email,
	church_name, position, with_car, registration_date`

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Connect opens a pool against dbURL and verifies it with a ping.
func Connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Info("Successfully connected to the database")
	return pool, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveGuests(ctx context.Context, guests []models.Guest) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO guests (` + guestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, g := range guests {
		_, err := tx.Exec(ctx, query,
			g.ID,
			g.Token,
			string(g.Type),
			g.Title,
			g.FirstName,
			g.Surname,
			g.FullName,
			g.Phone,
			g.Email,
			g.ChurchName,
			g.Position,
			g.WithCar,
			g.RegistrationDate,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDuplicateToken
			}
			return fmt.Errorf("insert guest %s: %w", g.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GuestByToken(ctx context.Context, token string) (models.Guest, error) {
	row := s.db.QueryRow(ctx, `SELECT `+guestColumns+` FROM guests WHERE token = $1`, token)
	g, err := scanGuest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Guest{}, ErrNotFound
		}
		return models.Guest{}, fmt.Errorf("select guest: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT day, checked_in_at, scanner_name
		FROM checkins
		WHERE guest_token = $1
		ORDER BY checked_in_at ASC, id ASC
	`, token)
	if err != nil {
		return models.Guest{}, fmt.Errorf("select checkins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ci models.CheckInEvent
		if err := rows.Scan(&ci.Day, &ci.Timestamp, &ci.ScannerName); err != nil {
			return models.Guest{}, fmt.Errorf("scan checkin: %w", err)
		}
		g.CheckIns = append(g.CheckIns, ci)
	}
	return g, rows.Err()
}

// AppendCheckIn relies on the (guest_token, day) unique constraint so two
// scanners racing on the same pass cannot both record a check-in.
func (s *PostgresStore) AppendCheckIn(ctx context.Context, token string, event models.CheckInEvent) (models.Guest, error) {
	if _, err := s.GuestByToken(ctx, token); err != nil {
		return models.Guest{}, err
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO checkins (guest_token, day, checked_in_at, scanner_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guest_token, day) DO NOTHING
	`, token, event.Day, event.Timestamp, event.ScannerName)
	if err != nil {
		return models.Guest{}, fmt.Errorf("insert checkin: %w", err)
	}

	g, err := s.GuestByToken(ctx, token)
	if err != nil {
		return models.Guest{}, err
	}
	if tag.RowsAffected() == 0 {
		return g, ErrAlreadyCheckedIn
	}
	return g, nil
}

func (s *PostgresStore) ListGuests(ctx context.Context) ([]models.Guest, error) {
	rows, err := s.db.Query(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY registration_date ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("select guests: %w", err)
	}
	defer rows.Close()

	var guests []models.Guest
	index := make(map[string]int)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan guest: %w", err)
		}
		index[g.Token] = len(guests)
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ciRows, err := s.db.Query(ctx, `
		SELECT guest_token, day, checked_in_at, scanner_name
		FROM checkins
		ORDER BY checked_in_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("select checkins: %w", err)
	}
	defer ciRows.Close()

	for ciRows.Next() {
		var token string
		var ci models.CheckInEvent
		if err := ciRows.Scan(&token, &ci.Day, &ci.Timestamp, &ci.ScannerName); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		if i, ok := index[token]; ok {
			guests[i].CheckIns = append(guests[i].CheckIns, ci)
		}
	}
	return guests, ciRows.Err()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanGuest(row pgx.Row) (models.Guest, error) {
	var g models.Guest
	var guestType string
	err := row.Scan(
		&g.ID,
		&g.Token,
		&guestType,
		&g.Title,
		&g.FirstName,
		&g.Surname,
		&g.FullName,
		&g.Phone,
		&g.Email,
		&g.ChurchName,
		&g.Position,
		&g.WithCar,
		&g.RegistrationDate,
	)
	if err != nil {
		return models.Guest{}, err
	}
	g.Type = models.GuestType(guestType)
	if !g.Type.Valid() {
		return models.Guest{}, fmt.Errorf("guest %s: unknown type %q", g.ID, guestType)
	}
	return g, nil
}
