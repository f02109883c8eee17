package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestpass-backend/models"
)

var guestRowColumns = []string{
	"id", "token", "type", "title", "first_name", "surname", "full_name", "phone", "email",
	"church_name", "position", "with_car", "registration_date",
}

func guestRows(guests ...models.Guest) *pgxmock.Rows {
	rows := pgxmock.NewRows(guestRowColumns)
	for _, g := range guests {
		church := "Grace Chapel"
		position := "Elder"
		rows.AddRow(g.ID, g.Token, string(g.Type), g.Title, g.FirstName, g.Surname, g.FullName,
			g.Phone, g.Email, &church, &position, g.WithCar, g.RegistrationDate)
	}
	return rows
}

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock), mock
}

func TestPostgresStore_SaveGuests(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO guests").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO guests").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := s.SaveGuests(context.Background(), []models.Guest{
		testGuest("TOK-1", models.GuestTypeVIP, now),
		testGuest("TOK-2", models.GuestTypeSpouse, now),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveGuests_DuplicateToken(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO guests").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO guests").WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := s.SaveGuests(context.Background(), []models.Guest{
		testGuest("TOK-1", models.GuestTypeVIP, now),
		testGuest("TOK-1", models.GuestTypeSpouse, now),
	})
	assert.ErrorIs(t, err, ErrDuplicateToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GuestByToken_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM guests WHERE token = \$1`).
		WithArgs("TOK-404").
		WillReturnRows(pgxmock.NewRows(guestRowColumns))

	_, err := s.GuestByToken(context.Background(), "TOK-404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GuestByToken_UnknownType(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM guests WHERE token = \$1`).
		WithArgs("TOK-1").
		WillReturnRows(guestRows(testGuest("TOK-1", models.GuestType("CHOIR"), time.Now())))

	_, err := s.GuestByToken(context.Background(), "TOK-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "CHOIR"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendCheckIn(t *testing.T) {
	s, mock := newMockStore(t)
	registered := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	guest := testGuest("TOK-1", models.GuestTypeVIP, registered)
	ev := models.CheckInEvent{Day: "Day 1", Timestamp: registered.Add(time.Hour), ScannerName: "Gate A"}

	mock.ExpectQuery(`FROM guests WHERE token = \$1`).WithArgs("TOK-1").WillReturnRows(guestRows(guest))
	mock.ExpectQuery(`WHERE guest_token = \$1`).WithArgs("TOK-1").
		WillReturnRows(pgxmock.NewRows([]string{"day", "checked_in_at", "scanner_name"}))
	mock.ExpectExec("INSERT INTO checkins").
		WithArgs("TOK-1", "Day 1", ev.Timestamp, "Gate A").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(`FROM guests WHERE token = \$1`).WithArgs("TOK-1").WillReturnRows(guestRows(guest))
	mock.ExpectQuery(`WHERE guest_token = \$1`).WithArgs("TOK-1").
		WillReturnRows(pgxmock.NewRows([]string{"day", "checked_in_at", "scanner_name"}).
			AddRow("Day 1", ev.Timestamp, "Gate A"))

	g, err := s.AppendCheckIn(context.Background(), "TOK-1", ev)
	require.NoError(t, err)
	require.Len(t, g.CheckIns, 1)
	assert.Equal(t, "Gate A", g.CheckIns[0].ScannerName)
	assert.Equal(t, "Elder", *g.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendCheckIn_SecondScannerLoses(t *testing.T) {
	s, mock := newMockStore(t)
	registered := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	guest := testGuest("TOK-1", models.GuestTypeVIP, registered)
	first := registered.Add(time.Hour)
	second := models.CheckInEvent{Day: "Day 1", Timestamp: registered.Add(2 * time.Hour), ScannerName: "Gate B"}

	mock.ExpectQuery(`FROM guests WHERE token = \$1`).WithArgs("TOK-1").WillReturnRows(guestRows(guest))
	mock.ExpectQuery(`WHERE guest_token = \$1`).WithArgs("TOK-1").
		WillReturnRows(pgxmock.NewRows([]string{"day", "checked_in_at", "scanner_name"}))
	mock.ExpectExec("ON CONFLICT").
		WithArgs("TOK-1", "Day 1", second.Timestamp, "Gate B").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery(`FROM guests WHERE token = \$1`).WithArgs("TOK-1").WillReturnRows(guestRows(guest))
	mock.ExpectQuery(`WHERE guest_token = \$1`).WithArgs("TOK-1").
		WillReturnRows(pgxmock.NewRows([]string{"day", "checked_in_at", "scanner_name"}).
			AddRow("Day 1", first, "Gate A"))

	g, err := s.AppendCheckIn(context.Background(), "TOK-1", second)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	require.Len(t, g.CheckIns, 1)
	assert.Equal(t, "Gate A", g.CheckIns[0].ScannerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_AppendCheckIn_UnknownToken(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM guests WHERE token = \$1`).WithArgs("TOK-404").
		WillReturnRows(pgxmock.NewRows(guestRowColumns))

	_, err := s.AppendCheckIn(context.Background(), "TOK-404", models.CheckInEvent{Day: "Day 1", Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListGuests_AttachesCheckIns(t *testing.T) {
	s, mock := newMockStore(t)
	registered := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	vip := testGuest("TOK-1", models.GuestTypeVIP, registered)
	pa := testGuest("TOK-2", models.GuestTypePA, registered.Add(time.Minute))

	mock.ExpectQuery(`FROM guests ORDER BY registration_date`).WillReturnRows(guestRows(vip, pa))
	mock.ExpectQuery(`FROM checkins\s+ORDER BY checked_in_at`).
		WillReturnRows(pgxmock.NewRows([]string{"guest_token", "day", "checked_in_at", "scanner_name"}).
			AddRow("TOK-2", "Day 1", registered.Add(time.Hour), "Gate A").
			AddRow("TOK-2", "Day 2", registered.Add(25*time.Hour), "Gate B").
			AddRow("TOK-gone", "Day 1", registered.Add(time.Hour), "Gate A"))

	guests, err := s.ListGuests(context.Background())
	require.NoError(t, err)
	require.Len(t, guests, 2)

	assert.Equal(t, "TOK-1", guests[0].Token)
	assert.Empty(t, guests[0].CheckIns)

	assert.Equal(t, "TOK-2", guests[1].Token)
	assert.Equal(t, models.GuestTypePA, guests[1].Type)
	require.Len(t, guests[1].CheckIns, 2)
	assert.Equal(t, "Day 1", guests[1].CheckIns[0].Day)
	assert.Equal(t, "Day 2", guests[1].CheckIns[1].Day)
	assert.NoError(t, mock.ExpectationsWereMet())
}
