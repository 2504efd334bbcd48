//go:build unit

package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reservationColumns = []string{"id", "guest_name", "room_id", "duration_in_days"}

func newReservationRepoWithMock(t *testing.T) (*ReservationRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewReservationRepository(mock), mock
}

func TestReservationRepository_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newReservationRepoWithMock(t)
		candidate, err := reservation.NewReservation("Ana", 1, 3)
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
			WithArgs("Ana", int64(1), 3).
			WillReturnRows(pgxmock.NewRows(reservationColumns).AddRow(int64(1), "Ana", int64(1), int32(3)))

		created, err := repo.Create(context.Background(), candidate)

		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID())
		assert.Equal(t, 3, created.DurationInDays())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock := newReservationRepoWithMock(t)
		candidate, err := reservation.NewReservation("Ana", 1, 3)
		require.NoError(t, err)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations")).
			WithArgs("Ana", int64(1), 3).
			WillReturnError(errors.New("too many connections"))

		_, err = repo.Create(context.Background(), candidate)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newReservationRepoWithMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 9)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_Update(t *testing.T) {
	repo, mock := newReservationRepoWithMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reservations")).
		WithArgs(int64(2), "Luis", int64(5), 4).
		WillReturnRows(pgxmock.NewRows(reservationColumns).AddRow(int64(2), "Luis", int64(5), int32(4)))

	updated, err := repo.Update(context.Background(), reservation.Reconstruct(2, "Luis", 5, 4))

	require.NoError(t, err)
	assert.Equal(t, int64(5), updated.RoomID())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_Delete(t *testing.T) {
	repo, mock := newReservationRepoWithMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reservations WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 2)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
