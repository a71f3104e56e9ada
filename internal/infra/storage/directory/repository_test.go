package directory

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	serviceColumns = []string{"id", "service_name", "service_tier", "price", "duration_minutes", "is_active"}
	capsterColumns = []string{"id", "user_id", "display_name", "branch_id"}

	activeServiceSQL = regexp.QuoteMeta(
		"SELECT id, service_name, service_tier, price, duration_minutes, is_active " +
			"FROM service_catalog WHERE id = $1 AND is_active = $2",
	)
	capsterSQL = regexp.QuoteMeta(
		"SELECT id, user_id, display_name, branch_id FROM capsters WHERE user_id = $1",
	)
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return NewRepository(db), mock
}

func TestRepository_GetActiveService(t *testing.T) {
	t.Run("active", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(activeServiceSQL).
			WithArgs("svc-1", true).
			WillReturnRows(sqlmock.NewRows(serviceColumns).
				AddRow("svc-1", "Classic Haircut", "premium", "75000.50", int64(45), true))

		got, err := repo.GetActiveService(context.Background(), "svc-1")
		require.NoError(t, err)
		assert.Equal(t, "svc-1", got.ID)
		assert.Equal(t, "Classic Haircut", got.Name)
		assert.Equal(t, "premium", got.Tier)
		assert.True(t, decimal.RequireFromString("75000.50").Equal(got.Price))
		assert.Equal(t, 45, got.DurationMinutes)
		assert.True(t, got.IsActive)
	})

	t.Run("inactive or missing", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		// неактивная услуга отсекается условием is_active, строк нет
		mock.ExpectQuery(activeServiceSQL).
			WithArgs("svc-old", true).
			WillReturnRows(sqlmock.NewRows(serviceColumns))

		_, err := repo.GetActiveService(context.Background(), "svc-old")
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(activeServiceSQL).
			WithArgs("svc-1", true).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetActiveService(context.Background(), "svc-1")
		assert.ErrorIs(t, err, ErrScanRow)
		assert.NotErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestRepository_GetCapsterByUserID(t *testing.T) {
	t.Run("linked", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(capsterSQL).
			WithArgs("u-capster").
			WillReturnRows(sqlmock.NewRows(capsterColumns).AddRow("cap-1", "u-capster", "Andi", "b1"))

		got, err := repo.GetCapsterByUserID(context.Background(), "u-capster")
		require.NoError(t, err)
		assert.Equal(t, "cap-1", got.ID)
		assert.Equal(t, "u-capster", got.UserID)
		assert.Equal(t, "Andi", got.DisplayName)
		require.NotNil(t, got.BranchID)
		assert.Equal(t, "b1", *got.BranchID)
	})

	t.Run("without branch", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(capsterSQL).
			WithArgs("u-freelance").
			WillReturnRows(sqlmock.NewRows(capsterColumns).AddRow("cap-2", "u-freelance", "Rudi", nil))

		got, err := repo.GetCapsterByUserID(context.Background(), "u-freelance")
		require.NoError(t, err)
		assert.Nil(t, got.BranchID)
	})

	t.Run("not linked", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(capsterSQL).
			WithArgs("u-admin").
			WillReturnRows(sqlmock.NewRows(capsterColumns))

		_, err := repo.GetCapsterByUserID(context.Background(), "u-admin")
		assert.ErrorIs(t, err, ErrCapsterNotFound)
	})
}
