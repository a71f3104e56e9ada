package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/psqlbuilder"
)

type DBExecutor = dbmetrics.DBExecutor

// Repository чтение справочников: каталог услуг и мастера
// Справочники управляются вне этого сервиса, здесь только чтение
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveService получает активную услугу каталога
// Неактивная услуга считается отсутствующей
func (r *Repository) GetActiveService(ctx context.Context, serviceID string) (*domain.Service, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"service_name",
		"service_tier",
		"price",
		"duration_minutes",
		"is_active",
	).
		From("service_catalog").
		Where(squirrel.Eq{"id": serviceID, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.Tier,
		&service.Price,
		&service.DurationMinutes,
		&service.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// GetCapsterByUserID получает запись мастера по ID его аккаунта
func (r *Repository) GetCapsterByUserID(ctx context.Context, userID string) (*domain.Capster, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"user_id",
		"display_name",
		"branch_id",
	).
		From("capsters").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCapsterByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var capster domain.Capster
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&capster.ID,
		&capster.UserID,
		&capster.DisplayName,
		&capster.BranchID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapsterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapsterByUserID - scan capster: %v", ErrScanRow, err)
	}

	return &capster, nil
}
