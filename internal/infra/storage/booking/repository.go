package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	"github.com/m04kA/SMC-BarberBookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// detailsColumns колонки бронирования и денормализованные поля из справочников
var detailsColumns = []string{
	"b.id",
	"b.customer_phone",
	"b.customer_name",
	"b.customer_id",
	"b.branch_id",
	"b.service_id",
	"b.capster_id",
	"b.requested_capster_id",
	"b.booking_date",
	"b.booking_time",
	"b.service_tier",
	"b.notes",
	"b.status",
	"b.created_at",
	"b.updated_at",
	"s.service_name",
	"s.price",
	"s.duration_minutes",
	"c.display_name",
	"br.name",
	"br.address",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет новое бронирование. ID генерируется вызывающей стороной,
// коллизия ID возвращает ErrDuplicateID
func (r *Repository) Insert(ctx context.Context, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"customer_phone",
			"customer_name",
			"customer_id",
			"branch_id",
			"service_id",
			"capster_id",
			"requested_capster_id",
			"booking_date",
			"booking_time",
			"service_tier",
			"notes",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			booking.ID,
			booking.CustomerPhone,
			booking.CustomerName,
			booking.CustomerID,
			booking.BranchID,
			booking.ServiceID,
			booking.CapsterID,
			booking.RequestedCapsterID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.BookingTime,
			booking.ServiceTier,
			booking.Notes,
			booking.Status,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: id=%s", ErrDuplicateID, booking.ID)
		}
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatus заменяет статус и обновляет updated_at
// Остальные поля не изменяются
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time) error {
	if !isValidID(id) {
		return ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// FindByID получает бронирование по ID вместе с данными услуги, мастера и филиала
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.BookingDetails, error) {
	if !isValidID(id) {
		return nil, ErrBookingNotFound
	}

	query, args, err := selectDetails().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - scan booking: %v", ErrScanRow, err)
	}

	return details, nil
}

// FindByPhone получает бронирования по телефону клиента
func (r *Repository) FindByPhone(ctx context.Context, phone string, limit int) ([]*domain.BookingDetails, error) {
	return r.findList(ctx, "FindByPhone", squirrel.Eq{"b.customer_phone": phone}, limit)
}

// FindByCapster получает бронирования мастера (ID из справочника мастеров)
func (r *Repository) FindByCapster(ctx context.Context, capsterID string, limit int) ([]*domain.BookingDetails, error) {
	return r.findList(ctx, "FindByCapster", squirrel.Eq{"b.capster_id": capsterID}, limit)
}

// FindByBranch получает бронирования филиала
func (r *Repository) FindByBranch(ctx context.Context, branchID string, limit int) ([]*domain.BookingDetails, error) {
	return r.findList(ctx, "FindByBranch", squirrel.Eq{"b.branch_id": branchID}, limit)
}

// findList сортировка по дате и времени визита, сначала самые поздние
func (r *Repository) findList(ctx context.Context, op string, where squirrel.Sqlizer, limit int) ([]*domain.BookingDetails, error) {
	query, args, err := listQuery(where, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

func selectDetails() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("bookings b").
		LeftJoin("service_catalog s ON s.id = b.service_id").
		LeftJoin("capsters c ON c.id = b.capster_id").
		LeftJoin("branches br ON br.id = b.branch_id")
}

func listQuery(where squirrel.Sqlizer, limit int) squirrel.SelectBuilder {
	if limit <= 0 || limit > domain.MaxListedBookings {
		limit = domain.MaxListedBookings
	}

	return selectDetails().
		Where(where).
		OrderBy("b.booking_date DESC", "b.booking_time DESC").
		Limit(uint64(limit))
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDetails(row rowScanner) (*domain.BookingDetails, error) {
	var (
		details  domain.BookingDetails
		price    decimal.NullDecimal
		duration sql.NullInt64
	)

	err := row.Scan(
		&details.ID,
		&details.CustomerPhone,
		&details.CustomerName,
		&details.CustomerID,
		&details.BranchID,
		&details.ServiceID,
		&details.CapsterID,
		&details.RequestedCapsterID,
		&details.BookingDate,
		&details.BookingTime,
		&details.ServiceTier,
		&details.Notes,
		&details.Status,
		&details.CreatedAt,
		&details.UpdatedAt,
		&details.ServiceName,
		&price,
		&duration,
		&details.CapsterName,
		&details.BranchName,
		&details.BranchAddress,
	)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		details.ServicePrice = &price.Decimal
	}
	if duration.Valid {
		minutes := int(duration.Int64)
		details.DurationMinutes = &minutes
	}

	return &details, nil
}

// isValidID колонка id имеет тип UUID, некорректная строка не может существовать
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
