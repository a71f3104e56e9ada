package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/authz"
	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/booking"
	directoryRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/directory"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	directory    Directory
	policy       Policy
	idGenerator  IDGenerator
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directory Directory,
	policy Policy,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		directory:    directory,
		policy:       policy,
		idGenerator:  UUIDv7Generator{},
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithIDGenerator подменяет генератор идентификаторов
func (uc *UseCase) WithIDGenerator(gen IDGenerator) *UseCase {
	uc.idGenerator = gen
	return uc
}

// Execute создает бронирование в статусе pending
//
// Ни при одной ошибке проверки запись не создается. customer_id заполняется
// только если бронирование создает сам клиент; бронирования, созданные
// мастером или администратором за клиента, остаются без привязки к аккаунту
func (uc *UseCase) Execute(ctx context.Context, req *Request, identity domain.Identity) (*domain.BookingDetails, error) {
	// 1. Политика доступа
	if res := uc.policy.Evaluate(authz.Subject{Identity: identity}, authz.ActionCreate, nil); !res.Allowed() {
		uc.logger.Warn("CreateBooking: denied: %s", res.Reason)
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, res.Reason)
	}

	// 2. Валидация входных данных
	d, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: role=%s, branch=%s, service=%s, date=%s, time=%s",
		identity.Role(), d.branchID, d.serviceID, d.bookingDate.Format(domain.DateFormat), d.bookingTime)

	// 3. Услуга должна быть активна на момент создания
	service, err := uc.directory.GetActiveService(ctx, d.serviceID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found or inactive", d.serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", d.serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	id, err := uc.idGenerator.NewID()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to generate id: %v", err)
		return nil, fmt.Errorf("%w: failed to generate id: %v", ErrInternal, err)
	}

	// PostgreSQL хранит микросекунды, обрезаем заранее, чтобы ответ совпадал с БД
	now := uc.timeProvider.Now().UTC().Truncate(time.Microsecond)

	// 4. Собираем бронирование со снимком категории услуги
	booking := &domain.Booking{
		ID:                 id,
		CustomerPhone:      d.customerPhone,
		CustomerName:       d.customerName,
		BranchID:           d.branchID,
		ServiceID:          service.ID,
		CapsterID:          d.capsterID,
		RequestedCapsterID: d.capsterID,
		BookingDate:        d.bookingDate,
		BookingTime:        d.bookingTime,
		ServiceTier:        service.Tier,
		Notes:              d.notes,
		Status:             domain.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if identity.Role() == domain.RoleCustomer {
		accountID := identity.AccountID()
		booking.CustomerID = &accountID
	}

	// 5. Сохраняем
	if err := uc.bookingRepo.Insert(ctx, booking); err != nil {
		uc.logger.Error("CreateBooking: failed to insert booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to insert booking: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated(booking.ServiceTier)

	// 6. Перечитываем вместе с данными услуги, мастера и филиала
	details, err := uc.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("CreateBooking: booking id=%s disappeared after insert", id)
		} else {
			uc.logger.Error("CreateBooking: failed to read back booking id=%s: %v", id, err)
		}
		return nil, fmt.Errorf("%w: failed to read back booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, tier=%s", id, booking.ServiceTier)
	return details, nil
}
