package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBookingService/internal/authz"
	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/booking"
	directoryRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/directory"
	"github.com/m04kA/SMC-BarberBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	directory    Directory
	policy       Policy
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	directory Directory,
	policy Policy,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		directory:    directory,
		policy:       policy,
		metrics:      metrics,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// ListForIdentity возвращает бронирования в области видимости роли
//
// customer - по телефону (не по аккаунту: так находятся и гостевые бронирования),
// capster - назначенные на мастера, привязанного к аккаунту,
// admin - бронирования филиала.
// Сортировка: дата и время визита по убыванию, не более domain.MaxListedBookings
func (s *Service) ListForIdentity(ctx context.Context, identity domain.Identity) (*models.BookingListResponse, error) {
	if res := s.policy.Evaluate(authz.Subject{Identity: identity}, authz.ActionList, nil); !res.Allowed() {
		s.logger.Warn("ListForIdentity: denied: %s", res.Reason)
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, res.Reason)
	}

	var (
		list []*domain.BookingDetails
		err  error
	)

	switch id := identity.(type) {
	case domain.CustomerIdentity:
		s.logger.Info("ListForIdentity: customer=%s, phone=%s", id.ID, id.Phone)
		list, err = s.bookingRepo.FindByPhone(ctx, id.Phone, domain.MaxListedBookings)

	case domain.CapsterIdentity:
		capsterID, resolveErr := s.resolveCapster(ctx, id)
		if resolveErr != nil {
			return nil, resolveErr
		}
		if capsterID == "" {
			s.logger.Info("ListForIdentity: no capster record for user=%s, returning empty list", id.ID)
			return models.FromDomainBookingList(nil), nil
		}
		s.logger.Info("ListForIdentity: capster=%s (user=%s)", capsterID, id.ID)
		list, err = s.bookingRepo.FindByCapster(ctx, capsterID, domain.MaxListedBookings)

	case domain.AdminIdentity:
		s.logger.Info("ListForIdentity: admin=%s, branch=%s", id.ID, id.BranchID)
		list, err = s.bookingRepo.FindByBranch(ctx, id.BranchID, domain.MaxListedBookings)

	default:
		s.logger.Warn("ListForIdentity: unsupported identity %T", identity)
		return nil, ErrAccessDenied
	}

	if err != nil {
		s.logger.Error("ListForIdentity: repository error for role=%s: %v", identity.Role(), err)
		return nil, fmt.Errorf("%w: ListForIdentity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForIdentity: successfully fetched %d bookings for role=%s", len(list), identity.Role())
	return models.FromDomainBookingList(list), nil
}

// GetByID получает бронирование по ID
// Доступ определяется политикой (действие view)
func (s *Service) GetByID(ctx context.Context, id string, identity domain.Identity) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	details, err := s.findBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectFor(ctx, identity)
	if err != nil {
		return nil, err
	}

	if res := s.policy.Evaluate(subject, authz.ActionView, &details.Booking); !res.Allowed() {
		s.logger.Warn("GetByID: access denied to booking id=%s: %s", id, res.Reason)
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, res.Reason)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBookingDetails(details), nil
}

// SetStatus устанавливает статус бронирования
//
// Проверка роли выполняется до проверки значения: клиент получает отказ
// в доступе при любом запрошенном статусе. Переходы между статусами
// для мастера и администратора не ограничиваются
func (s *Service) SetStatus(ctx context.Context, id string, status string, identity domain.Identity) (*models.BookingResponse, error) {
	if res := s.policy.Evaluate(authz.Subject{Identity: identity}, authz.ActionSetStatus, nil); !res.Allowed() {
		s.logger.Warn("SetStatus: denied for booking id=%s: %s", id, res.Reason)
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, res.Reason)
	}

	newStatus, err := models.ToDomainBookingStatus(status)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status=%q for booking id=%s", status, id)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, status)
	}

	s.logger.Info("SetStatus: booking id=%s -> %s by role=%s", id, newStatus, identity.Role())

	if err := s.updateStatus(ctx, "SetStatus", id, newStatus); err != nil {
		return nil, err
	}

	details, err := s.findBooking(ctx, "SetStatus", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("SetStatus: successfully updated booking id=%s to %s", id, newStatus)
	return models.FromDomainBookingDetails(details), nil
}

// Cancel отменяет бронирование
// Клиент может отменить только свое бронирование. Повторная отмена не является ошибкой
func (s *Service) Cancel(ctx context.Context, id string, identity domain.Identity) error {
	s.logger.Info("Cancel: cancelling booking id=%s", id)

	details, err := s.findBooking(ctx, "Cancel", id)
	if err != nil {
		return err
	}

	if res := s.policy.Evaluate(authz.Subject{Identity: identity}, authz.ActionCancel, &details.Booking); !res.Allowed() {
		s.logger.Warn("Cancel: access denied to booking id=%s: %s", id, res.Reason)
		return fmt.Errorf("%w: %s", ErrAccessDenied, res.Reason)
	}

	if details.IsCancelled() {
		s.logger.Info("Cancel: booking id=%s is already cancelled", id)
		return nil
	}

	if err := s.updateStatus(ctx, "Cancel", id, domain.StatusCancelled); err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", id)
	return nil
}

func (s *Service) findBooking(ctx context.Context, op, id string) (*domain.BookingDetails, error) {
	details, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return details, nil
}

func (s *Service) updateStatus(ctx context.Context, op, id string, status domain.BookingStatus) error {
	// PostgreSQL хранит микросекунды
	now := s.timeProvider.Now().UTC().Truncate(time.Microsecond)

	if err := s.bookingRepo.UpdateStatus(ctx, id, status, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: failed to update status for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - failed to update status: %v", ErrInternal, op, err)
	}

	s.metrics.BookingStatusChanged(string(status))
	return nil
}

// subjectFor дополняет identity мастера ID записи в справочнике
func (s *Service) subjectFor(ctx context.Context, identity domain.Identity) (authz.Subject, error) {
	subject := authz.Subject{Identity: identity}

	capster, ok := identity.(domain.CapsterIdentity)
	if !ok {
		return subject, nil
	}

	capsterID, err := s.resolveCapster(ctx, capster)
	if err != nil {
		return subject, err
	}
	subject.CapsterID = capsterID
	return subject, nil
}

// resolveCapster возвращает пустую строку, если к аккаунту не привязан мастер
func (s *Service) resolveCapster(ctx context.Context, identity domain.CapsterIdentity) (string, error) {
	capster, err := s.directory.GetCapsterByUserID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, directoryRepo.ErrCapsterNotFound) {
			return "", nil
		}
		s.logger.Error("resolveCapster: directory error for user=%s: %v", identity.ID, err)
		return "", fmt.Errorf("%w: resolveCapster - directory error: %v", ErrInternal, err)
	}
	return capster.ID, nil
}
