// Package authz содержит политику доступа к бронированиям.
// Все проверки ролей и владения собраны в Evaluate, чтобы ужесточение правил
// было изменением политики, а не движка бронирований.
package authz

import "github.com/m04kA/SMC-BarberBookingService/internal/domain"

// Action действие над бронированием
type Action string

const (
	ActionCreate    Action = "create"
	ActionList      Action = "list"
	ActionView      Action = "view"
	ActionSetStatus Action = "set_status"
	ActionCancel    Action = "cancel"
)

// Decision результат проверки доступа
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// DenyReason причина отказа
type DenyReason int

const (
	ReasonNone DenyReason = iota
	ReasonUnauthenticated
	ReasonRoleForbidden
	ReasonNotOwner
	ReasonOutOfScope
	ReasonUnknownAction
)

func (r DenyReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnauthenticated:
		return "no identity"
	case ReasonRoleForbidden:
		return "role is not allowed to perform action"
	case ReasonNotOwner:
		return "booking is not owned by customer"
	case ReasonOutOfScope:
		return "booking is outside identity scope"
	case ReasonUnknownAction:
		return "unknown action"
	default:
		return "unknown"
	}
}

// Result решение и причина отказа (Reason имеет смысл только при Deny)
type Result struct {
	Decision Decision
	Reason   DenyReason
}

// Allowed true, если действие разрешено
func (r Result) Allowed() bool {
	return r.Decision == Allow
}

func allow() Result {
	return Result{Decision: Allow, Reason: ReasonNone}
}

func deny(reason DenyReason) Result {
	return Result{Decision: Deny, Reason: reason}
}

// Subject кто выполняет действие
type Subject struct {
	Identity domain.Identity
	// CapsterID ID мастера в справочнике, разрешенный по аккаунту.
	// Пустой, если роль не capster или запись не найдена
	CapsterID string
}

// Policy политика доступа
type Policy struct {
	// StrictPointLookup ограничивает просмотр бронирования по ID областью
	// видимости роли. При false любой аутентифицированный пользователь может
	// получить любое бронирование
	StrictPointLookup bool
}

// NewPolicy создает политику
func NewPolicy(strictPointLookup bool) *Policy {
	return &Policy{StrictPointLookup: strictPointLookup}
}

// Evaluate проверяет, может ли subject выполнить action над booking.
// Для ActionCreate и ActionList booking может быть nil
//
// Правила:
//   - create, list: любая роль
//   - set_status: клиенту запрещено всегда, мастеру и администратору разрешено
//   - cancel: клиент только свое бронирование (по customer_id), остальные роли без ограничений
//   - view: см. StrictPointLookup
func (p *Policy) Evaluate(subject Subject, action Action, booking *domain.Booking) Result {
	if subject.Identity == nil {
		return deny(ReasonUnauthenticated)
	}

	role := subject.Identity.Role()

	switch action {
	case ActionCreate, ActionList:
		return allow()

	case ActionSetStatus:
		if role == domain.RoleCustomer {
			return deny(ReasonRoleForbidden)
		}
		return allow()

	case ActionCancel:
		if role != domain.RoleCustomer {
			return allow()
		}
		if booking == nil || !booking.IsOwnedBy(subject.Identity.AccountID()) {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionView:
		if !p.StrictPointLookup {
			return allow()
		}
		if booking == nil || !p.inScope(subject, booking) {
			return deny(ReasonOutOfScope)
		}
		return allow()

	default:
		return deny(ReasonUnknownAction)
	}
}

// inScope та же область видимости, что и у списка бронирований роли
func (p *Policy) inScope(subject Subject, booking *domain.Booking) bool {
	switch id := subject.Identity.(type) {
	case domain.CustomerIdentity:
		return booking.CustomerPhone == id.Phone || booking.IsOwnedBy(id.ID)
	case domain.CapsterIdentity:
		return booking.IsAssignedTo(subject.CapsterID)
	case domain.AdminIdentity:
		return id.BranchID != "" && booking.BranchID == id.BranchID
	default:
		return false
	}
}
