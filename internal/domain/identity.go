package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCapster  Role = "capster"
	RoleAdmin    Role = "admin"
)

// Identity аутентифицированный пользователь. Реализации закрыты в этом пакете:
// CustomerIdentity, CapsterIdentity, AdminIdentity. Каждая несет только
// атрибуты своей роли
type Identity interface {
	Role() Role
	AccountID() string
	sealed()
}

// CustomerIdentity клиент. Phone используется как ключ поиска бронирований
type CustomerIdentity struct {
	ID    string
	Phone string
}

func (c CustomerIdentity) Role() Role        { return RoleCustomer }
func (c CustomerIdentity) AccountID() string { return c.ID }
func (CustomerIdentity) sealed()             {}

// CapsterIdentity мастер. ID аккаунта отличается от ID записи в справочнике
// мастеров и разрешается через Directory
type CapsterIdentity struct {
	ID string
}

func (c CapsterIdentity) Role() Role        { return RoleCapster }
func (c CapsterIdentity) AccountID() string { return c.ID }
func (CapsterIdentity) sealed()             {}

// AdminIdentity администратор филиала
type AdminIdentity struct {
	ID       string
	BranchID string
}

func (a AdminIdentity) Role() Role        { return RoleAdmin }
func (a AdminIdentity) AccountID() string { return a.ID }
func (AdminIdentity) sealed()             {}

// NewIdentity собирает вариант по роли из плоских атрибутов внешнего
// хранилища учетных записей. Неизвестная роль возвращает ok=false
func NewIdentity(role Role, accountID, phone, branchID string) (Identity, bool) {
	switch role {
	case RoleCustomer:
		return CustomerIdentity{ID: accountID, Phone: phone}, true
	case RoleCapster:
		return CapsterIdentity{ID: accountID}, true
	case RoleAdmin:
		return AdminIdentity{ID: accountID, BranchID: branchID}, true
	default:
		return nil, false
	}
}
