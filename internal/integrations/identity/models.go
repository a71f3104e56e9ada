package identity

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-BarberBookingService/internal/domain"
)

// User пользователь из сервиса учетных записей
type User struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	BranchID string `json:"branch_id,omitempty"`
}

// Claims claims access-токена. Subject = ID аккаунта
type Claims struct {
	Role     string `json:"role"`
	Phone    string `json:"phone,omitempty"`
	BranchID string `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// toIdentity собирает вариант Identity по роли
func toIdentity(accountID, role, phone, branchID string) (domain.Identity, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	identity, ok := domain.NewIdentity(domain.Role(role), accountID, phone, branchID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	return identity, nil
}
