package domain

import "github.com/shopspring/decimal"

// Service услуга из каталога
type Service struct {
	ID              string
	Name            string
	Tier            string
	Price           decimal.Decimal
	DurationMinutes int
	IsActive        bool
}

// Capster запись справочника мастеров, связанная с аккаунтом через UserID
type Capster struct {
	ID          string
	UserID      string
	DisplayName string
	BranchID    *string
}

// Branch филиал
type Branch struct {
	ID      string
	Name    string
	Address *string
}
