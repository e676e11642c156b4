package service

import (
	"github.com/jafarshop/shopadmin/internal/domain"
	"github.com/jafarshop/shopadmin/internal/format"
)

type customerNode struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
}

func normalizeCustomer(n customerNode) (domain.CustomerRow, error) {
	row := domain.CustomerRow{
		ID:          n.ID,
		DisplayName: format.TitleCase(n.DisplayName),
	}
	if n.Email != nil {
		row.Email = *n.Email
	}
	if n.Phone != nil {
		row.Phone = *n.Phone
	}
	return row, nil
}
