package model

import (
	"github.com/gestorpi/gestor-api/pkg/money"
)

// Service is a catalog entry (table servicos).
type Service struct {
	Base
	Description string      `json:"descricao" db:"descricao"`
	Price       money.Money `json:"preco" db:"preco"`
}

type CreateServiceRequest struct {
	Description string `json:"descricao" binding:"required"`
	// Price arrives as text so that "10,50" and "10.50" both parse.
	Price string `json:"preco" binding:"required"`
}
