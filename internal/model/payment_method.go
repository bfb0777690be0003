package model

import "github.com/google/uuid"

// PaymentMethod is static reference data (table metodos_pagamento).
type PaymentMethod struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"descricao" db:"descricao"`
}
