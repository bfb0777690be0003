package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/pkg/money"
)

// Appointment is a recorded service visit (table atendimentos). The total is
// fixed at creation time and never recomputed.
type Appointment struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	AccountID       uuid.UUID   `json:"usuario_id" db:"usuario_id"`
	Surcharge       money.Money `json:"valor_adicional" db:"valor_adicional"`
	Total           money.Money `json:"valor_total" db:"valor_total"`
	Date            time.Time   `json:"data" db:"data"`
	PaymentMethodID uuid.UUID   `json:"metodo_pagamento_id" db:"metodo_pagamento_id"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`

	ServiceIDs []uuid.UUID `json:"servicos" db:"-"`
}

// AppointmentLine joins an appointment to one rendered service
// (table atendimentos_servicos).
type AppointmentLine struct {
	AppointmentID uuid.UUID `json:"atendimento_id" db:"atendimento_id"`
	ServiceID     uuid.UUID `json:"servico_id" db:"servico_id"`
}

type RecordAppointmentRequest struct {
	ServiceIDs      []uuid.UUID `json:"servicos"`
	Surcharge       string      `json:"valor_adicional"`
	PaymentMethodID uuid.UUID   `json:"metodo_pagamento_id" binding:"required"`
}

type AppointmentFilters struct {
	AccountID uuid.UUID `form:"usuario_id"`
	From      time.Time `form:"de" time_format:"2006-01-02"`
	To        time.Time `form:"ate" time_format:"2006-01-02"`
}

// DailyReportRow aggregates recorded appointments per day.
type DailyReportRow struct {
	Day     time.Time   `json:"dia" db:"dia"`
	Count   int         `json:"atendimentos" db:"atendimentos"`
	Revenue money.Money `json:"receita" db:"receita"`
}
