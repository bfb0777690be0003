package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository handles usuarios operations
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByLogin(ctx context.Context, login string) (*model.Account, error)
		List(ctx context.Context) ([]*model.Account, error)
		SetActive(ctx context.Context, id uuid.UUID, active bool) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListProfiles(ctx context.Context) ([]*model.Profile, error)
	}

	// ServiceRepository handles the servicos catalog
	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error)
		List(ctx context.Context) ([]*model.Service, error)
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// PaymentMethodRepository handles metodos_pagamento reference data
	PaymentMethodRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error)
		List(ctx context.Context) ([]*model.PaymentMethod, error)
	}

	// AppointmentRepository persists atendimentos and their service lines
	AppointmentRepository interface {
		// Create writes the appointment row and one line per service id in a
		// single transaction.
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		DailyReport(ctx context.Context, from, to time.Time) ([]*model.DailyReportRow, error)
	}

	// SessionRepository tracks live sessions with a sliding expiry window
	SessionRepository interface {
		Create(ctx context.Context, sessionID string, accountID uuid.UUID, ttl time.Duration) error
		// Touch verifies the session exists and refreshes its TTL.
		Touch(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
		Revoke(ctx context.Context, sessionID string) error
	}

	// AuditRepository appends audit log entries
	AuditRepository interface {
		Create(ctx context.Context, entry *model.AuditLog) error
	}
)
