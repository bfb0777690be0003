package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

// Create writes the atendimento row and its service lines in one
// transaction: a failure on any line leaves no orphaned parent row.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointment.ID = uuid.New()
	if appointment.Date.IsZero() {
		appointment.Date = time.Now()
	}

	err := r.WithRetry(ctx, func() error {
		return r.WithTx(ctx, func(tx *sqlx.Tx) error {
			query := `
				INSERT INTO atendimentos (
					id, usuario_id, valor_adicional, valor_total, data,
					metodo_pagamento_id
				) VALUES ($1, $2, $3, $4, $5, $6)
			`
			if _, err := tx.ExecContext(ctx, query,
				appointment.ID,
				appointment.AccountID,
				appointment.Surcharge,
				appointment.Total,
				appointment.Date,
				appointment.PaymentMethodID,
			); err != nil {
				return err
			}

			lineQuery := `
				INSERT INTO atendimentos_servicos (atendimento_id, servico_id)
				VALUES ($1, $2)
			`
			for _, serviceID := range appointment.ServiceIDs {
				if _, err := tx.ExecContext(ctx, lineQuery, appointment.ID, serviceID); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return fmt.Errorf("failed to record appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM atendimentos WHERE id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	lines := `SELECT servico_id FROM atendimentos_servicos WHERE atendimento_id = $1`
	if err := r.db.SelectContext(ctx, &appointment.ServiceIDs, lines, id); err != nil {
		return nil, fmt.Errorf("failed to load appointment services: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM atendimentos WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.AccountID != uuid.Nil {
			query += fmt.Sprintf(" AND usuario_id = $%d", len(args)+1)
			args = append(args, filters.AccountID)
		}
		if !filters.From.IsZero() {
			query += fmt.Sprintf(" AND data >= $%d", len(args)+1)
			args = append(args, filters.From)
		}
		if !filters.To.IsZero() {
			query += fmt.Sprintf(" AND data < $%d", len(args)+1)
			args = append(args, filters.To.AddDate(0, 0, 1))
		}
	}

	query += " ORDER BY data DESC"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) DailyReport(ctx context.Context, from, to time.Time) ([]*model.DailyReportRow, error) {
	query := `
		SELECT date_trunc('day', data) AS dia,
		       COUNT(*) AS atendimentos,
		       COALESCE(SUM(valor_total), 0) AS receita
		FROM atendimentos
		WHERE data >= $1 AND data < $2
		GROUP BY 1
		ORDER BY 1
	`

	var rows []*model.DailyReportRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to.AddDate(0, 0, 1)); err != nil {
		return nil, fmt.Errorf("failed to build daily report: %w", err)
	}
	return rows, nil
}
