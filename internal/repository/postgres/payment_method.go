package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
)

type paymentMethodRepository struct {
	BaseRepository
}

func NewPaymentMethodRepository(base BaseRepository) repository.PaymentMethodRepository {
	return &paymentMethodRepository{base}
}

func (r *paymentMethodRepository) Get(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	query := `SELECT id, descricao FROM metodos_pagamento WHERE id = $1`

	var method model.PaymentMethod
	if err := r.db.GetContext(ctx, &method, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("payment method", err)
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return &method, nil
}

func (r *paymentMethodRepository) List(ctx context.Context) ([]*model.PaymentMethod, error) {
	query := `SELECT id, descricao FROM metodos_pagamento ORDER BY descricao`

	var methods []*model.PaymentMethod
	if err := r.db.SelectContext(ctx, &methods, query); err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	return methods, nil
}
