package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
)

type accountRepository struct {
	BaseRepository
}

func NewAccountRepository(base BaseRepository) repository.AccountRepository {
	return &accountRepository{base}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO usuarios (
			id, nome, sobrenome, cpf, telefone, email, login,
			senha_hash, perfil_id, data_nascimento, ativo,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	err := r.WithRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query,
			account.ID,
			account.Name,
			account.Surname,
			account.NationalID,
			account.Phone,
			account.Email,
			account.Login,
			account.PasswordHash,
			account.ProfileID,
			account.BirthDate,
			account.Active,
			account.CreatedAt,
			account.UpdatedAt,
		)
		return err
	})
	if err != nil {
		// The unique constraint on login is the backstop for concurrent
		// creations racing past the pre-insert existence check.
		if isUniqueViolation(err) {
			return apperrors.DuplicateLogin(account.Login)
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `SELECT * FROM usuarios WHERE id = $1`

	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByLogin matches the login case-sensitively, following the column's
// default collation.
func (r *accountRepository) GetByLogin(ctx context.Context, login string) (*model.Account, error) {
	query := `SELECT * FROM usuarios WHERE login = $1`

	var account model.Account
	if err := r.db.GetContext(ctx, &account, query, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get account by login: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*model.Account, error) {
	query := `SELECT * FROM usuarios ORDER BY nome, sobrenome`

	var accounts []*model.Account
	if err := r.db.SelectContext(ctx, &accounts, query); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// SetActive stores the requested value as-is. The UPDATE is idempotent:
// applying the same value twice leaves a single stable state.
func (r *accountRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE usuarios
		SET ativo = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to update account status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM usuarios WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("account", nil)
	}
	return nil
}

func (r *accountRepository) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	query := `SELECT id, nome FROM perfis ORDER BY id`

	var profiles []*model.Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
