package access

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gestorpi/gestor-api/internal/email"
	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	"github.com/gestorpi/gestor-api/internal/service/audit"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
	"github.com/gestorpi/gestor-api/pkg/security"
)

// bcryptCost is the fixed hashing cost factor.
const bcryptCost = 12

const birthDateLayout = "2006-01-02"

type AccessServicer interface {
	CreateAccount(ctx context.Context, actorID uuid.UUID, req *model.CreateAccountRequest) (*model.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error)
	ListAccounts(ctx context.Context) ([]*model.Account, error)
	SetActive(ctx context.Context, actorID, id uuid.UUID, active bool) error
	DeleteAccount(ctx context.Context, actorID, id uuid.UUID) error
	ListProfiles(ctx context.Context) ([]*model.Profile, error)
}

type Service struct {
	accountRepo repository.AccountRepository
	hasher      security.PasswordHasher
	emailSvc    email.Service
	auditor     *audit.Service
}

func NewService(
	accountRepo repository.AccountRepository,
	emailSvc email.Service,
	auditor *audit.Service,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		hasher:      security.NewBcryptHasher(bcryptCost),
		emailSvc:    emailSvc,
		auditor:     auditor,
	}
}

// CreateAccount validates the request, rejects duplicate logins and stores
// the account with a hashed password. The existence pre-check is not atomic
// with the insert; the unique constraint on login backstops the race and the
// repository maps that violation to the same DuplicateLogin error.
func (s *Service) CreateAccount(ctx context.Context, actorID uuid.UUID, req *model.CreateAccountRequest) (*model.Account, error) {
	birthDate, err := time.Parse(birthDateLayout, req.BirthDate)
	if err != nil {
		return nil, apperrors.Validation("invalid birth date, expected YYYY-MM-DD", err)
	}

	if req.ProfileID != model.ProfileAdministrator && req.ProfileID != model.ProfileAttendant {
		return nil, apperrors.Validation("unknown profile", nil)
	}

	existing, err := s.accountRepo.GetByLogin(ctx, req.Login)
	if err != nil && apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, apperrors.StoreUnavailable(err)
	}
	if existing != nil {
		return nil, apperrors.DuplicateLogin(req.Login)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	account := &model.Account{
		Name:         req.Name,
		Surname:      req.Surname,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		Email:        req.Email,
		Login:        req.Login,
		PasswordHash: hash,
		ProfileID:    req.ProfileID,
		BirthDate:    birthDate,
		Active:       true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if apperrors.KindOf(err) == apperrors.KindDuplicateLogin {
			return nil, err
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	s.auditor.Log(ctx, actorID, "create", "account", account.ID.String())

	if err := s.emailSvc.SendWelcome(account.Email, account.Name); err != nil {
		log.Warn().Err(err).Str("email", account.Email).Msg("welcome email failed")
	}

	return account, nil
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.accountRepo.Get(ctx, id)
}

func (s *Service) ListAccounts(ctx context.Context) ([]*model.Account, error) {
	return s.accountRepo.List(ctx)
}

// SetActive stores the requested value directly. Repeating the call with the
// same value is a no-op.
func (s *Service) SetActive(ctx context.Context, actorID, id uuid.UUID, active bool) error {
	if err := s.accountRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	action := "deactivate"
	if active {
		action = "activate"
	}
	s.auditor.Log(ctx, actorID, action, "account", id.String())
	return nil
}

func (s *Service) DeleteAccount(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditor.Log(ctx, actorID, "delete", "account", id.String())
	return nil
}

func (s *Service) ListProfiles(ctx context.Context) ([]*model.Profile, error) {
	return s.accountRepo.ListProfiles(ctx)
}
