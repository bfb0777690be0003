package auth

import (
	"context"
	"time"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	"github.com/gestorpi/gestor-api/pkg/auth"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
	"github.com/gestorpi/gestor-api/pkg/security"
)

type Service struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	expiry      time.Duration
}

func NewService(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	expiry time.Duration,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		expiry:      expiry,
	}
}

// Verify checks submitted credentials against the stored account. The active
// gate runs before the password comparison: a correct password on a disabled
// account still fails with Deactivated.
func (s *Service) Verify(ctx context.Context, login, password string) (*model.Account, error) {
	account, err := s.accountRepo.GetByLogin(ctx, login)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	if !account.Active {
		return nil, apperrors.Deactivated(login)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	return account, nil
}

// Login verifies credentials and establishes a session: a signed token plus
// a session record with the sliding expiry window.
func (s *Service) Login(ctx context.Context, login, password string) (*model.TokenResponse, error) {
	account, err := s.Verify(ctx, login, password)
	if err != nil {
		return nil, err
	}

	token, sessionID, err := s.jwtSvc.Generate(account.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if err := s.sessionRepo.Create(ctx, sessionID, account.ID, s.expiry); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.expiry.Seconds()),
	}, nil
}

// Authenticate resolves a bearer token to a live account. The token carries
// only the account id; the record is re-fetched on every call so that role
// and active-flag changes apply immediately, and the session TTL slides
// forward on each use.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.Account, error) {
	claims, err := s.jwtSvc.Validate(token)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	alive, err := s.sessionRepo.Touch(ctx, claims.SessionID, s.expiry)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}
	if !alive {
		return nil, apperrors.Unauthorized(nil)
	}

	account, err := s.accountRepo.Get(ctx, claims.AccountID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	if !account.Active {
		return nil, apperrors.Deactivated(account.Login)
	}

	return account, nil
}

// Logout revokes the session behind the token. An already-invalid token is
// not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtSvc.Validate(token)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, claims.SessionID)
}
