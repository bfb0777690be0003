package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/service/audit"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
	"github.com/gestorpi/gestor-api/pkg/money"
)

type fakeServiceRepo struct {
	services  map[uuid.UUID]*model.Service
	listCalls int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: map[uuid.UUID]*model.Service{}}
}

func (r *fakeServiceRepo) Create(_ context.Context, service *model.Service) error {
	service.ID = uuid.New()
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	service, ok := r.services[id]
	if !ok {
		return nil, apperrors.NotFound("service", nil)
	}
	return service, nil
}

func (r *fakeServiceRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	var out []*model.Service
	for _, id := range ids {
		if service, ok := r.services[id]; ok {
			out = append(out, service)
		}
	}
	return out, nil
}

func (r *fakeServiceRepo) List(_ context.Context) ([]*model.Service, error) {
	r.listCalls++
	var out []*model.Service
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return apperrors.NotFound("service", nil)
	}
	delete(r.services, id)
	return nil
}

type fakeMethodRepo struct {
	listCalls int
}

func (r *fakeMethodRepo) Get(_ context.Context, _ uuid.UUID) (*model.PaymentMethod, error) {
	return nil, apperrors.NotFound("payment method", nil)
}

func (r *fakeMethodRepo) List(_ context.Context) ([]*model.PaymentMethod, error) {
	r.listCalls++
	return []*model.PaymentMethod{
		{ID: uuid.New(), Description: "pix"},
	}, nil
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Create(_ context.Context, _ *model.AuditLog) error { return nil }

func newTestService(serviceRepo *fakeServiceRepo, methodRepo *fakeMethodRepo) *Service {
	return NewService(serviceRepo, methodRepo, audit.NewService(fakeAuditRepo{}), time.Minute)
}

func TestCreateServiceParsesCommaPrice(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo, &fakeMethodRepo{})

	created, err := svc.CreateService(context.Background(), uuid.New(), &model.CreateServiceRequest{
		Description: "corte de cabelo",
		Price:       "35,90",
	})
	require.NoError(t, err)
	assert.Equal(t, money.Money(3590), created.Price)
	assert.Len(t, repo.services, 1)
}

func TestCreateServiceRejectsNegativePrice(t *testing.T) {
	svc := newTestService(newFakeServiceRepo(), &fakeMethodRepo{})

	_, err := svc.CreateService(context.Background(), uuid.New(), &model.CreateServiceRequest{
		Description: "corte",
		Price:       "-5,00",
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCreateServiceRejectsMalformedPrice(t *testing.T) {
	svc := newTestService(newFakeServiceRepo(), &fakeMethodRepo{})

	_, err := svc.CreateService(context.Background(), uuid.New(), &model.CreateServiceRequest{
		Description: "corte",
		Price:       "trinta",
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListServicesIsCached(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo, &fakeMethodRepo{})

	_, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	_, err = svc.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls)
}

func TestCreateServiceInvalidatesCache(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo, &fakeMethodRepo{})

	_, err := svc.ListServices(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateService(context.Background(), uuid.New(), &model.CreateServiceRequest{
		Description: "barba",
		Price:       "20,00",
	})
	require.NoError(t, err)

	listed, err := svc.ListServices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
	assert.Len(t, listed, 1)
}

func TestDeleteServiceInvalidatesCache(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := newTestService(repo, &fakeMethodRepo{})

	created, err := svc.CreateService(context.Background(), uuid.New(), &model.CreateServiceRequest{
		Description: "barba",
		Price:       "20,00",
	})
	require.NoError(t, err)

	_, err = svc.ListServices(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteService(context.Background(), uuid.New(), created.ID))

	listed, err := svc.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListPaymentMethodsIsCached(t *testing.T) {
	methodRepo := &fakeMethodRepo{}
	svc := newTestService(newFakeServiceRepo(), methodRepo)

	first, err := svc.ListPaymentMethods(context.Background())
	require.NoError(t, err)
	second, err := svc.ListPaymentMethods(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, methodRepo.listCalls)
}
