package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	"github.com/gestorpi/gestor-api/internal/service/audit"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
	"github.com/gestorpi/gestor-api/pkg/money"
)

const (
	servicesCacheKey       = "servicos"
	paymentMethodsCacheKey = "metodos_pagamento"
)

type CatalogServicer interface {
	CreateService(ctx context.Context, actorID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error)
	ListServices(ctx context.Context) ([]*model.Service, error)
	DeleteService(ctx context.Context, actorID, id uuid.UUID) error
	ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error)
}

type Service struct {
	serviceRepo repository.ServiceRepository
	methodRepo  repository.PaymentMethodRepository
	auditor     *audit.Service
	cache       *cache.Cache
}

// NewService caches the catalog reference data for ttl; both lists change
// rarely and are read on nearly every page.
func NewService(
	serviceRepo repository.ServiceRepository,
	methodRepo repository.PaymentMethodRepository,
	auditor *audit.Service,
	ttl time.Duration,
) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		methodRepo:  methodRepo,
		auditor:     auditor,
		cache:       cache.New(ttl, 2*ttl),
	}
}

func (s *Service) CreateService(ctx context.Context, actorID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	price, err := money.Parse(req.Price)
	if err != nil {
		return nil, apperrors.Validation("invalid price", err)
	}
	if price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative", nil)
	}

	service := &model.Service{
		Description: req.Description,
		Price:       price,
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	s.cache.Delete(servicesCacheKey)
	s.auditor.Log(ctx, actorID, "create", "service", service.ID.String())
	return service, nil
}

func (s *Service) ListServices(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.cache.Get(servicesCacheKey); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	s.cache.SetDefault(servicesCacheKey, services)
	return services, nil
}

func (s *Service) DeleteService(ctx context.Context, actorID, id uuid.UUID) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(servicesCacheKey)
	s.auditor.Log(ctx, actorID, "delete", "service", id.String())
	return nil
}

func (s *Service) ListPaymentMethods(ctx context.Context) ([]*model.PaymentMethod, error) {
	if cached, ok := s.cache.Get(paymentMethodsCacheKey); ok {
		return cached.([]*model.PaymentMethod), nil
	}

	methods, err := s.methodRepo.List(ctx)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	s.cache.SetDefault(paymentMethodsCacheKey, methods)
	return methods, nil
}
