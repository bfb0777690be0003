package appointment

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

type fakeAppointmentRepo struct {
	created []*model.Appointment
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *model.Appointment) error {
	appointment.ID = uuid.New()
	r.created = append(r.created, appointment)
	return nil
}

func (r *fakeAppointmentRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	for _, a := range r.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *fakeAppointmentRepo) List(_ context.Context, _ *model.AppointmentFilters) ([]*model.Appointment, error) {
	return r.created, nil
}

func (r *fakeAppointmentRepo) DailyReport(_ context.Context, _, _ time.Time) ([]*model.DailyReportRow, error) {
	return nil, nil
}

type fakeServiceRepo struct {
	services map[uuid.UUID]*model.Service
}

func newFakeServiceRepo(services ...*model.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: map[uuid.UUID]*model.Service{}}
	for _, s := range services {
		repo.services[s.ID] = s
	}
	return repo
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
	var out []*model.Service
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.services, id)
	return nil
}

type fakeMethodRepo struct {
	methods map[uuid.UUID]*model.PaymentMethod
}

func newFakeMethodRepo(methods ...*model.PaymentMethod) *fakeMethodRepo {
	repo := &fakeMethodRepo{methods: map[uuid.UUID]*model.PaymentMethod{}}
	for _, m := range methods {
		repo.methods[m.ID] = m
	}
	return repo
}

func (r *fakeMethodRepo) Get(_ context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	method, ok := r.methods[id]
	if !ok {
		return nil, apperrors.NotFound("payment method", nil)
	}
	return method, nil
}

func (r *fakeMethodRepo) List(_ context.Context) ([]*model.PaymentMethod, error) {
	var out []*model.PaymentMethod
	for _, m := range r.methods {
		out = append(out, m)
	}
	return out, nil
}

type fakeAuditRepo struct{}

func (fakeAuditRepo) Create(_ context.Context, _ *model.AuditLog) error { return nil }

func catalogService(price money.Money) *model.Service {
	return &model.Service{
		Base:        model.Base{ID: uuid.New()},
		Description: "corte",
		Price:       price,
	}
}

type fixture struct {
	svc          *Service
	appointments *fakeAppointmentRepo
	method       *model.PaymentMethod
}

func newFixture(strict bool, services ...*model.Service) *fixture {
	method := &model.PaymentMethod{ID: uuid.New(), Description: "pix"}
	appointments := &fakeAppointmentRepo{}

	svc := NewService(
		appointments,
		newFakeServiceRepo(services...),
		newFakeMethodRepo(method),
		audit.NewService(fakeAuditRepo{}),
		strict,
	)
	return &fixture{svc: svc, appointments: appointments, method: method}
}

func TestRecordSumsServicesAndSurcharge(t *testing.T) {
	first := catalogService(2000)
	second := catalogService(1500)
	f := newFixture(false, first, second)

	recorded, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		ServiceIDs:      []uuid.UUID{first.ID, second.ID},
		Surcharge:       "10,50",
		PaymentMethodID: f.method.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, money.Money(1050), recorded.Surcharge)
	assert.Equal(t, money.Money(4650), recorded.Total)
	assert.Len(t, recorded.ServiceIDs, 2)
	assert.Len(t, f.appointments.created, 1)
}

func TestRecordWithoutServices(t *testing.T) {
	f := newFixture(false)

	recorded, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		PaymentMethodID: f.method.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, money.Money(0), recorded.Total)
	assert.Empty(t, recorded.ServiceIDs)
}

func TestRecordBlankSurchargeDefaultsToZero(t *testing.T) {
	service := catalogService(3000)
	f := newFixture(false, service)

	recorded, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		ServiceIDs:      []uuid.UUID{service.ID},
		PaymentMethodID: f.method.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, money.Money(0), recorded.Surcharge)
	assert.Equal(t, money.Money(3000), recorded.Total)
}

func TestRecordSkipsUnknownServices(t *testing.T) {
	known := catalogService(2500)
	f := newFixture(false, known)

	recorded, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		ServiceIDs:      []uuid.UUID{known.ID, uuid.New()},
		PaymentMethodID: f.method.ID,
	})
	require.NoError(t, err)

	// Permissive mode: the unmatched id contributes nothing.
	assert.Equal(t, money.Money(2500), recorded.Total)
	assert.Equal(t, []uuid.UUID{known.ID}, recorded.ServiceIDs)
}

func TestRecordStrictModeRejectsUnknownServices(t *testing.T) {
	known := catalogService(2500)
	f := newFixture(true, known)

	_, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		ServiceIDs:      []uuid.UUID{known.ID, uuid.New()},
		PaymentMethodID: f.method.ID,
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Empty(t, f.appointments.created)
}

func TestRecordRejectsMalformedSurcharge(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		Surcharge:       "dez reais",
		PaymentMethodID: f.method.ID,
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestRecordRejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.Record(context.Background(), uuid.New(), &model.RecordAppointmentRequest{
		PaymentMethodID: uuid.New(),
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Empty(t, f.appointments.created)
}

func TestDailyReportRejectsInvertedRange(t *testing.T) {
	f := newFixture(false)

	now := time.Now()
	_, err := f.svc.DailyReport(context.Background(), now, now.AddDate(0, 0, -7))
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
