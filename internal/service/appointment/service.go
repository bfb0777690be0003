package appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gestorpi/gestor-api/internal/model"
	"github.com/gestorpi/gestor-api/internal/repository"
	"github.com/gestorpi/gestor-api/internal/service/audit"
	apperrors "github.com/gestorpi/gestor-api/pkg/errors"
	"github.com/gestorpi/gestor-api/pkg/money"
)

type AppointmentServicer interface {
	Record(ctx context.Context, accountID uuid.UUID, req *model.RecordAppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	DailyReport(ctx context.Context, from, to time.Time) ([]*model.DailyReportRow, error)
}

type Service struct {
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	methodRepo      repository.PaymentMethodRepository
	auditor         *audit.Service

	// strictServices fails the whole recording when a submitted service id
	// has no catalog entry; off, unmatched ids are skipped.
	strictServices bool
}

func NewService(
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	methodRepo repository.PaymentMethodRepository,
	auditor *audit.Service,
	strictServices bool,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		methodRepo:      methodRepo,
		auditor:         auditor,
		strictServices:  strictServices,
	}
}

// Record computes the appointment total and persists the atendimento row
// together with one line per rendered service, atomically. The total is
// the sum of the resolved service prices plus the surcharge, and is fixed
// at creation time.
func (s *Service) Record(ctx context.Context, accountID uuid.UUID, req *model.RecordAppointmentRequest) (*model.Appointment, error) {
	surcharge, err := money.ParseOrZero(req.Surcharge)
	if err != nil {
		return nil, apperrors.Validation("invalid surcharge", err)
	}

	if _, err := s.methodRepo.Get(ctx, req.PaymentMethodID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Validation("unknown payment method", err)
		}
		return nil, apperrors.StoreUnavailable(err)
	}

	resolved, err := s.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	if s.strictServices {
		if missing := missingIDs(req.ServiceIDs, resolved); len(missing) > 0 {
			return nil, apperrors.Validation(
				fmt.Sprintf("unknown services: %s", joinIDs(missing)), nil)
		}
	}

	total := surcharge
	lineIDs := make([]uuid.UUID, 0, len(resolved))
	for _, svc := range resolved {
		total = total.Add(svc.Price)
		lineIDs = append(lineIDs, svc.ID)
	}

	appointment := &model.Appointment{
		AccountID:       accountID,
		Surcharge:       surcharge,
		Total:           total,
		Date:            time.Now(),
		PaymentMethodID: req.PaymentMethodID,
		ServiceIDs:      lineIDs,
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, apperrors.StoreUnavailable(err)
	}

	s.auditor.Log(ctx, accountID, "record", "appointment", appointment.ID.String())
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointmentRepo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.appointmentRepo.List(ctx, filters)
}

func (s *Service) DailyReport(ctx context.Context, from, to time.Time) ([]*model.DailyReportRow, error) {
	if to.Before(from) {
		return nil, apperrors.Validation("report range end precedes start", nil)
	}
	return s.appointmentRepo.DailyReport(ctx, from, to)
}

func missingIDs(requested []uuid.UUID, resolved []*model.Service) []uuid.UUID {
	found := make(map[uuid.UUID]struct{}, len(resolved))
	for _, svc := range resolved {
		found[svc.ID] = struct{}{}
	}

	var missing []uuid.UUID
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
