// Package moderation exposes the approval workflow over ingested records.
// Callers are assumed already authorized by the surrounding layer; nothing
// here re-derives identity or role.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"courtside/internal/bootstrap/logging"
	"courtside/internal/domain/catalog"
	"courtside/internal/errs"
	"courtside/internal/ports"
)

type Service struct {
	repo ports.CatalogRepository
	uow  ports.UnitOfWork
}

func NewService(repo ports.CatalogRepository, uow ports.UnitOfWork) *Service {
	return &Service{repo: repo, uow: uow}
}

// Decision reports the outcome of an approve/reject call. Changed is false
// when the record already carried the requested status (no-op repeat).
type Decision struct {
	Status  catalog.ApprovalStatus
	Changed bool
}

// Approve moves a pending record to approved, making it visible to ordinary
// read queries. Repeat approvals are no-op successes; a rejected record
// cannot be approved.
func (s *Service) Approve(ctx context.Context, kind catalog.Kind, id uint64) (Decision, error) {
	return s.decide(ctx, kind, id, catalog.StatusApproved)
}

// Reject permanently hides a pending record from ordinary users.
func (s *Service) Reject(ctx context.Context, kind catalog.Kind, id uint64) (Decision, error) {
	return s.decide(ctx, kind, id, catalog.StatusRejected)
}

func (s *Service) decide(ctx context.Context, kind catalog.Kind, id uint64, target catalog.ApprovalStatus) (Decision, error) {
	if ctx == nil {
		return Decision{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return Decision{}, errs.Wrap(err, "check context")
	}
	if s.repo == nil || s.uow == nil {
		return Decision{}, errors.New("catalog repository and unit of work are required")
	}

	out := Decision{Status: target}
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		current, err := s.currentStatus(txCtx, kind, id)
		if err != nil {
			return err
		}

		changed, err := catalog.DecideApproval(current, target)
		if err != nil {
			return err
		}
		out.Changed = changed
		if !changed {
			return nil
		}

		switch kind {
		case catalog.KindFacility:
			_, err = s.repo.UpdateFacilityStatus(txCtx, id, target)
		case catalog.KindEvent:
			_, err = s.repo.UpdateEventStatus(txCtx, id, target)
		}
		return err
	}); err != nil {
		return Decision{}, err
	}

	if out.Changed {
		logging.Info(logging.WithAttrs(ctx, slog.String("component", "usecase.moderation")),
			"approval decided",
			slog.String("kind", string(kind)),
			slog.Uint64("id", id),
			slog.String("status", string(target)))
	}
	return out, nil
}

func (s *Service) currentStatus(ctx context.Context, kind catalog.Kind, id uint64) (catalog.ApprovalStatus, error) {
	switch kind {
	case catalog.KindFacility:
		record, err := s.repo.GetFacility(ctx, id)
		if err != nil {
			return "", err
		}
		return record.Status, nil
	case catalog.KindEvent:
		record, err := s.repo.GetEvent(ctx, id)
		if err != nil {
			return "", err
		}
		return record.Status, nil
	default:
		return "", fmt.Errorf("unknown kind %q", kind)
	}
}

// PendingFacilities lists facilities awaiting a decision. Privileged view.
func (s *Service) PendingFacilities(ctx context.Context) ([]ports.FacilityRecord, error) {
	return s.repo.ListFacilities(ctx, ports.FacilityFilter{Status: catalog.StatusPending})
}

// PendingEvents lists events awaiting a decision. Privileged view.
func (s *Service) PendingEvents(ctx context.Context) ([]ports.EventRecord, error) {
	return s.repo.ListEvents(ctx, ports.EventFilter{Status: catalog.StatusPending})
}

// PublicFacilities is the default end-user read: approved records only.
func (s *Service) PublicFacilities(ctx context.Context, sport catalog.SportType, district catalog.District) ([]ports.FacilityRecord, error) {
	return s.repo.ListFacilities(ctx, ports.FacilityFilter{
		Status:   catalog.StatusApproved,
		Sport:    sport,
		District: district,
	})
}

// PublicEvents is the default end-user read: approved records only.
func (s *Service) PublicEvents(ctx context.Context, filter ports.EventFilter) ([]ports.EventRecord, error) {
	filter.Status = catalog.StatusApproved
	return s.repo.ListEvents(ctx, filter)
}

// EditFacility applies a field-level administrative edit; approval status is
// deliberately not part of the update surface.
func (s *Service) EditFacility(ctx context.Context, id uint64, update ports.FacilityFieldsUpdate) (ports.FacilityRecord, error) {
	if ctx == nil {
		return ports.FacilityRecord{}, errors.New("context is required")
	}
	return s.repo.UpdateFacilityFields(ctx, id, update)
}

// EditEvent applies a field-level administrative edit, status untouched.
func (s *Service) EditEvent(ctx context.Context, id uint64, update ports.EventFieldsUpdate) (ports.EventRecord, error) {
	if ctx == nil {
		return ports.EventRecord{}, errors.New("context is required")
	}
	return s.repo.UpdateEventFields(ctx, id, update)
}
