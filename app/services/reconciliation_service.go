package services

import (
	"SalesDashboard/app/forms"
	"SalesDashboard/app/models"
	"SalesDashboard/app/store"

	"go.uber.org/zap"
)

// ReconciliationService handles sales-return reconciliations
type ReconciliationService struct {
	notifier
	reconciliations *store.Collection[models.SaleReconciliation]
	sales           *store.Collection[models.Sale]
	builder         *ReconciliationBuilder
	log             *zap.Logger
}

// NewReconciliationService creates a new reconciliation service. Sales are
// read to pre-fill returns and are never modified.
func NewReconciliationService(
	reconciliations *store.Collection[models.SaleReconciliation],
	sales *store.Collection[models.Sale],
	out Notifier,
	log *zap.Logger,
) *ReconciliationService {
	s := &ReconciliationService{
		notifier:        notifier{entity: "reconciliation", out: out},
		reconciliations: reconciliations,
		sales:           sales,
		log:             log.Named("reconciliations"),
	}
	s.builder = s.NewReconciliationBuilder()
	return s
}

// GetReconciliations gets the reconciliations matching term by employee name or status
func (s *ReconciliationService) GetReconciliations(term string) store.View[models.SaleReconciliation] {
	return s.reconciliations.View(term)
}

// GetReconciliation gets a reconciliation by ID
func (s *ReconciliationService) GetReconciliation(id int) (models.SaleReconciliation, error) {
	rec, ok := s.reconciliations.Get(id)
	if !ok {
		return models.SaleReconciliation{}, notFound("Reconciliation", id)
	}
	return rec, nil
}

// Builder returns the shared reconciliation builder used by the dashboard
func (s *ReconciliationService) Builder() *ReconciliationBuilder {
	return s.builder
}

// ReviewReconciliation approves or rejects a pending reconciliation
func (s *ReconciliationService) ReviewReconciliation(id int, status models.ReconciliationStatus) (models.SaleReconciliation, Outcome, error) {
	if status != models.ReconciliationApproved && status != models.ReconciliationRejected {
		return models.SaleReconciliation{}, Outcome{}, s.fail(id, forms.Invalid("status", "Status must be approved or rejected"))
	}

	reviewed, err := s.reconciliations.Update(id, func(r *models.SaleReconciliation) error {
		if r.Status != models.ReconciliationPending {
			return forms.Invalid("status", "Only pending reconciliations can be reviewed")
		}
		r.Status = status
		return nil
	})
	if err == store.ErrNotFound {
		err = notFound("Reconciliation", id)
	}
	if err != nil {
		return models.SaleReconciliation{}, Outcome{}, s.fail(id, err)
	}

	s.log.Info("Reconciliation reviewed", zap.Int("id", id), zap.String("status", string(status)))
	return reviewed, s.succeed(ActionReviewed, id, "Reconciliation "+string(status)), nil
}

// recordReconciliation assigns an id and puts the reconciliation first
func (s *ReconciliationService) recordReconciliation(rec models.SaleReconciliation) (models.SaleReconciliation, Outcome) {
	created := s.reconciliations.Add(func(id int) models.SaleReconciliation {
		rec.ID = id
		return rec
	})

	s.log.Info("Reconciliation created",
		zap.Int("id", created.ID),
		zap.Int("sale_id", created.SaleID),
		zap.Int("units", created.TotalReturned()),
		zap.String("reason", string(created.Reason)),
	)
	return created, s.succeed(ActionCreated, created.ID, "Sales reconciliation created")
}
