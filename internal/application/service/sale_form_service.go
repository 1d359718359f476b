package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
	"github.com/sangkips/salesdesk-api/internal/infrastructure/session"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"go.uber.org/zap"
)

// SaleFormView is what clients render for a sale form session
type SaleFormView struct {
	ID      uuid.UUID          `json:"id"`
	Open    bool               `json:"open"`
	State   saleform.FormState `json:"state"`
	Derived saleform.Derived   `json:"derived"`
}

// SaleFormServiceConfig holds sale form behaviour settings
type SaleFormServiceConfig struct {
	ResetOnCancel bool
	Now           func() time.Time
}

// SaleFormService runs server-side sale-entry dialogs. Every operation reloads
// stock from the repositories before it is applied.
type SaleFormService struct {
	loader        *SnapshotLoader
	saleRepo      repository.SaleRepository
	store         *session.FormStore
	resetOnCancel bool
	now           func() time.Time
	log           *zap.Logger
}

// NewSaleFormService creates a new sale form service
func NewSaleFormService(
	loader *SnapshotLoader,
	saleRepo repository.SaleRepository,
	store *session.FormStore,
	cfg SaleFormServiceConfig,
	log *zap.Logger,
) *SaleFormService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &SaleFormService{
		loader:        loader,
		saleRepo:      saleRepo,
		store:         store,
		resetOnCancel: cfg.ResetOnCancel,
		now:           cfg.Now,
		log:           log,
	}
}

// OpenForm starts a new session for userID with the dialog already open
func (s *SaleFormService) OpenForm(ctx context.Context, userID uuid.UUID) (*SaleFormView, error) {
	snap, err := s.loader.Load(ctx, uuid.Nil)
	if err != nil {
		return nil, err
	}

	var sess *session.FormSession
	ctrl := saleform.NewController(snap, saleform.Options{
		Now:           s.now,
		ResetOnCancel: s.resetOnCancel,
		OnOpenChange: func(open bool) {
			if sess != nil {
				s.log.Debug("sale form visibility changed",
					zap.String("session_id", sess.ID.String()),
					zap.Bool("open", open),
				)
			}
		},
	})
	sess = s.store.Create(userID, ctrl)

	sess.Lock()
	defer sess.Unlock()
	ctrl.Open()

	s.log.Info("sale form opened",
		zap.String("session_id", sess.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return s.view(sess), nil
}

// GetForm returns the current view of a session
func (s *SaleFormService) GetForm(ctx context.Context, userID, id uuid.UUID) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, false, func(*saleform.Controller) error { return nil })
}

// ReopenForm shows a closed dialog again with whatever state it kept
func (s *SaleFormService) ReopenForm(ctx context.Context, userID, id uuid.UUID) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, false, func(c *saleform.Controller) error {
		c.Open()
		return nil
	})
}

// SelectProduct picks the product being sold. An unknown product leaves the
// form untouched.
func (s *SaleFormService) SelectProduct(ctx context.Context, userID, id, productID uuid.UUID) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		if c.Product(productID) == nil {
			return apperror.NewNotFoundError("Product")
		}
		c.SelectProduct(productID)
		return nil
	})
}

// ChangeQuantity applies a typed quantity; the stored value is clamped to stock
func (s *SaleFormService) ChangeQuantity(ctx context.Context, userID, id uuid.UUID, raw string) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		c.ChangeQuantity(raw)
		return nil
	})
}

// ChangeUnitPrice sets the unit price as typed
func (s *SaleFormService) ChangeUnitPrice(ctx context.Context, userID, id uuid.UUID, unitPrice string) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		c.ChangePrice(unitPrice)
		return nil
	})
}

// ChangeStatus sets the sale status
func (s *SaleFormService) ChangeStatus(ctx context.Context, userID, id uuid.UUID, status enum.SaleStatus) (*SaleFormView, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "Status must be Completed, Pending or Cancelled")
	}
	return s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		c.ChangeStatus(status)
		return nil
	})
}

// ChangeCustomer sets the customer name
func (s *SaleFormService) ChangeCustomer(ctx context.Context, userID, id uuid.UUID, customerName string) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		c.ChangeCustomer(customerName)
		return nil
	})
}

// ChangeNotes sets the notes
func (s *SaleFormService) ChangeNotes(ctx context.Context, userID, id uuid.UUID, notes string) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		c.ChangeNotes(notes)
		return nil
	})
}

// Submit records the sale when the form passes its guard. When the guard
// rejects the form a validation error is returned together with the view.
func (s *SaleFormService) Submit(ctx context.Context, userID, id uuid.UUID) (*entity.Sale, *SaleFormView, error) {
	rec := &saleRecorder{ctx: ctx, repo: s.saleRepo, userID: userID, log: s.log}

	var rejected *apperror.AppError
	view, err := s.apply(ctx, userID, id, true, func(c *saleform.Controller) error {
		state, d := c.State(), c.Derive()

		c.OnSaleCreated(rec.record)
		defer c.OnSaleCreated(nil)

		_, ok, err := c.Submit()
		if err != nil {
			return err
		}
		if !ok {
			rejected = submitErrors(state, d)
		}
		return nil
	})
	if err != nil {
		return nil, view, err
	}
	if rejected != nil {
		return nil, view, rejected
	}
	return rec.saved, view, nil
}

// Cancel closes the dialog without recording anything
func (s *SaleFormService) Cancel(ctx context.Context, userID, id uuid.UUID) (*SaleFormView, error) {
	return s.apply(ctx, userID, id, false, func(c *saleform.Controller) error {
		c.Cancel()
		return nil
	})
}

// Discard deletes a session
func (s *SaleFormService) Discard(ctx context.Context, userID, id uuid.UUID) error {
	sess, err := s.session(userID, id)
	if err != nil {
		return err
	}
	s.store.Delete(sess.ID)
	s.log.Info("sale form discarded", zap.String("session_id", sess.ID.String()))
	return nil
}

func (s *SaleFormService) session(userID, id uuid.UUID) (*session.FormSession, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Sale form")
	}
	if sess.OwnerID != userID {
		return nil, apperror.ErrForbidden
	}
	return sess, nil
}

// apply runs fn against a session's controller with fresh stock figures.
// A view is returned whenever the session exists and belongs to userID.
func (s *SaleFormService) apply(ctx context.Context, userID, id uuid.UUID, requireOpen bool, fn func(*saleform.Controller) error) (*SaleFormView, error) {
	sess, err := s.session(userID, id)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	ctrl := sess.Controller
	if requireOpen && !ctrl.IsOpen() {
		return s.view(sess), apperror.ErrSaleFormClosed
	}

	if err := s.refresh(ctx, ctrl, ctrl.State().ProductID); err != nil {
		return nil, err
	}

	before := ctrl.State().ProductID
	fnErr := fn(ctrl)
	// a failed action may have raced other sales, so show current stock
	if after := ctrl.State().ProductID; after != before || fnErr != nil {
		if err := s.refresh(ctx, ctrl, after); err != nil {
			return nil, err
		}
	}

	view := s.view(sess)
	if view.Derived.StockInconsistent {
		s.log.Warn("negative stock computed",
			zap.String("session_id", sess.ID.String()),
			zap.String("product_id", view.State.ProductID.String()),
			zap.Int("calculated_stock", view.Derived.CalculatedStock),
		)
	}
	return view, fnErr
}

func (s *SaleFormService) refresh(ctx context.Context, ctrl *saleform.Controller, productID uuid.UUID) error {
	snap, err := s.loader.Load(ctx, productID)
	if err != nil {
		return err
	}
	ctrl.Refresh(snap)
	return nil
}

func (s *SaleFormService) view(sess *session.FormSession) *SaleFormView {
	return &SaleFormView{
		ID:      sess.ID,
		Open:    sess.Controller.IsOpen(),
		State:   sess.Controller.State(),
		Derived: sess.Controller.Derive(),
	}
}
