package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/domain/saleform"
	"github.com/sangkips/salesdesk-api/pkg/apperror"
	"go.uber.org/zap"
)

// saleRecorder persists sales emitted by a form controller on behalf of a user
type saleRecorder struct {
	ctx    context.Context
	repo   repository.SaleRepository
	userID uuid.UUID
	log    *zap.Logger
	saved  *entity.Sale
}

func (r *saleRecorder) record(sale entity.Sale) error {
	userID := r.userID
	sale.CreatedByID = &userID
	if err := r.repo.CreateWithinStock(r.ctx, &sale); err != nil {
		var short *repository.InsufficientStockError
		switch {
		case errors.As(err, &short):
			r.log.Info("sale rejected, stock changed since the form was checked",
				zap.String("product_id", sale.ProductID.String()),
				zap.Int("quantity", sale.Quantity),
				zap.Int("available", short.Available),
			)
			return apperror.NewFieldError("quantity", stockMessage(short.Available))
		case errors.Is(err, repository.ErrProductNotFound):
			return apperror.NewNotFoundError("Product")
		}
		return fmt.Errorf("failed to record sale: %w", err)
	}
	r.saved = &sale
	r.log.Info("sale recorded",
		zap.String("sale_id", sale.ID.String()),
		zap.String("product_id", sale.ProductID.String()),
		zap.Int("quantity", sale.Quantity),
		zap.String("total_amount", sale.TotalAmount),
		zap.String("status", sale.Status.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// stockMessage tells the user how much can still be sold
func stockMessage(available int) string {
	if available <= 0 {
		return "Out of stock"
	}
	return fmt.Sprintf("Only %d in stock", available)
}

// submitErrors explains why a form cannot be submitted
func submitErrors(s saleform.FormState, d saleform.Derived) *apperror.AppError {
	var fields []apperror.FieldError
	if d.SelectedProduct == nil {
		fields = append(fields, apperror.FieldError{Field: "product_id", Message: "Select a product"})
	}
	if s.UnitPrice == "" {
		fields = append(fields, apperror.FieldError{Field: "unit_price", Message: "Unit price is required"})
	}
	if d.QuantityError != "" {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: d.QuantityError})
	} else if d.SelectedProduct != nil && !d.IsQuantityValid {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "Quantity is not valid"})
	}
	if len(fields) == 0 {
		fields = append(fields, apperror.FieldError{Field: "total_amount", Message: "Total amount is out of range"})
	}
	return apperror.NewValidationError(fields)
}
