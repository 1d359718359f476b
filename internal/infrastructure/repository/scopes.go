package repository

import (
	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/pkg/pagination"
	"gorm.io/gorm"
)

// Paginate returns a GORM scope selecting one page; nil selects the first page
func Paginate(p *pagination.Params) func(db *gorm.DB) *gorm.DB {
	page := pagination.OrDefault(p)
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit())
	}
}

// ForProduct returns a GORM scope restricting stock movements to one product.
// A nil id leaves the query unfiltered.
func ForProduct(id *uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == nil {
			return db
		}
		return db.Where("product_id = ?", *id)
	}
}

// MovementOrder is the listing order of dated records, newest first
const MovementOrder = "date DESC, created_at DESC"

// findPage counts the rows matched by query and loads one page of them
func findPage[T any](query *gorm.DB, p *pagination.Params, order string) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	err := query.Scopes(Paginate(p)).Order(order).Find(&items).Error
	return items, total, err
}
