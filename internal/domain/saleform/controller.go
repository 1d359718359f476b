package saleform

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
)

// DateLayout is the calendar date format used on sale records.
const DateLayout = "2006-01-02"

// SaleCreatedFunc receives a finished sale. The sale has no ID; the receiver
// assigns one. Returning an error keeps the dialog open with its state intact.
type SaleCreatedFunc func(sale entity.Sale) error

// Options configures a Controller
type Options struct {
	OnSaleCreated SaleCreatedFunc
	OnOpenChange  func(open bool)
	// Now defaults to time.Now.
	Now func() time.Time
	// ResetOnCancel clears the form when the dialog is cancelled.
	// Off by default: a cancelled dialog reopens with its previous values.
	ResetOnCancel bool
}

// Controller drives one sale-entry dialog. It is not safe for concurrent use.
type Controller struct {
	state    FormState
	open     bool
	snapshot Snapshot
	opts     Options
}

// NewController creates a closed dialog with default state.
func NewController(snap Snapshot, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		state:    DefaultFormState(),
		snapshot: snap,
		opts:     opts,
	}
}

// State returns the current form state.
func (c *Controller) State() FormState {
	return c.state
}

// IsOpen reports whether the dialog is visible.
func (c *Controller) IsOpen() bool {
	return c.open
}

// Open shows the dialog.
func (c *Controller) Open() {
	c.setOpen(true)
}

// Refresh replaces the read-only collections with a newer snapshot.
func (c *Controller) Refresh(snap Snapshot) {
	c.snapshot = snap
}

// OnSaleCreated replaces the callback that receives submitted sales.
func (c *Controller) OnSaleCreated(fn SaleCreatedFunc) {
	c.opts.OnSaleCreated = fn
}

// Product looks up a product in the current snapshot; nil when unknown.
func (c *Controller) Product(id uuid.UUID) *entity.Product {
	return c.snapshot.FindProduct(id)
}

// CalculatedStock returns the raw derived stock of any product.
func (c *Controller) CalculatedStock(productID uuid.UUID) int {
	return CalculateStock(c.snapshot, productID)
}

// SelectProduct picks the product being sold.
func (c *Controller) SelectProduct(productID uuid.UUID) {
	c.state = SelectProduct(c.state, c.snapshot.Products, productID)
}

// ChangeQuantity applies typed input and returns the quantity actually stored.
func (c *Controller) ChangeQuantity(raw string) int {
	available := Derive(c.state, c.snapshot).AvailableStock
	c.state = ChangeQuantity(c.state, raw, available)
	return c.state.Quantity
}

// ChangePrice sets the unit price as typed.
func (c *Controller) ChangePrice(unitPrice string) {
	c.state = ChangePrice(c.state, unitPrice)
}

// ChangeStatus sets the sale status.
func (c *Controller) ChangeStatus(status enum.SaleStatus) {
	c.state = ChangeStatus(c.state, status)
}

// ChangeCustomer sets the customer name.
func (c *Controller) ChangeCustomer(customerName string) {
	c.state = ChangeCustomer(c.state, customerName)
}

// ChangeNotes sets the notes.
func (c *Controller) ChangeNotes(notes string) {
	c.state = ChangeNotes(c.state, notes)
}

// Derive computes the current derived values.
func (c *Controller) Derive() Derived {
	return Derive(c.state, c.snapshot)
}

// Submit emits the sale when the form is submittable. The bool is false when
// the guard rejected the form; in that case nothing happens. On a successful
// hand-off the dialog closes and the form resets.
func (c *Controller) Submit() (*entity.Sale, bool, error) {
	d := c.Derive()
	if !d.CanSubmit {
		return nil, false, nil
	}

	sale := BuildSale(c.state, d, c.opts.Now())
	if c.opts.OnSaleCreated != nil {
		if err := c.opts.OnSaleCreated(sale); err != nil {
			return nil, true, err
		}
	}

	c.setOpen(false)
	c.state = DefaultFormState()
	return &sale, true, nil
}

// Cancel closes the dialog without emitting anything.
func (c *Controller) Cancel() {
	c.setOpen(false)
	if c.opts.ResetOnCancel {
		c.state = DefaultFormState()
	}
}

func (c *Controller) setOpen(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	if c.opts.OnOpenChange != nil {
		c.opts.OnOpenChange(open)
	}
}

// BuildSale turns a submittable form into a sale record without an ID.
// Amounts are formatted from the raw floats; the date is the UTC calendar date of now.
func BuildSale(s FormState, d Derived, now time.Time) entity.Sale {
	sale := entity.Sale{
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		UnitPrice:   FormatAmount(d.UnitPrice),
		TotalAmount: FormatAmount(d.TotalAmount),
		Date:        now.UTC().Format(DateLayout),
		Status:      s.Status,
	}
	if d.SelectedProduct != nil {
		sale.ProductName = d.SelectedProduct.Name
	}
	if s.CustomerName != "" {
		name := s.CustomerName
		sale.CustomerName = &name
	}
	if s.Notes != "" {
		notes := s.Notes
		sale.Notes = &notes
	}
	return sale
}
