// Package saleform holds the state machine behind the "record sale" dialog.
//
// FormState is an immutable value changed only through the reducer functions
// (SelectProduct, ChangeQuantity, ChangePrice, ChangeStatus, ChangeCustomer,
// ChangeNotes). Stock, totals and validity are derived on demand from the state
// and a read-only Snapshot of products, sales, purchases and returns, so nothing
// derived is ever cached. Controller ties the two together for one dialog
// session and hands the finished sale to a callback on submit.
package saleform
