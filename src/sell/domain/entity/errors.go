package entity

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrTenantIDRequired    = errors.New("empresa_id is required")
	ErrDraftNotFound       = errors.New("draft not found")
	ErrLineItemNotFound    = errors.New("line item not found")
	ErrDraftHasNoItems     = errors.New("draft must have at least one item")
	ErrDraftSubmitting     = errors.New("draft is being submitted")
	ErrDraftSubmitted      = errors.New("draft was already submitted")
	ErrDraftDirty          = errors.New("draft has unsaved changes")
	ErrDraftDiscarded      = errors.New("draft was discarded")
	ErrInvalidDiscount     = errors.New("discount must be greater than or equal to 0")
	ErrInvalidExchangeRate = errors.New("exchange rate must be greater than or equal to 0")
	ErrInvalidUnitPrice    = errors.New("unit price must be greater than or equal to 0")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrCustomerNotFound    = errors.New("customer not found")
)

// ValidationError agrupa los mensajes por campo del formulario de venta
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
