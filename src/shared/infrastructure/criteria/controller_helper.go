package criteria

import (
	domainCriteria "sell/src/shared/domain/criteria"

	"github.com/gin-gonic/gin"
)

// ControllerHelper arma criterios desde la query de una petición
type ControllerHelper struct {
	allowedFields map[string]bool
	defaultOrder  domainCriteria.Order
	maxLimit      int
}

// NewControllerHelper crea un helper que solo acepta los campos indicados.
// Los nombres de campo terminan interpolados en SQL: nunca aceptar campos libres.
func NewControllerHelper(allowedFields []string, defaultOrder domainCriteria.Order, maxLimit int) *ControllerHelper {
	allowed := make(map[string]bool, len(allowedFields))
	for _, field := range allowedFields {
		allowed[field] = true
	}
	return &ControllerHelper{
		allowedFields: allowed,
		defaultOrder:  defaultOrder,
		maxLimit:      maxLimit,
	}
}

// BuildCriteriaFromQuery construye y sanitiza el criteria desde la query de Gin
func (h *ControllerHelper) BuildCriteriaFromQuery(c *gin.Context) domainCriteria.Criteria {
	built := domainCriteria.NewCriteriaBuilder().FromURLValues(c.Request.URL.Query()).Build()
	return h.Sanitize(built)
}

// Sanitize descarta filtros y orden sobre campos no permitidos y acota el límite
func (h *ControllerHelper) Sanitize(criteria domainCriteria.Criteria) domainCriteria.Criteria {
	validFilters := domainCriteria.NewFilters()
	for _, filter := range criteria.Filters.Items {
		if h.allowedFields[filter.Field] {
			validFilters.Add(filter)
		}
	}

	validOrder := criteria.Order
	if validOrder.IsEmpty() || !h.allowedFields[validOrder.Field] {
		validOrder = h.defaultOrder
	}

	limit, offset := criteria.Limit, criteria.Offset
	if limit == nil || *limit > h.maxLimit {
		l, o := h.maxLimit, 0
		if offset != nil {
			o = *offset
		}
		limit, offset = &l, &o
	}

	return domainCriteria.NewCriteria(validFilters, validOrder, limit, offset)
}
