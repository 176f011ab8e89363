package criteria

import (
	"fmt"
	"strconv"
	"strings"

	domainCriteria "sell/src/shared/domain/criteria"

	"github.com/lib/pq"
)

// SQLCriteriaConverter convierte un Criteria en cláusulas SQL para PostgreSQL
type SQLCriteriaConverter struct{}

// NewSQLCriteriaConverter crea una nueva instancia del conversor
func NewSQLCriteriaConverter() *SQLCriteriaConverter {
	return &SQLCriteriaConverter{}
}

// ToSelectSQL arma el SELECT completo (WHERE, ORDER BY, LIMIT/OFFSET) con sus parámetros
func (s *SQLCriteriaConverter) ToSelectSQL(baseQuery string, criteria domainCriteria.Criteria) (string, []interface{}) {
	parts := []string{baseQuery}
	var params []interface{}

	if !criteria.Filters.IsEmpty() {
		whereClause, whereParams := s.buildWhereClause(criteria.Filters)
		parts = append(parts, whereClause)
		params = append(params, whereParams...)
	}

	if !criteria.Order.IsEmpty() {
		parts = append(parts, s.buildOrderClause(criteria.Order))
	}

	if criteria.Limit != nil && criteria.Offset != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d OFFSET %d", *criteria.Limit, *criteria.Offset))
	}

	return strings.Join(parts, " "), params
}

// ToCountSQL arma el COUNT con los mismos filtros, sin orden ni paginación
func (s *SQLCriteriaConverter) ToCountSQL(baseCountQuery string, criteria domainCriteria.Criteria) (string, []interface{}) {
	if criteria.Filters.IsEmpty() {
		return baseCountQuery, nil
	}
	whereClause, params := s.buildWhereClause(criteria.Filters)
	return baseCountQuery + " " + whereClause, params
}

func (s *SQLCriteriaConverter) buildWhereClause(filters domainCriteria.Filters) (string, []interface{}) {
	conditions := make([]string, 0, len(filters.Items))
	var params []interface{}

	paramIndex := 1
	for _, filter := range filters.Items {
		condition, value := s.processFilter(filter, paramIndex)
		conditions = append(conditions, condition)
		if value != nil {
			params = append(params, value)
			paramIndex++
		}
	}

	return "WHERE " + strings.Join(conditions, " AND "), params
}

func (s *SQLCriteriaConverter) buildOrderClause(order domainCriteria.Order) string {
	orderType := order.OrderType
	if orderType != domainCriteria.DESC {
		orderType = domainCriteria.ASC
	}
	return fmt.Sprintf("ORDER BY %s %s", order.Field, orderType)
}

// processFilter convierte un filtro en condición con placeholder $n
func (s *SQLCriteriaConverter) processFilter(filter domainCriteria.Filter, paramIndex int) (string, interface{}) {
	placeholder := "$" + strconv.Itoa(paramIndex)

	switch filter.Operator {
	case domainCriteria.OpEqual, domainCriteria.OpNotEqual, domainCriteria.OpGreaterThan,
		domainCriteria.OpGreaterThanOrEqual, domainCriteria.OpLessThan, domainCriteria.OpLessThanOrEqual:
		return fmt.Sprintf("%s %s %s", filter.Field, filter.Operator, placeholder), filter.Value
	case domainCriteria.OpLike:
		value := filter.Value
		if str, ok := value.(string); ok && !strings.Contains(str, "%") {
			value = "%" + str + "%"
		}
		return fmt.Sprintf("%s ILIKE %s", filter.Field, placeholder), value
	case domainCriteria.OpIn:
		return fmt.Sprintf("%s = ANY(%s)", filter.Field, placeholder), pq.Array(inValues(filter.Value))
	case domainCriteria.OpIsNull:
		return fmt.Sprintf("%s IS NULL", filter.Field), nil
	case domainCriteria.OpIsNotNull:
		return fmt.Sprintf("%s IS NOT NULL", filter.Field), nil
	default:
		return fmt.Sprintf("%s = %s", filter.Field, placeholder), filter.Value
	}
}

// inValues normaliza el valor de un filtro IN ("a,b" o []string) a []string
func inValues(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case string:
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}
