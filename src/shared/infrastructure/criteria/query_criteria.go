package criteria

import (
	"fmt"
	"net/url"
	"strconv"

	domainCriteria "sell/src/shared/domain/criteria"
)

// QueryCriteriaConverter convierte un Criteria en query string del back-office
// (campo[op]=valor, sort, limit, offset)
type QueryCriteriaConverter struct{}

// NewQueryCriteriaConverter crea una nueva instancia del conversor
func NewQueryCriteriaConverter() *QueryCriteriaConverter {
	return &QueryCriteriaConverter{}
}

// ToValues retorna los parámetros del criteria
func (q *QueryCriteriaConverter) ToValues(criteria domainCriteria.Criteria) url.Values {
	values := url.Values{}
	for _, filter := range criteria.Filters.Items {
		key := fmt.Sprintf("%s[%s]", filter.Field, filter.Operator.QuerySuffix())
		if filter.Value == nil {
			values.Add(key, "")
			continue
		}
		values.Add(key, fmt.Sprint(filter.Value))
	}

	if !criteria.Order.IsEmpty() {
		sort := criteria.Order.Field
		if criteria.Order.OrderType == domainCriteria.DESC {
			sort = "-" + sort
		}
		values.Set("sort", sort)
	}

	if criteria.Limit != nil && criteria.Offset != nil {
		values.Set("limit", strconv.Itoa(*criteria.Limit))
		values.Set("offset", strconv.Itoa(*criteria.Offset))
	}
	return values
}

// ToQuery retorna el query string codificado, sin el "?" inicial
func (q *QueryCriteriaConverter) ToQuery(criteria domainCriteria.Criteria) string {
	return q.ToValues(criteria).Encode()
}
