package criteria

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Operator operador de comparación de un filtro
type Operator string

const (
	OpEqual              Operator = "="
	OpNotEqual           Operator = "!="
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="
	OpLike               Operator = "LIKE"
	OpIn                 Operator = "IN"
	OpIsNull             Operator = "NULL"
	OpIsNotNull          Operator = "NOT NULL"
)

// queryOperators sufijos de operador usados en query strings: campo[eq]=valor
var queryOperators = map[string]Operator{
	"eq":      OpEqual,
	"ne":      OpNotEqual,
	"gt":      OpGreaterThan,
	"gte":     OpGreaterThanOrEqual,
	"lt":      OpLessThan,
	"lte":     OpLessThanOrEqual,
	"lk":      OpLike,
	"in":      OpIn,
	"null":    OpIsNull,
	"notnull": OpIsNotNull,
}

// QuerySuffix retorna el sufijo de query string del operador
func (o Operator) QuerySuffix() string {
	for suffix, op := range queryOperators {
		if op == o {
			return suffix
		}
	}
	return "eq"
}

// Filter filtro campo/operador/valor
type Filter struct {
	Field    string
	Operator Operator
	Value    interface{}
}

// NewFilter crea un filtro
func NewFilter(field string, operator Operator, value interface{}) Filter {
	return Filter{Field: field, Operator: operator, Value: value}
}

// Filters colección de filtros combinados con AND
type Filters struct {
	Items []Filter
}

// NewFilters crea la colección
func NewFilters(items ...Filter) Filters {
	return Filters{Items: items}
}

// Add agrega un filtro
func (f *Filters) Add(filter Filter) {
	f.Items = append(f.Items, filter)
}

// IsEmpty indica si no hay filtros
func (f Filters) IsEmpty() bool {
	return len(f.Items) == 0
}

// OrderType dirección del ordenamiento
type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Order ordenamiento por un campo
type Order struct {
	Field     string
	OrderType OrderType
}

// NewOrder crea un ordenamiento
func NewOrder(field string, orderType OrderType) Order {
	return Order{Field: field, OrderType: orderType}
}

// IsEmpty indica si no hay ordenamiento
func (o Order) IsEmpty() bool {
	return o.Field == ""
}

// Criteria filtros + orden + paginación
type Criteria struct {
	Filters Filters
	Order   Order
	Limit   *int
	Offset  *int
}

// NewCriteria crea un criteria
func NewCriteria(filters Filters, order Order, limit, offset *int) Criteria {
	return Criteria{Filters: filters, Order: order, Limit: limit, Offset: offset}
}

// CriteriaBuilder construye criterios de forma incremental
type CriteriaBuilder struct {
	filters Filters
	order   Order
	limit   *int
	offset  *int
}

// NewCriteriaBuilder crea un builder vacío
func NewCriteriaBuilder() *CriteriaBuilder {
	return &CriteriaBuilder{}
}

// Where agrega un filtro
func (b *CriteriaBuilder) Where(field string, operator Operator, value interface{}) *CriteriaBuilder {
	b.filters.Add(NewFilter(field, operator, value))
	return b
}

// OrderBy fija el ordenamiento
func (b *CriteriaBuilder) OrderBy(field string, orderType OrderType) *CriteriaBuilder {
	b.order = NewOrder(field, orderType)
	return b
}

// Paginate fija limit y offset
func (b *CriteriaBuilder) Paginate(limit, offset int) *CriteriaBuilder {
	b.limit = &limit
	b.offset = &offset
	return b
}

// FromURLValues lee filtros con la sintaxis campo[op]=valor, más
// sort=campo|-campo, limit y offset
func (b *CriteriaBuilder) FromURLValues(values url.Values) *CriteriaBuilder {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values.Get(key)

		switch key {
		case "sort":
			if strings.HasPrefix(value, "-") {
				b.OrderBy(strings.TrimPrefix(value, "-"), DESC)
			} else if value != "" {
				b.OrderBy(value, ASC)
			}
			continue
		case "limit", "offset":
			continue
		}

		open := strings.Index(key, "[")
		if open <= 0 || !strings.HasSuffix(key, "]") {
			continue
		}
		op, ok := queryOperators[key[open+1:len(key)-1]]
		if !ok {
			continue
		}
		b.Where(key[:open], op, value)
	}

	limit, errLimit := strconv.Atoi(values.Get("limit"))
	offset, errOffset := strconv.Atoi(values.Get("offset"))
	if errLimit == nil && limit > 0 {
		if errOffset != nil || offset < 0 {
			offset = 0
		}
		b.Paginate(limit, offset)
	}
	return b
}

// Build retorna el criteria final
func (b *CriteriaBuilder) Build() Criteria {
	return NewCriteria(b.filters, b.order, b.limit, b.offset)
}
