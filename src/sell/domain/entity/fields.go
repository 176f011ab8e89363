package entity

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// aliasFields objeto JSON crudo del back-office. El mismo dato puede venir en
// camelCase o snake_case según el endpoint; cada lector toma el primer alias
// con valor (no vacío, no cero).
type aliasFields map[string]json.RawMessage

func decodeAliasFields(data []byte) (aliasFields, error) {
	var f aliasFields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f aliasFields) str(keys ...string) string {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil && n.String() != "0" {
			return n.String()
		}
	}
	return ""
}

func (f aliasFields) int(keys ...string) int64 {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok {
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				continue
			}
			n = json.Number(strings.TrimSpace(s))
		}
		if v, err := strconv.ParseInt(n.String(), 10, 64); err == nil && v != 0 {
			return v
		}
	}
	return 0
}

func (f aliasFields) decimal(keys ...string) decimal.Decimal {
	for _, k := range keys {
		raw, ok := f[k]
		if !ok {
			continue
		}
		var d decimal.Decimal
		if err := d.UnmarshalJSON(raw); err != nil {
			continue
		}
		if !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

func (f aliasFields) object(key string) aliasFields {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var nested aliasFields
	if err := json.Unmarshal(raw, &nested); err != nil {
		return nil
	}
	return nested
}
