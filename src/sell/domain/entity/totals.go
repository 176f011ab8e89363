package entity

import "github.com/shopspring/decimal"

// MoneyPlaces decimales de los montos mostrados
const MoneyPlaces = 2

// Totals resumen referencial del borrador. El back-office recalcula con sus
// propios precios; estos montos solo se muestran.
type Totals struct {
	ItemCount      int             `json:"items"`
	LineSubtotal   decimal.Decimal `json:"subtotal"`
	LineDiscounts  decimal.Decimal `json:"descuentos_linea"`
	TotalDiscount  decimal.Decimal `json:"descuentos"`
	GiftAmount     decimal.Decimal `json:"gift_card"`
	EstimatedTotal decimal.Decimal `json:"total_estimado"`
}

// CalculateTotals deriva los totales del borrador. Se calcula en exacto y se
// redondea una sola vez al final (mitad alejándose de cero).
func CalculateTotals(d *SaleDraft) Totals {
	subtotal := decimal.Zero
	lineDiscounts := decimal.Zero
	for _, item := range d.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		lineDiscounts = lineDiscounts.Add(valueOrZero(item.DiscountAmount))
	}

	totalDiscount := valueOrZero(d.AdditionalDiscount).Add(lineDiscounts)
	gift := valueOrZero(d.GiftCardAmount)
	total := subtotal.Sub(totalDiscount).Sub(gift)

	return Totals{
		ItemCount:      len(d.Items),
		LineSubtotal:   subtotal.Round(MoneyPlaces),
		LineDiscounts:  lineDiscounts.Round(MoneyPlaces),
		TotalDiscount:  totalDiscount.Round(MoneyPlaces),
		GiftAmount:     gift.Round(MoneyPlaces),
		EstimatedTotal: total.Round(MoneyPlaces),
	}
}

func valueOrZero(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}
