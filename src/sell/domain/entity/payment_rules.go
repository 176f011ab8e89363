package entity

// GiftEligibleCodes códigos SIN de método de pago que admiten monto GiftCard
// y descuento adicional.
var GiftEligibleCodes = map[int]struct{}{
	27: {}, 30: {}, 35: {}, 40: {}, 49: {}, 53: {}, 60: {}, 64: {}, 68: {}, 72: {},
	76: {}, 77: {}, 78: {}, 86: {}, 94: {}, 102: {}, 109: {}, 115: {}, 120: {}, 124: {},
	128: {}, 129: {}, 130: {}, 138: {}, 146: {}, 153: {}, 159: {}, 164: {}, 168: {}, 172: {},
	173: {}, 174: {}, 182: {}, 189: {}, 195: {}, 200: {}, 204: {}, 208: {}, 209: {}, 210: {},
	217: {}, 222: {}, 223: {}, 224: {}, 225: {}, 226: {}, 228: {}, 232: {}, 241: {}, 246: {},
	250: {}, 254: {}, 255: {}, 256: {}, 261: {}, 265: {}, 269: {}, 270: {}, 271: {}, 275: {},
	279: {}, 280: {}, 281: {}, 285: {}, 286: {}, 287: {}, 291: {}, 292: {}, 293: {}, 304: {},
}

// VisibleFields campos condicionales de la sección de pago
type VisibleFields struct {
	GiftCard           bool `json:"gift_card"`
	AdditionalDiscount bool `json:"additional_discount"`
}

// ShowsGiftFields indica si el método de pago habilita los campos GiftCard y descuento adicional
func ShowsGiftFields(paymentMethodCode int) bool {
	_, ok := GiftEligibleCodes[paymentMethodCode]
	return ok
}

// DeriveVisibleFields deriva los campos condicionales para un método de pago
func DeriveVisibleFields(paymentMethodCode int) VisibleFields {
	show := ShowsGiftFields(paymentMethodCode)
	return VisibleFields{
		GiftCard:           show,
		AdditionalDiscount: show,
	}
}
