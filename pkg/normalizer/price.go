package normalizer

import (
	"github.com/shopspring/decimal"
)

// Direct total-price candidates, most specific first. The microsite block is
// where Travel Compositor reports the agency-facing total.
var totalPriceCandidates = []string{
	"pricebreakdown.totalPrice.microsite.amount",
	"totalPrice.microsite.amount",
	"pricebreakdown.totalPrice.amount",
	"price.amount",
	"totalPrice.amount",
	"cost.amount",
	"totalPriceAmount",
	"amount",
	"totalPrice",
	"price",
	"total",
}

var currencyCandidates = []string{
	"pricebreakdown.totalPrice.microsite.currency",
	"totalPrice.microsite.currency",
	"pricebreakdown.totalPrice.currency",
	"price.currency",
	"totalPrice.currency",
	"cost.currency",
	"currency",
}

// Per-item price candidates used both for component summation and for each
// normalized service record.
var itemPriceCandidates = []string{
	"pricebreakdown.totalPrice.microsite.amount",
	"price.amount",
	"totalPrice.amount",
	"cost.amount",
	"amount",
	"price",
	"total",
}

var itemCurrencyCandidates = []string{
	"pricebreakdown.totalPrice.microsite.currency",
	"price.currency",
	"totalPrice.currency",
	"cost.currency",
	"currency",
}

// Component arrays walked by the summation fallback, in scan order.
var componentArrayFields = []string{
	"hotelservice",
	"transportservice",
	"ticketservice",
	"transferservice",
	"carservice",
	"closedtourservice",
	"cruiseservice",
	"insuranceservice",
	"hotels",
	"transports",
	"cars",
	"activities",
}

// resolveTotalPrice produces a booking total even when the document has no
// single total field. Direct fields win; otherwise component prices are
// summed. ok is false when neither route yields data, so callers can tell
// "no price information" apart from "price is zero".
//
// Summed components are not checked for a shared currency; the first
// currency found anywhere in the document is reported alongside the sum.
// Known limitation, kept on purpose.
func resolveTotalPrice(doc map[string]interface{}) (amount float64, currency string, ok bool) {
	currency, _ = firstString(doc, currencyCandidates...)
	if currency == "" {
		currency = "EUR"
	}

	if direct, found := firstNumber(doc, totalPriceCandidates...); found {
		return direct, currency, true
	}

	// Fallback: sum every resolvable component price. Decimal accumulation
	// keeps long cent-sums exact.
	sum := decimal.Zero
	hasComponents := false
	for _, field := range componentArrayFields {
		for _, item := range sliceOfMaps(doc, field) {
			itemAmount, found := firstNumber(item, itemPriceCandidates...)
			if !found {
				continue
			}
			sum = sum.Add(decimal.NewFromFloat(itemAmount))
			if itemAmount != 0 {
				hasComponents = true
			}
		}
	}

	if !hasComponents {
		return 0, currency, false
	}
	f, _ := sum.Float64()
	return f, currency, true
}

// resolveItemPrice extracts one service item's own price. Missing data
// degrades to {0, EUR}.
func resolveItemPrice(item map[string]interface{}) (float64, string) {
	currency, _ := firstString(item, itemCurrencyCandidates...)
	if currency == "" {
		currency = "EUR"
	}
	amount, _ := firstNumber(item, itemPriceCandidates...)
	return amount, currency
}
