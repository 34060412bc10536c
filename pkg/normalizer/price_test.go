package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTotalPriceDirectField(t *testing.T) {
	doc := map[string]interface{}{
		"pricebreakdown": map[string]interface{}{
			"totalPrice": map[string]interface{}{
				"microsite": map[string]interface{}{
					"amount":   450.0,
					"currency": "EUR",
				},
			},
		},
	}

	amount, currency, ok := resolveTotalPrice(doc)
	assert.True(t, ok)
	assert.Equal(t, 450.0, amount)
	assert.Equal(t, "EUR", currency)
}

func TestResolveTotalPriceDirectFieldWinsOverComponents(t *testing.T) {
	// A direct total is used verbatim regardless of component contents.
	doc := map[string]interface{}{
		"price": map[string]interface{}{"amount": 100.0, "currency": "USD"},
		"hotelservice": []interface{}{
			map[string]interface{}{"price": map[string]interface{}{"amount": 999.0}},
		},
	}

	amount, currency, ok := resolveTotalPrice(doc)
	assert.True(t, ok)
	assert.Equal(t, 100.0, amount)
	assert.Equal(t, "USD", currency)
}

func TestResolveTotalPriceComponentSum(t *testing.T) {
	doc := map[string]interface{}{
		"hotelservice": []interface{}{
			map[string]interface{}{"price": map[string]interface{}{"amount": 200.10}},
			map[string]interface{}{"price": map[string]interface{}{"amount": 100.20}},
		},
		"transportservice": []interface{}{
			map[string]interface{}{"amount": 49.90},
			map[string]interface{}{"note": "no price here"},
		},
	}

	amount, currency, ok := resolveTotalPrice(doc)
	assert.True(t, ok)
	assert.Equal(t, 350.20, amount, "decimal accumulation keeps cent-sums exact")
	assert.Equal(t, "EUR", currency, "currency defaults to EUR when absent")
}

func TestResolveTotalPriceNoData(t *testing.T) {
	// No direct field and no resolvable component: "no price data", which is
	// distinct from "price is zero".
	doc := map[string]interface{}{
		"hotelservice": []interface{}{
			map[string]interface{}{"name": "Hotel Luna"},
		},
	}

	_, _, ok := resolveTotalPrice(doc)
	assert.False(t, ok)
}

func TestResolveTotalPriceAllZeroComponents(t *testing.T) {
	doc := map[string]interface{}{
		"hotelservice": []interface{}{
			map[string]interface{}{"price": map[string]interface{}{"amount": 0.0}},
		},
	}

	_, _, ok := resolveTotalPrice(doc)
	assert.False(t, ok, "an all-zero pass yields no price data")
}

func TestResolveItemPrice(t *testing.T) {
	amount, currency := resolveItemPrice(map[string]interface{}{
		"price": map[string]interface{}{"amount": "88.5", "currency": "GBP"},
	})
	assert.Equal(t, 88.5, amount)
	assert.Equal(t, "GBP", currency)

	amount, currency = resolveItemPrice(map[string]interface{}{})
	assert.Equal(t, 0.0, amount)
	assert.Equal(t, "EUR", currency)
}
