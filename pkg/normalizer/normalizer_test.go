package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/rondreis/travel-office-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleServiceDoc() types.RawDocument {
	return types.RawDocument{
		"hotelId":      "42",
		"hotelName":    "Hotel Luna",
		"locationName": "Rome",
		"startDate":    "2024-05-01",
		"endDate":      "2024-05-04",
		"pricebreakdown": map[string]interface{}{
			"totalPrice": map[string]interface{}{
				"microsite": map[string]interface{}{
					"amount":   450.0,
					"currency": "EUR",
				},
			},
		},
	}
}

func TestNormalizeSingleService(t *testing.T) {
	booking := New(nil).Normalize(singleServiceDoc())

	assert.Equal(t, types.ShapeSingleService, booking.Shape)
	assert.Equal(t, "hotel-42", booking.ID)
	assert.Equal(t, "Rome - Hotel Luna", booking.Title)
	assert.Equal(t, types.ClientNameUnavailable, booking.Client.Name,
		"single-service documents carry no client block")

	require.Len(t, booking.Services.Hotels, 1)
	hotel := booking.Services.Hotels[0]
	assert.Equal(t, "Hotel Luna", hotel.Name)
	assert.Equal(t, 3, hotel.Nights, "nights computed from the date pair")

	assert.Equal(t, 450.0, booking.TotalPrice.Amount)
	assert.Equal(t, "EUR", booking.TotalPrice.Currency)
	assert.NotNil(t, booking.RawData)
}

func TestNormalizeComposite(t *testing.T) {
	doc := types.RawDocument{
		"bookingReference": "RB-2024-001",
		"title":            "Rondreis Italië",
		"startDate":        "2024-05-01",
		"endDate":          "2024-05-08",
		"adultCount":       2.0,
		"childCount":       1.0,
		"contactPerson": map[string]interface{}{
			"name":     "Jan",
			"lastName": "de Vries",
			"email":    "jan@example.com",
			"phone":    "+31612345678",
		},
		"hotelservice": []interface{}{
			map[string]interface{}{
				"hotelName":       "Hotel Luna",
				"destinationName": "Rome",
				"checkInDate":     "2024-05-01",
				"checkOutDate":    "2024-05-04",
				"price":           map[string]interface{}{"amount": 450.0, "currency": "EUR"},
			},
			map[string]interface{}{
				"hotelName":       "Hotel Mare",
				"destinationName": "Naples",
				"nights":          4.0,
				"price":           map[string]interface{}{"amount": 380.0, "currency": "EUR"},
			},
		},
		"transportservice": []interface{}{
			map[string]interface{}{
				"transportType":     "FLIGHT",
				"company":           "KLM",
				"flightNumber":      "KL1601",
				"departureLocation": "AMS",
				"departureDate":     "2024-05-01",
				"arrivalLocation":   "FCO",
				"price":             map[string]interface{}{"amount": 240.0, "currency": "EUR"},
			},
		},
	}

	booking := New(nil).Normalize(doc)

	assert.Equal(t, types.ShapeCompositeBooking, booking.Shape)
	assert.Equal(t, "RB-2024-001", booking.ID)
	assert.Equal(t, "Rondreis Italië", booking.Title)
	assert.Equal(t, "Jan de Vries", booking.Client.Name)
	assert.Equal(t, "jan@example.com", booking.Client.Email)

	require.Len(t, booking.Services.Hotels, 2)
	assert.Equal(t, 3, booking.Services.Hotels[0].Nights)
	assert.Equal(t, 4, booking.Services.Hotels[1].Nights)
	require.Len(t, booking.Services.Transports, 1)
	transport := booking.Services.Transports[0]
	assert.Equal(t, "KLM", transport.Company)
	require.NotNil(t, transport.Departure)
	assert.Equal(t, "AMS", transport.Departure.Location)

	// No direct total field: component summation.
	assert.Equal(t, 1070.0, booking.TotalPrice.Amount)

	require.Len(t, booking.Destinations, 2)
	assert.Equal(t, "Rome", booking.Destinations[0].Name)
	assert.Equal(t, 3, booking.Destinations[0].Nights)

	assert.Equal(t, 2, booking.Metadata.AdultCount)
	assert.Equal(t, 1, booking.Metadata.ChildCount)
	assert.Equal(t, 3, booking.Metadata.ServiceCount)
	assert.Equal(t, 7, booking.Metadata.NightsCount, "derived from the booking date pair")
}

func TestNormalizeUnknownSkeleton(t *testing.T) {
	doc := types.RawDocument{
		"id":        "X-1",
		"title":     "Mystery document",
		"startDate": "2024-05-01",
		"endDate":   "2024-05-02",
		"somethingElse": map[string]interface{}{
			"deep": "value",
		},
	}

	booking := New(nil).Normalize(doc)

	assert.Equal(t, types.ShapeUnknown, booking.Shape)
	assert.Equal(t, "X-1", booking.ID)
	assert.Equal(t, "Mystery document", booking.Title)
	assert.Equal(t, "2024-05-01", booking.StartDate)
	assert.Equal(t, "2024-05-02", booking.EndDate)
	assert.Equal(t, 0.0, booking.TotalPrice.Amount)
	assert.Equal(t, "EUR", booking.TotalPrice.Currency)
}

func TestNormalizeContainerPresence(t *testing.T) {
	// Every services slice is non-nil for all three shapes, and client is
	// always an object with a non-empty name.
	docs := map[string]types.RawDocument{
		"single":    singleServiceDoc(),
		"composite": {"contactPerson": map[string]interface{}{}},
		"unknown":   {},
		"nil":       nil,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			booking := New(nil).Normalize(doc)
			assert.NotEmpty(t, booking.ID)
			assert.NotEmpty(t, booking.Client.Name)
			assert.NotNil(t, booking.Services.Hotels)
			assert.NotNil(t, booking.Services.Transports)
			assert.NotNil(t, booking.Services.Tickets)
			assert.NotNil(t, booking.Services.Transfers)
			assert.NotNil(t, booking.Services.Cars)
			assert.NotNil(t, booking.Services.ClosedTours)
			assert.NotNil(t, booking.Services.Cruises)
			assert.NotNil(t, booking.Services.Insurances)
			assert.NotNil(t, booking.Services.ManualServices)
			assert.NotNil(t, booking.Services.ItemServices)
			assert.NotNil(t, booking.Destinations)
			assert.NotNil(t, booking.Images)
			assert.NotNil(t, booking.Itinerary)
			assert.NotNil(t, booking.Vouchers)
			assert.NotNil(t, booking.Facilities)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	docs := []types.RawDocument{
		singleServiceDoc(),
		{"hotelservice": []interface{}{map[string]interface{}{"hotelName": "A"}}},
		{"noIdAtAll": true},
	}

	n := New(nil)
	for _, doc := range docs {
		first := n.Normalize(doc)
		second := n.Normalize(doc)
		assert.Equal(t, first, second)
	}
}

func TestNormalizeOutputIsJSONSerializable(t *testing.T) {
	booking := New(nil).Normalize(singleServiceDoc())
	data, err := json.Marshal(booking)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hotels"`)
	assert.Contains(t, string(data), `"rawData"`)
}

func TestNormalizeMalformedShapesSkipped(t *testing.T) {
	// Scalars where arrays are expected, and arrays of scalars where objects
	// are expected, are skipped without failing the rest of the extraction.
	doc := types.RawDocument{
		"contactPerson": map[string]interface{}{"name": "Anna"},
		"hotelservice":  "not an array",
		"ticketservice": []interface{}{"not an object", 17.0},
		"images":        12.0,
		"vouchers":      map[string]interface{}{"wrong": "shape"},
	}

	booking := New(nil).Normalize(doc)
	assert.Equal(t, "Anna", booking.Client.Name)
	assert.Empty(t, booking.Services.Hotels)
	assert.Empty(t, booking.Services.Tickets)
	assert.Empty(t, booking.Images)
	assert.Empty(t, booking.Vouchers)
}
