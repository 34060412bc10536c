package normalizer

import (
	"testing"

	"github.com/rondreis/travel-office-backend/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectImagesDedup(t *testing.T) {
	// The same URL appearing in three different source fields comes out once.
	doc := map[string]interface{}{
		"image":        "https://cdn.example.com/rome.jpg",
		"mainImage":    "https://cdn.example.com/rome.jpg",
		"thumbnailUrl": "https://cdn.example.com/rome.jpg",
		"gallery": []interface{}{
			"https://cdn.example.com/colosseum.jpg",
		},
	}

	// Candidate fields scan in fixed order, so the gallery entry is
	// discovered before the image/mainImage/thumbnailUrl trio.
	images := collectImages(doc)
	assert.Equal(t, []string{
		"https://cdn.example.com/colosseum.jpg",
		"https://cdn.example.com/rome.jpg",
	}, images)
}

func TestCollectImagesShapes(t *testing.T) {
	doc := map[string]interface{}{
		"images": []interface{}{
			"https://cdn.example.com/a.jpg",
			map[string]interface{}{"url": "https://cdn.example.com/b.jpg"},
			map[string]interface{}{"src": "https://cdn.example.com/c.jpg"},
			map[string]interface{}{"href": "https://cdn.example.com/d.jpg"},
			42.0, // unrecognized shape, skipped
		},
		"photos": "https://cdn.example.com/e.jpg",
		"hotelservice": []interface{}{
			map[string]interface{}{
				"images": []interface{}{"https://cdn.example.com/hotel.jpg"},
			},
		},
		"gallery": map[string]interface{}{"unexpected": "object"},
	}

	images := collectImages(doc)
	assert.Equal(t, []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
		"https://cdn.example.com/c.jpg",
		"https://cdn.example.com/d.jpg",
		"https://cdn.example.com/e.jpg",
		"https://cdn.example.com/hotel.jpg",
	}, images)
}

func TestCollectDestinationsDedupAndNights(t *testing.T) {
	// Two hotels in the same destination fold into one entry whose nights
	// are the sum of each stay.
	hotels := []types.HotelService{
		{Name: "Hotel Luna", Destination: "Rome", Nights: 3},
		{Name: "Hotel Sole", Destination: "Rome", Nights: 2},
		{Name: "Hotel Mare", Destination: "Naples", Nights: 1},
	}

	destinations := collectDestinations(map[string]interface{}{}, hotels)
	require.Len(t, destinations, 2)
	assert.Equal(t, "Rome", destinations[0].Name)
	assert.Equal(t, 5, destinations[0].Nights)
	assert.Equal(t, "Naples", destinations[1].Name)
	assert.Equal(t, 1, destinations[1].Nights)
}

func TestCollectDestinationsSources(t *testing.T) {
	doc := map[string]interface{}{
		"destinations": []interface{}{
			map[string]interface{}{"code": "ROM", "name": "Rome", "country": "Italy"},
			"Florence",
		},
		"cities": []interface{}{
			map[string]interface{}{"name": "rome"}, // same display name, different case
		},
		"itinerary": []interface{}{
			map[string]interface{}{"destination": "Venice"},
		},
	}

	destinations := collectDestinations(doc, nil)
	names := make([]string, 0, len(destinations))
	for _, d := range destinations {
		names = append(names, d.Name)
	}
	// "rome" dedups against the code-less name key only; the coded Rome entry
	// stays separate since codes and names key differently.
	assert.Contains(t, names, "Rome")
	assert.Contains(t, names, "Florence")
	assert.Contains(t, names, "Venice")
	assert.Equal(t, "Italy", destinations[0].Country)
}

func TestCollectFacilitiesDedupByCode(t *testing.T) {
	doc := map[string]interface{}{
		"facilities": []interface{}{
			map[string]interface{}{"code": "WIFI", "name": "Wi-Fi"},
			map[string]interface{}{"code": "WIFI", "name": "Wireless internet"},
			map[string]interface{}{"name": "Pool"},
			map[string]interface{}{"name": "Pool"}, // code-less, not deduplicated
		},
		"hotelservice": []interface{}{
			map[string]interface{}{
				"facilities": []interface{}{
					map[string]interface{}{"code": "WIFI", "name": "Wi-Fi again"},
					map[string]interface{}{"code": "SPA", "name": "Spa"},
				},
			},
		},
	}

	facilities := collectFacilities(doc)
	require.Len(t, facilities, 4)
	assert.Equal(t, "WIFI", facilities[0].Code)
	assert.Equal(t, "Pool", facilities[1].Name)
	assert.Equal(t, "Pool", facilities[2].Name)
	assert.Equal(t, "SPA", facilities[3].Code)
}

func TestCollectVouchers(t *testing.T) {
	doc := map[string]interface{}{
		"vouchers": []interface{}{
			map[string]interface{}{"code": "V-1", "type": "hotel", "url": "https://vouchers/1"},
			map[string]interface{}{"code": "V-1", "type": "hotel"},
			map[string]interface{}{"url": "https://vouchers/2"},
			"not an object",
		},
	}

	vouchers := collectVouchers(doc)
	require.Len(t, vouchers, 2)
	assert.Equal(t, "V-1", vouchers[0].Code)
	assert.Equal(t, "https://vouchers/2", vouchers[1].URL)
}
