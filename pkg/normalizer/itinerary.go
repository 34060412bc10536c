package normalizer

import (
	"github.com/rondreis/travel-office-backend/types"
)

// extractItinerary normalizes a day-by-day itinerary. An absent itinerary is
// an empty list, not an error. Day order is preserved as given; day numbers
// are taken verbatim with a 1-based index fallback and are not checked for
// being sequential or unique.
func extractItinerary(doc map[string]interface{}) []types.ItineraryDay {
	days := make([]types.ItineraryDay, 0)

	for idx, raw := range sliceOfMaps(doc, "itinerary") {
		dayNumber, ok := firstInt(raw, "day", "dayNumber")
		if !ok {
			dayNumber = idx + 1
		}
		date, _ := firstString(raw, "date", "startDate")
		title, _ := firstString(raw, "title", "name", "description")

		day := types.ItineraryDay{
			Day:        dayNumber,
			Date:       date,
			Title:      title,
			Activities: itineraryActivities(raw),
		}

		if transport := itineraryTransport(raw); transport != nil {
			day.Transport = transport
		}
		if accommodation := itineraryAccommodation(raw); accommodation != nil {
			day.Accommodation = accommodation
		}

		days = append(days, day)
	}

	return days
}

// itineraryTransport builds the day's transport sub-record. The arrival leg
// is only present when the source carries an arrival time.
func itineraryTransport(day map[string]interface{}) *types.ItineraryTransport {
	raw := asMap(day["transport"])
	if raw == nil {
		return nil
	}

	transportType, _ := firstString(raw, "type", "transportType")
	company, _ := firstString(raw, "company", "carrier", "airline")
	flightNumber, _ := firstString(raw, "flightNumber", "number")

	transport := &types.ItineraryTransport{
		Type:         transportType,
		Company:      company,
		FlightNumber: flightNumber,
		Departure:    transportLeg(raw, "departure"),
	}

	if arrivalTime, ok := firstString(raw, "arrival.time", "arrivalTime"); ok && arrivalTime != "" {
		transport.Arrival = transportLeg(raw, "arrival")
	}

	if transport.Type == "" && transport.Company == "" && transport.FlightNumber == "" &&
		transport.Departure == nil && transport.Arrival == nil {
		return nil
	}
	return transport
}

func itineraryAccommodation(day map[string]interface{}) *types.ItineraryAccommodation {
	raw := asMap(day["accommodation"])
	if raw == nil {
		raw = asMap(day["hotel"])
	}
	if raw == nil {
		return nil
	}

	name, _ := firstString(raw, "name", "hotelName", "title")
	location, _ := firstString(raw, "location", "locationName", "city")
	accommodationType, _ := firstString(raw, "type", "category")

	if name == "" && location == "" && accommodationType == "" {
		return nil
	}
	return &types.ItineraryAccommodation{
		Name:     name,
		Location: location,
		Type:     accommodationType,
	}
}

// itineraryActivities passes the day's activities array through untouched.
// A missing or non-array field yields an empty list.
func itineraryActivities(day map[string]interface{}) []interface{} {
	if activities := asSlice(day["activities"]); activities != nil {
		return activities
	}
	return []interface{}{}
}
