package pexels

import "github.com/rondreis/travel-office-backend/types"

// BuildSearchQuery picks the search term for a booking's fallback image.
// Priority order:
// 1. First destination name (most specific)
// 2. First hotel's location
// 3. Booking title (last resort, may contain location info)
// 4. Empty string when nothing usable exists
func BuildSearchQuery(booking *types.NormalizedBooking) string {
	for _, dest := range booking.Destinations {
		if dest.Name != "" {
			return dest.Name
		}
	}

	for _, hotel := range booking.Services.Hotels {
		if hotel.Location != "" {
			return hotel.Location
		}
	}

	if booking.Title != "" {
		return booking.Title
	}

	return ""
}
