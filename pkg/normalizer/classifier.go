package normalizer

import (
	"github.com/rondreis/travel-office-backend/types"
)

// Classify inspects a raw document and selects the extraction strategy.
// Checks run in a fixed order and the single-service signature wins over the
// composite one when both are present. Classification never fails: anything
// unrecognized falls through to ShapeUnknown.
func Classify(doc types.RawDocument) types.DocumentShape {
	if doc == nil {
		return types.ShapeUnknown
	}

	if hasField(doc, "hotelId") && hasField(doc, "hotelName") && hasField(doc, "locationName") {
		return types.ShapeSingleService
	}

	if hasField(doc, "hotelservice") || hasField(doc, "ticketservice") || hasField(doc, "contactPerson") {
		return types.ShapeCompositeBooking
	}

	return types.ShapeUnknown
}

func hasField(doc types.RawDocument, key string) bool {
	v, ok := doc[key]
	return ok && v != nil
}
