package types

// RawDocument is one unvalidated JSON payload as received from the Travel
// Compositor API. Documents drift between schema versions and between the
// booking and travel-idea endpoints, so no structure is assumed beyond
// "JSON object".
type RawDocument map[string]interface{}

// DocumentShape identifies which extraction strategy applies to a RawDocument.
type DocumentShape string

const (
	// ShapeSingleService is a document describing one inventory item,
	// typically a single hotel stay returned by an accommodation endpoint.
	ShapeSingleService DocumentShape = "SINGLE_SERVICE"

	// ShapeCompositeBooking is a full booking with nested per-service-type
	// arrays (hotelservice, transportservice, ...) and a contact person.
	ShapeCompositeBooking DocumentShape = "COMPOSITE_BOOKING"

	// ShapeUnknown matches neither signature; extraction degrades to a
	// minimal skeleton populated from directly named top-level fields.
	ShapeUnknown DocumentShape = "UNKNOWN"
)
