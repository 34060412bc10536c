// Package normalizer converts raw, weakly-typed booking documents from the
// Travel Compositor API into canonical NormalizedBooking values. Extraction
// is resilient by construction: every field resolves through an ordered
// candidate-path list, absence degrades to empty values, and Normalize never
// returns an error.
package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rondreis/travel-office-backend/types"
	"go.uber.org/zap"
)

// Normalizer is a stateless document normalizer. It is safe for concurrent
// use; the only dependency is an injected logger so normalization stays a
// pure, testable function.
type Normalizer struct {
	log *zap.SugaredLogger
}

// New returns a Normalizer logging through the given sugared logger. A nil
// logger disables logging.
func New(log *zap.SugaredLogger) *Normalizer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Normalizer{log: log}
}

// Normalize converts one raw document into its canonical form. The input is
// classified first and the matching strategy runs; unclassifiable documents
// produce a minimal skeleton rather than an error. The original document is
// retained verbatim in RawData.
func (n *Normalizer) Normalize(doc types.RawDocument) *types.NormalizedBooking {
	shape := Classify(doc)
	n.log.Debugw("Normalizing document", "shape", shape)

	var booking *types.NormalizedBooking
	switch shape {
	case types.ShapeSingleService:
		booking = n.normalizeSingleService(doc)
	case types.ShapeCompositeBooking:
		booking = n.normalizeComposite(doc)
	default:
		booking = n.normalizeUnknown(doc)
	}

	booking.Shape = shape
	booking.RawData = doc
	n.log.Debugw("Document normalized",
		"id", booking.ID,
		"shape", shape,
		"hotels", len(booking.Services.Hotels),
		"destinations", len(booking.Destinations),
		"images", len(booking.Images))
	return booking
}

// normalizeSingleService handles documents describing one inventory item,
// in practice a single hotel stay. Such documents carry no contact person,
// so the client name falls to the sentinel.
func (n *Normalizer) normalizeSingleService(doc types.RawDocument) *types.NormalizedBooking {
	hotel := normalizeHotel(doc)
	if hotel.CheckIn == "" {
		hotel.CheckIn, _ = firstString(doc, "startDate")
	}
	if hotel.CheckOut == "" {
		hotel.CheckOut, _ = firstString(doc, "endDate")
	}
	if hotel.Nights == 0 {
		hotel.Nights = nightsBetween(hotel.CheckIn, hotel.CheckOut)
	}

	services := emptyServices()
	services.Hotels = append(services.Hotels, hotel)

	title := hotel.Name
	if hotel.Location != "" && hotel.Name != "" {
		title = fmt.Sprintf("%s - %s", hotel.Location, hotel.Name)
	}

	booking := n.newSkeleton(doc)
	if booking.ID == "" {
		if hotelID, ok := firstString(doc, "hotelId"); ok {
			booking.ID = "hotel-" + hotelID
		}
	}
	n.fillFallbackID(booking, doc)

	if title != "" {
		booking.Title = title
	}
	booking.Services = services
	booking.StartDate, _ = firstString(doc, "startDate", "checkInDate")
	booking.EndDate, _ = firstString(doc, "endDate", "checkOutDate")
	booking.TotalPrice = n.totalPrice(doc)
	booking.Images = collectImages(doc)
	booking.Destinations = collectDestinations(doc, services.Hotels)
	booking.Facilities = collectFacilities(doc)
	booking.Descriptions = extractDescriptions(doc)
	booking.Metadata = n.metadata(doc, booking)
	return booking
}

// normalizeComposite handles full bookings with nested per-service arrays
// and a contact person block.
func (n *Normalizer) normalizeComposite(doc types.RawDocument) *types.NormalizedBooking {
	booking := n.newSkeleton(doc)
	n.fillFallbackID(booking, doc)

	booking.Client = extractClient(doc)
	booking.Services = extractServices(doc)
	booking.TotalPrice = n.totalPrice(doc)
	booking.Images = collectImages(doc)
	booking.Destinations = collectDestinations(doc, booking.Services.Hotels)
	booking.Itinerary = extractItinerary(doc)
	booking.Vouchers = collectVouchers(doc)
	booking.Facilities = collectFacilities(doc)
	booking.Descriptions = extractDescriptions(doc)

	if booking.Title == "" {
		booking.Title = titleFromDestinations(booking.Destinations)
	}
	booking.Metadata = n.metadata(doc, booking)
	return booking
}

// normalizeUnknown degrades to a near-empty skeleton populated only with
// directly named top-level fields. Container invariants still hold.
func (n *Normalizer) normalizeUnknown(doc types.RawDocument) *types.NormalizedBooking {
	n.log.Debugw("Document matched no known shape, emitting skeleton")
	booking := n.newSkeleton(doc)
	n.fillFallbackID(booking, doc)
	booking.TotalPrice = types.Price{Amount: 0, Currency: "EUR"}
	booking.Metadata = n.metadata(doc, booking)
	return booking
}

// newSkeleton builds the base record every strategy starts from, with every
// container allocated and the client name pre-set to the sentinel.
func (n *Normalizer) newSkeleton(doc types.RawDocument) *types.NormalizedBooking {
	id, _ := firstString(doc, "bookingReference", "id", "bookingId", "reference")
	title, _ := firstString(doc, "title", "name", "largeTitle")
	startDate, _ := firstString(doc, "startDate")
	endDate, _ := firstString(doc, "endDate")

	return &types.NormalizedBooking{
		ID:           id,
		Title:        title,
		Client:       types.Client{Name: types.ClientNameUnavailable},
		StartDate:    startDate,
		EndDate:      endDate,
		TotalPrice:   types.Price{Currency: "EUR"},
		Services:     emptyServices(),
		Destinations: []types.Destination{},
		Images:       []string{},
		Itinerary:    []types.ItineraryDay{},
		Vouchers:     []types.Voucher{},
		Facilities:   []types.Facility{},
	}
}

// fillFallbackID synthesizes a placeholder id when no id field resolved, so
// the id invariant holds even for anonymous documents. The placeholder is a
// name-based UUID over the serialized document, keeping normalization
// idempotent: the same input always yields the same id.
func (n *Normalizer) fillFallbackID(booking *types.NormalizedBooking, doc types.RawDocument) {
	if booking.ID != "" {
		return
	}
	serialized, err := json.Marshal(doc)
	if err != nil {
		serialized = nil
	}
	booking.ID = "booking-" + uuid.NewSHA1(uuid.NameSpaceOID, serialized).String()
	n.log.Debugw("No id field resolved, synthesized placeholder", "id", booking.ID)
}

// totalPrice runs the price aggregator and renders its result as the public
// shape: a missing price becomes {0, EUR}, keeping arithmetic safe.
func (n *Normalizer) totalPrice(doc types.RawDocument) types.Price {
	amount, currency, ok := resolveTotalPrice(doc)
	price := types.Price{Currency: currency}
	if ok {
		price.Amount = amount
	}
	if breakdown := lookupPath(doc, "pricebreakdown"); breakdown != nil {
		price.Breakdown = breakdown
	}
	return price
}

// extractClient assembles the contact person. Name concatenates first/last
// name fields trimmed, falling back to the sentinel when nothing resolves.
func extractClient(doc map[string]interface{}) types.Client {
	firstName, _ := firstString(doc, "contactPerson.name", "contactPerson.firstName", "client.firstName", "user.name")
	lastName, _ := firstString(doc, "contactPerson.lastName", "contactPerson.surname", "client.lastName", "user.surname")

	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		name = types.ClientNameUnavailable
	}

	email, _ := firstString(doc, "contactPerson.email", "client.email", "user.email")
	phone, _ := firstString(doc, "contactPerson.phone", "contactPerson.phoneNumber", "client.phone")
	company, _ := firstString(doc, "contactPerson.company", "agency.name", "client.company")
	address, _ := firstString(doc, "contactPerson.address", "client.address")
	agencyRef, _ := firstString(doc, "agencyBookingReference", "contactPerson.agencyBookingReference", "externalReference")

	return types.Client{
		Name:                   name,
		Email:                  email,
		Phone:                  phone,
		Company:                company,
		Address:                address,
		AgencyBookingReference: agencyRef,
	}
}

// extractDescriptions pulls the free-form summary block. Unrecognized keys
// of a descriptions object ride along in Extra.
func extractDescriptions(doc map[string]interface{}) types.Descriptions {
	out := types.Descriptions{}
	out.Title, _ = firstString(doc, "descriptions.title", "title", "largeTitle")
	out.Description, _ = firstString(doc, "descriptions.description", "description", "remarks")

	if block := asMap(lookupPath(doc, "descriptions")); block != nil {
		for key, value := range block {
			if key == "title" || key == "description" {
				continue
			}
			if out.Extra == nil {
				out.Extra = make(map[string]interface{})
			}
			out.Extra[key] = value
		}
	}
	return out
}

// metadata copies passthrough counters, deriving the ones the document does
// not state from what was extracted.
func (n *Normalizer) metadata(doc types.RawDocument, booking *types.NormalizedBooking) types.Metadata {
	meta := types.Metadata{}

	if nights, ok := firstInt(doc, "nightsCount", "numberOfNights", "nights"); ok {
		meta.NightsCount = nights
	} else if derived := nightsBetween(booking.StartDate, booking.EndDate); derived > 0 {
		meta.NightsCount = derived
	} else {
		for _, hotel := range booking.Services.Hotels {
			meta.NightsCount += hotel.Nights
		}
	}

	meta.DestinationCount = len(booking.Destinations)
	meta.AdultCount, _ = firstInt(doc, "adultCount", "adults", "numberOfAdults")
	meta.ChildCount, _ = firstInt(doc, "childCount", "children", "numberOfChildren")

	services := booking.Services
	meta.ServiceCount = len(services.Hotels) + len(services.Transports) + len(services.Tickets) +
		len(services.Transfers) + len(services.Cars) + len(services.ClosedTours) +
		len(services.Cruises) + len(services.Insurances) + len(services.ManualServices) +
		len(services.ItemServices)

	return meta
}

// titleFromDestinations synthesizes a display title from the first few
// destination names when the document has no title of its own.
func titleFromDestinations(destinations []types.Destination) string {
	names := make([]string, 0, 3)
	for _, d := range destinations {
		if d.Name == "" {
			continue
		}
		names = append(names, d.Name)
		if len(names) == 3 {
			break
		}
	}
	if len(names) == 0 {
		return "Reis zonder titel"
	}
	return strings.Join(names, " - ")
}
