package types

// ClientNameUnavailable is the sentinel shown when a document carries no
// contact person block at all (single-service documents never do).
const ClientNameUnavailable = "Klant gegevens niet beschikbaar"

// Price is a monetary value. Amount is 0, never absent, when no price data
// resolved, so downstream arithmetic stays safe; Currency defaults to EUR.
type Price struct {
	Amount    float64     `json:"amount"`
	Currency  string      `json:"currency"`
	Breakdown interface{} `json:"breakdown,omitempty"`
}

// Client is the booking's contact person. Name is never empty; it falls back
// to ClientNameUnavailable.
type Client struct {
	Name                   string `json:"name"`
	Email                  string `json:"email,omitempty"`
	Phone                  string `json:"phone,omitempty"`
	Company                string `json:"company,omitempty"`
	Address                string `json:"address,omitempty"`
	AgencyBookingReference string `json:"agencyBookingReference,omitempty"`
}

// TransportLeg is one end of a transport segment. Arrival legs are only
// emitted when an arrival time is present in the source.
type TransportLeg struct {
	Location string `json:"location,omitempty"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
}

// HotelService is one normalized hotel stay.
type HotelService struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Location    string   `json:"location,omitempty"`
	Destination string   `json:"destination,omitempty"`
	Category    string   `json:"category,omitempty"`
	MealPlan    string   `json:"mealPlan,omitempty"`
	RoomType    string   `json:"roomType,omitempty"`
	CheckIn     string   `json:"checkIn,omitempty"`
	CheckOut    string   `json:"checkOut,omitempty"`
	Nights      int      `json:"nights"`
	Price       Price    `json:"price"`
	Images      []string `json:"images,omitempty"`
}

// TransportService is one normalized transport segment (flight, train, bus).
type TransportService struct {
	ID           string        `json:"id,omitempty"`
	Type         string        `json:"type,omitempty"`
	Company      string        `json:"company,omitempty"`
	FlightNumber string        `json:"flightNumber,omitempty"`
	Departure    *TransportLeg `json:"departure,omitempty"`
	Arrival      *TransportLeg `json:"arrival,omitempty"`
	Price        Price         `json:"price"`
}

// TicketService is one normalized ticket / activity admission.
type TicketService struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	Price       Price  `json:"price"`
}

// TransferService is one normalized point-to-point transfer.
type TransferService struct {
	ID       string `json:"id,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Date     string `json:"date,omitempty"`
	Vehicle  string `json:"vehicle,omitempty"`
	Price    Price  `json:"price"`
	Capacity int    `json:"capacity,omitempty"`
}

// CarService is one normalized car rental.
type CarService struct {
	ID             string `json:"id,omitempty"`
	Vendor         string `json:"vendor,omitempty"`
	Model          string `json:"model,omitempty"`
	PickupLocation string `json:"pickupLocation,omitempty"`
	PickupDate     string `json:"pickupDate,omitempty"`
	DropoffDate    string `json:"dropoffDate,omitempty"`
	Price          Price  `json:"price"`
}

// ClosedTourService is one normalized packaged tour.
type ClosedTourService struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Destination string `json:"destination,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Price       Price  `json:"price"`
}

// CruiseService is one normalized cruise segment.
type CruiseService struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Ship      string `json:"ship,omitempty"`
	Cabin     string `json:"cabin,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	Price     Price  `json:"price"`
}

// InsuranceService is one normalized insurance product.
type InsuranceService struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Policy string `json:"policy,omitempty"`
	Price  Price  `json:"price"`
}

// ManualService is an agent-entered line item with free-form content.
type ManualService struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
	Price       Price  `json:"price"`
}

// ItemService is a generic catalog item that fits no other category.
type ItemService struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Price Price  `json:"price"`
}

// Services groups every per-service-type list of a booking. All slices are
// always non-nil, possibly empty, so callers never need container nil-checks.
type Services struct {
	Hotels         []HotelService      `json:"hotels"`
	Transports     []TransportService  `json:"transports"`
	Tickets        []TicketService     `json:"tickets"`
	Transfers      []TransferService   `json:"transfers"`
	Cars           []CarService        `json:"cars"`
	ClosedTours    []ClosedTourService `json:"closedTours"`
	Cruises        []CruiseService     `json:"cruises"`
	Insurances     []InsuranceService  `json:"insurances"`
	ManualServices []ManualService     `json:"manualServices"`
	ItemServices   []ItemService       `json:"itemServices"`
}

// Destination is one deduplicated place the trip visits. Nights accumulates
// across all hotel stays mapped to the same destination.
type Destination struct {
	Code     string `json:"code,omitempty"`
	Name     string `json:"name"`
	Country  string `json:"country,omitempty"`
	Nights   int    `json:"nights"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Facility is one hotel/booking amenity. Entries carrying a code are
// deduplicated by it; code-less entries are kept as-is.
type Facility struct {
	Code        string `json:"code,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Voucher is one attached voucher document reference.
type Voucher struct {
	Code string `json:"code,omitempty"`
	Type string `json:"type,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Descriptions is the free-form summary text block of a booking.
type Descriptions struct {
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

// Metadata carries passthrough counters. Values are copied as found, no
// validation or cross-checking.
type Metadata struct {
	NightsCount      int `json:"nightsCount"`
	DestinationCount int `json:"destinationCount"`
	AdultCount       int `json:"adultCount"`
	ChildCount       int `json:"childCount"`
	ServiceCount     int `json:"serviceCount"`
}

// ItineraryTransport is the transport sub-record of an itinerary day.
type ItineraryTransport struct {
	Type         string        `json:"type,omitempty"`
	Company      string        `json:"company,omitempty"`
	FlightNumber string        `json:"flightNumber,omitempty"`
	Departure    *TransportLeg `json:"departure,omitempty"`
	Arrival      *TransportLeg `json:"arrival,omitempty"`
}

// ItineraryAccommodation is the accommodation sub-record of an itinerary day.
type ItineraryAccommodation struct {
	Name     string `json:"name,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ItineraryDay is one normalized day of a day-by-day itinerary. Source order
// is preserved; day numbers are not checked for gaps or duplicates.
type ItineraryDay struct {
	Day           int                     `json:"day"`
	Date          string                  `json:"date,omitempty"`
	Title         string                  `json:"title,omitempty"`
	Transport     *ItineraryTransport     `json:"transport,omitempty"`
	Accommodation *ItineraryAccommodation `json:"accommodation,omitempty"`
	Activities    []interface{}           `json:"activities"`
}

// NormalizedBooking is the canonical, display-safe representation of one
// booking or travel idea. ID, Title, Client.Name and every Services slice
// are always present, whatever shape the input had; only leaf values may be
// empty. The original document is retained verbatim in RawData.
type NormalizedBooking struct {
	ID           string         `json:"id"`
	Shape        DocumentShape  `json:"shape"`
	Title        string         `json:"title"`
	Client       Client         `json:"client"`
	StartDate    string         `json:"startDate,omitempty"`
	EndDate      string         `json:"endDate,omitempty"`
	TotalPrice   Price          `json:"totalPrice"`
	Services     Services       `json:"services"`
	Destinations []Destination  `json:"destinations"`
	Images       []string       `json:"images"`
	Itinerary    []ItineraryDay `json:"itinerary"`
	Vouchers     []Voucher      `json:"vouchers"`
	Facilities   []Facility     `json:"facilities"`
	Descriptions Descriptions   `json:"descriptions"`
	Metadata     Metadata       `json:"metadata"`
	RawData      RawDocument    `json:"rawData,omitempty"`
}
