package normalizer

import (
	"time"

	"github.com/rondreis/travel-office-backend/types"
)

// Per-service extraction. Each function maps one raw array entry onto its
// normalized record using the same fallback-chain resolution as everything
// else; nothing here errors on missing or malformed fields.

// dateLayouts accepted when deriving nights from a check-in/check-out pair.
// Values that parse with none of them leave nights to the explicit field.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nightsBetween derives a stay length from a date pair. Returns 0 when
// either date is missing/unparseable or the range is inverted.
func nightsBetween(checkIn, checkOut string) int {
	start, okIn := parseDate(checkIn)
	end, okOut := parseDate(checkOut)
	if !okIn || !okOut {
		return 0
	}
	nights := int(end.Sub(start).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

func normalizeHotel(item map[string]interface{}) types.HotelService {
	amount, currency := resolveItemPrice(item)
	name, _ := firstString(item, "hotelName", "name", "description")
	id, _ := firstString(item, "hotelId", "id", "serviceId")
	location, _ := firstString(item, "locationName", "location", "city", "destinationName")
	destination, _ := firstString(item, "destinationName", "destination", "locationName", "city")
	category, _ := firstString(item, "category", "categoryName", "stars")
	mealPlan, _ := firstString(item, "mealPlan", "board", "boardName")
	roomType, _ := firstString(item, "room.type", "roomType", "room")
	checkIn, _ := firstString(item, "checkInDate", "startDate", "checkIn")
	checkOut, _ := firstString(item, "checkOutDate", "endDate", "checkOut")

	nights, hasNights := firstInt(item, "nights", "numberOfNights")
	if !hasNights {
		nights = nightsBetween(checkIn, checkOut)
	}

	return types.HotelService{
		ID:          id,
		Name:        name,
		Location:    location,
		Destination: destination,
		Category:    category,
		MealPlan:    mealPlan,
		RoomType:    roomType,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Nights:      nights,
		Price:       types.Price{Amount: amount, Currency: currency},
		Images:      imageStrings(item["images"]),
	}
}

// transportLeg builds one leg from a prefix ("departure"/"arrival"). The
// result is nil when no leg field resolves, so arrival legs only appear when
// the source carries an arrival time or location.
func transportLeg(item map[string]interface{}, prefix string) *types.TransportLeg {
	location, _ := firstString(item, prefix+".location", prefix+"Location", prefix+"Airport", prefix+"City")
	date, _ := firstString(item, prefix+".date", prefix+"Date")
	legTime, _ := firstString(item, prefix+".time", prefix+"Time")
	if location == "" && date == "" && legTime == "" {
		return nil
	}
	return &types.TransportLeg{Location: location, Date: date, Time: legTime}
}

func normalizeTransport(item map[string]interface{}) types.TransportService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "serviceId")
	transportType, _ := firstString(item, "transportType", "type", "serviceType")
	company, _ := firstString(item, "company", "carrier", "airline", "operator")
	flightNumber, _ := firstString(item, "flightNumber", "transportNumber", "number")

	return types.TransportService{
		ID:           id,
		Type:         transportType,
		Company:      company,
		FlightNumber: flightNumber,
		Departure:    transportLeg(item, "departure"),
		Arrival:      transportLeg(item, "arrival"),
		Price:        types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeTicket(item map[string]interface{}) types.TicketService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "ticketId", "serviceId")
	name, _ := firstString(item, "name", "ticketName", "title", "description")
	location, _ := firstString(item, "locationName", "location", "city")
	date, _ := firstString(item, "date", "startDate", "visitDate")
	description, _ := firstString(item, "description", "remarks")

	return types.TicketService{
		ID:          id,
		Name:        name,
		Location:    location,
		Date:        date,
		Description: description,
		Price:       types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeTransfer(item map[string]interface{}) types.TransferService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "transferId", "serviceId")
	from, _ := firstString(item, "from", "origin", "pickupLocation", "fromName")
	to, _ := firstString(item, "to", "destination", "dropoffLocation", "toName")
	date, _ := firstString(item, "date", "startDate", "pickupDate")
	vehicle, _ := firstString(item, "vehicle", "vehicleType", "transferType")
	capacity, _ := firstInt(item, "capacity", "maxPassengers", "pax")

	return types.TransferService{
		ID:       id,
		From:     from,
		To:       to,
		Date:     date,
		Vehicle:  vehicle,
		Capacity: capacity,
		Price:    types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeCar(item map[string]interface{}) types.CarService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "carId", "serviceId")
	vendor, _ := firstString(item, "vendor", "company", "supplier")
	model, _ := firstString(item, "model", "carModel", "category", "name")
	pickupLocation, _ := firstString(item, "pickupLocation", "pickupPlace", "from")
	pickupDate, _ := firstString(item, "pickupDate", "startDate")
	dropoffDate, _ := firstString(item, "dropoffDate", "endDate", "returnDate")

	return types.CarService{
		ID:             id,
		Vendor:         vendor,
		Model:          model,
		PickupLocation: pickupLocation,
		PickupDate:     pickupDate,
		DropoffDate:    dropoffDate,
		Price:          types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeClosedTour(item map[string]interface{}) types.ClosedTourService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "tourId", "serviceId")
	name, _ := firstString(item, "name", "tourName", "title", "description")
	destination, _ := firstString(item, "destinationName", "destination", "locationName")
	startDate, _ := firstString(item, "startDate", "departureDate")
	endDate, _ := firstString(item, "endDate", "returnDate")

	return types.ClosedTourService{
		ID:          id,
		Name:        name,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Price:       types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeCruise(item map[string]interface{}) types.CruiseService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "cruiseId", "serviceId")
	name, _ := firstString(item, "name", "cruiseName", "title")
	ship, _ := firstString(item, "ship", "shipName", "vessel")
	cabin, _ := firstString(item, "cabin", "cabinType", "cabinName")
	startDate, _ := firstString(item, "startDate", "departureDate", "embarkation")
	endDate, _ := firstString(item, "endDate", "returnDate", "disembarkation")

	return types.CruiseService{
		ID:        id,
		Name:      name,
		Ship:      ship,
		Cabin:     cabin,
		StartDate: startDate,
		EndDate:   endDate,
		Price:     types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeInsurance(item map[string]interface{}) types.InsuranceService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "insuranceId", "serviceId")
	name, _ := firstString(item, "name", "insuranceName", "title", "description")
	policy, _ := firstString(item, "policy", "policyNumber", "policyType")

	return types.InsuranceService{
		ID:     id,
		Name:   name,
		Policy: policy,
		Price:  types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeManualService(item map[string]interface{}) types.ManualService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "serviceId")
	name, _ := firstString(item, "name", "title", "description")
	description, _ := firstString(item, "description", "text", "remarks")
	date, _ := firstString(item, "date", "startDate")

	return types.ManualService{
		ID:          id,
		Name:        name,
		Description: description,
		Date:        date,
		Price:       types.Price{Amount: amount, Currency: currency},
	}
}

func normalizeItemService(item map[string]interface{}) types.ItemService {
	amount, currency := resolveItemPrice(item)
	id, _ := firstString(item, "id", "itemId", "serviceId")
	name, _ := firstString(item, "name", "itemName", "title", "description")
	itemType, _ := firstString(item, "type", "itemType", "serviceType")

	return types.ItemService{
		ID:    id,
		Name:  name,
		Type:  itemType,
		Price: types.Price{Amount: amount, Currency: currency},
	}
}

// emptyServices returns a Services value with every slice allocated, so the
// container-presence invariant holds for all document shapes.
func emptyServices() types.Services {
	return types.Services{
		Hotels:         []types.HotelService{},
		Transports:     []types.TransportService{},
		Tickets:        []types.TicketService{},
		Transfers:      []types.TransferService{},
		Cars:           []types.CarService{},
		ClosedTours:    []types.ClosedTourService{},
		Cruises:        []types.CruiseService{},
		Insurances:     []types.InsuranceService{},
		ManualServices: []types.ManualService{},
		ItemServices:   []types.ItemService{},
	}
}

// extractServices walks every known per-service-type array of a composite
// booking. Arrays that are absent or hold the wrong shape contribute nothing.
func extractServices(doc map[string]interface{}) types.Services {
	services := emptyServices()

	for _, item := range sliceOfMaps(doc, "hotelservice") {
		services.Hotels = append(services.Hotels, normalizeHotel(item))
	}
	for _, item := range sliceOfMaps(doc, "transportservice") {
		services.Transports = append(services.Transports, normalizeTransport(item))
	}
	for _, item := range sliceOfMaps(doc, "ticketservice") {
		services.Tickets = append(services.Tickets, normalizeTicket(item))
	}
	for _, item := range sliceOfMaps(doc, "transferservice") {
		services.Transfers = append(services.Transfers, normalizeTransfer(item))
	}
	for _, item := range sliceOfMaps(doc, "carservice") {
		services.Cars = append(services.Cars, normalizeCar(item))
	}
	for _, item := range sliceOfMaps(doc, "closedtourservice") {
		services.ClosedTours = append(services.ClosedTours, normalizeClosedTour(item))
	}
	for _, item := range sliceOfMaps(doc, "cruiseservice") {
		services.Cruises = append(services.Cruises, normalizeCruise(item))
	}
	for _, item := range sliceOfMaps(doc, "insuranceservice") {
		services.Insurances = append(services.Insurances, normalizeInsurance(item))
	}
	for _, item := range sliceOfMaps(doc, "manualservice") {
		services.ManualServices = append(services.ManualServices, normalizeManualService(item))
	}
	for _, item := range sliceOfMaps(doc, "itemservice") {
		services.ItemServices = append(services.ItemServices, normalizeItemService(item))
	}

	return services
}
