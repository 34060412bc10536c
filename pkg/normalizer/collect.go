package normalizer

import (
	"strings"

	"github.com/rondreis/travel-office-backend/types"
)

// Image candidates scanned at the top level and inside every known nested
// service array. A candidate may hold a bare URL string, an object exposing
// url/src/href, or an array of either.
var imageFieldCandidates = []string{
	"images",
	"gallery",
	"photos",
	"imageUrls",
	"image",
	"mainImage",
	"thumbnailUrl",
}

// Nested arrays whose items are also scanned for images and destinations.
var imageSourceArrays = []string{
	"hotelservice",
	"hotels",
	"destinations",
	"tripSpots",
}

// collectImages gathers every image URL discoverable in the document,
// flattened into one list deduplicated by exact string equality. First-seen
// order is preserved.
func collectImages(doc map[string]interface{}) []string {
	images := make([]string, 0)
	seen := make(map[string]struct{})

	appendFrom := func(obj map[string]interface{}) {
		for _, field := range imageFieldCandidates {
			for _, url := range imageStrings(obj[field]) {
				if _, dup := seen[url]; dup {
					continue
				}
				seen[url] = struct{}{}
				images = append(images, url)
			}
		}
	}

	appendFrom(doc)
	for _, field := range imageSourceArrays {
		for _, item := range sliceOfMaps(doc, field) {
			appendFrom(item)
		}
	}
	return images
}

// imageStrings flattens one image field value into URL strings. Shapes that
// match nothing known are skipped, never an error.
func imageStrings(v interface{}) []string {
	switch val := v.(type) {
	case string:
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return []string{trimmed}
		}
	case map[string]interface{}:
		if url, ok := firstString(val, "url", "src", "href"); ok {
			return []string{url}
		}
	case []interface{}:
		var out []string
		for _, item := range val {
			out = append(out, imageStrings(item)...)
		}
		return out
	}
	return nil
}

// Destination source arrays scanned in order. Hotel stays and itinerary days
// contribute afterwards so their nights/dates enrich entries found here.
var destinationSourceArrays = []string{
	"destinations",
	"cities",
	"locations",
	"stops",
}

// destinationCollector accumulates destinations deduplicated by code when
// present, otherwise by case-insensitive display name.
type destinationCollector struct {
	ordered []*types.Destination
	byKey   map[string]*types.Destination
}

func newDestinationCollector() *destinationCollector {
	return &destinationCollector{byKey: make(map[string]*types.Destination)}
}

func (c *destinationCollector) key(code, name string) string {
	if code != "" {
		return "code:" + strings.ToLower(code)
	}
	return "name:" + strings.ToLower(name)
}

// add records one destination sighting. Nights accumulate across sightings
// of the same destination; empty fields are filled by later sightings.
func (c *destinationCollector) add(code, name, country string, nights int) {
	if name == "" && code == "" {
		return
	}
	k := c.key(code, name)
	if existing, ok := c.byKey[k]; ok {
		existing.Nights += nights
		if existing.Country == "" {
			existing.Country = country
		}
		if existing.Code == "" {
			existing.Code = code
		}
		return
	}
	dest := &types.Destination{Code: code, Name: name, Country: country, Nights: nights}
	c.byKey[k] = dest
	c.ordered = append(c.ordered, dest)
}

func (c *destinationCollector) result() []types.Destination {
	out := make([]types.Destination, 0, len(c.ordered))
	for _, d := range c.ordered {
		out = append(out, *d)
	}
	return out
}

// collectDestinations gathers every place the document mentions: dedicated
// destination arrays, hotel stay locations (carrying their nights), and
// itinerary day accommodations.
func collectDestinations(doc map[string]interface{}, hotels []types.HotelService) []types.Destination {
	c := newDestinationCollector()

	for _, field := range destinationSourceArrays {
		for _, entry := range asSlice(lookupPath(doc, field)) {
			switch e := entry.(type) {
			case string:
				if name := strings.TrimSpace(e); name != "" {
					c.add("", name, "", 0)
				}
			case map[string]interface{}:
				name, _ := firstString(e, "name", "city", "destination", "destinationName")
				code, _ := firstString(e, "code", "destinationCode")
				country, _ := firstString(e, "country", "countryName")
				c.add(code, name, country, 0)
			}
		}
	}

	for _, hotel := range hotels {
		name := hotel.Destination
		if name == "" {
			name = hotel.Location
		}
		c.add("", name, "", hotel.Nights)
	}

	for _, day := range sliceOfMaps(doc, "itinerary") {
		if name, ok := firstString(day, "destination", "city", "location"); ok {
			c.add("", name, "", 0)
		}
	}

	return c.result()
}

// collectFacilities gathers facility records from the top level and from
// every hotel stay. Entries with a code are deduplicated by it; code-less
// entries are all kept, matching the source behavior.
func collectFacilities(doc map[string]interface{}) []types.Facility {
	out := make([]types.Facility, 0)
	seenCodes := make(map[string]struct{})

	appendFrom := func(obj map[string]interface{}) {
		for _, raw := range asSlice(obj["facilities"]) {
			m := asMap(raw)
			if m == nil {
				continue
			}
			code, _ := firstString(m, "code", "facilityCode")
			name, _ := firstString(m, "name", "description", "title")
			desc, _ := firstString(m, "description", "text")
			if code != "" {
				if _, dup := seenCodes[code]; dup {
					continue
				}
				seenCodes[code] = struct{}{}
			}
			if code == "" && name == "" {
				continue
			}
			out = append(out, types.Facility{Code: code, Name: name, Description: desc})
		}
	}

	appendFrom(doc)
	for _, hotel := range sliceOfMaps(doc, "hotelservice") {
		appendFrom(hotel)
	}
	return out
}

// collectVouchers gathers voucher references, deduplicated by code where one
// is present.
func collectVouchers(doc map[string]interface{}) []types.Voucher {
	out := make([]types.Voucher, 0)
	seenCodes := make(map[string]struct{})

	for _, raw := range asSlice(lookupPath(doc, "vouchers")) {
		m := asMap(raw)
		if m == nil {
			continue
		}
		code, _ := firstString(m, "code", "voucherCode", "reference")
		if code != "" {
			if _, dup := seenCodes[code]; dup {
				continue
			}
			seenCodes[code] = struct{}{}
		}
		voucherType, _ := firstString(m, "type", "serviceType")
		url, _ := firstString(m, "url", "link", "href")
		if code == "" && url == "" {
			continue
		}
		out = append(out, types.Voucher{Code: code, Type: voucherType, URL: url})
	}
	return out
}
