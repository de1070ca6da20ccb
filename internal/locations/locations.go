package locations

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/kelvins/geocoder"
)

// ErrUnknownCity is returned when a city is neither in the static table nor
// resolvable through the geocoder.
var ErrUnknownCity = errors.New("unknown city")

// City describes a supported Indian observation location.
type City struct {
	Name     string  `json:"name"`
	State    string  `json:"state"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone"`

	// LocalityID is the Weather Union locality identifier, set only for the
	// metros covered by their station network.
	LocalityID string `json:"-"`
}

// DisplayName returns "City, State" with the city title-cased.
func (c City) DisplayName() string {
	return fmt.Sprintf("%s, %s", title(c.Name), c.State)
}

const istTimezone = "Asia/Kolkata"

// cities is the static table of supported locations: the major metros
// (with Weather Union locality IDs), popular dark-sky destinations, and a
// few state capitals.
var cities = map[string]City{
	"delhi":     {Name: "delhi", State: "Delhi", Lat: 28.6139, Lon: 77.2090, Timezone: istTimezone, LocalityID: "ZWL005764"},
	"mumbai":    {Name: "mumbai", State: "Maharashtra", Lat: 19.0760, Lon: 72.8777, Timezone: istTimezone, LocalityID: "ZWL001156"},
	"bangalore": {Name: "bangalore", State: "Karnataka", Lat: 12.9716, Lon: 77.5946, Timezone: istTimezone, LocalityID: "ZWL009586"},
	"kolkata":   {Name: "kolkata", State: "West Bengal", Lat: 22.5726, Lon: 88.3639, Timezone: istTimezone, LocalityID: "ZWL001113"},
	"chennai":   {Name: "chennai", State: "Tamil Nadu", Lat: 13.0827, Lon: 80.2707, Timezone: istTimezone, LocalityID: "ZWL006475"},
	"hyderabad": {Name: "hyderabad", State: "Telangana", Lat: 17.3850, Lon: 78.4867, Timezone: istTimezone, LocalityID: "ZWL002203"},
	"pune":      {Name: "pune", State: "Maharashtra", Lat: 18.5204, Lon: 73.8567, Timezone: istTimezone, LocalityID: "ZWL003552"},
	"ahmedabad": {Name: "ahmedabad", State: "Gujarat", Lat: 23.0225, Lon: 72.5714, Timezone: istTimezone, LocalityID: "ZWL008752"},

	"jaipur":     {Name: "jaipur", State: "Rajasthan", Lat: 26.9124, Lon: 75.7873, Timezone: istTimezone},
	"udaipur":    {Name: "udaipur", State: "Rajasthan", Lat: 24.5854, Lon: 73.7125, Timezone: istTimezone},
	"manali":     {Name: "manali", State: "Himachal Pradesh", Lat: 32.2432, Lon: 77.1892, Timezone: istTimezone},
	"rishikesh":  {Name: "rishikesh", State: "Uttarakhand", Lat: 30.0869, Lon: 78.2676, Timezone: istTimezone},
	"ooty":       {Name: "ooty", State: "Tamil Nadu", Lat: 11.4064, Lon: 76.6932, Timezone: istTimezone},
	"goa":        {Name: "goa", State: "Goa", Lat: 15.2993, Lon: 74.1240, Timezone: istTimezone},
	"darjeeling": {Name: "darjeeling", State: "West Bengal", Lat: 27.0410, Lon: 88.2663, Timezone: istTimezone},
	"shimla":     {Name: "shimla", State: "Himachal Pradesh", Lat: 31.1048, Lon: 77.1734, Timezone: istTimezone},
	"coorg":      {Name: "coorg", State: "Karnataka", Lat: 12.3375, Lon: 75.8069, Timezone: istTimezone},
	"mount_abu":  {Name: "mount_abu", State: "Rajasthan", Lat: 24.5925, Lon: 72.7156, Timezone: istTimezone},

	"lucknow":            {Name: "lucknow", State: "Uttar Pradesh", Lat: 26.8467, Lon: 80.9462, Timezone: istTimezone},
	"bhopal":             {Name: "bhopal", State: "Madhya Pradesh", Lat: 23.2599, Lon: 77.4126, Timezone: istTimezone},
	"chandigarh":         {Name: "chandigarh", State: "Chandigarh", Lat: 30.7333, Lon: 76.7794, Timezone: istTimezone},
	"thiruvananthapuram": {Name: "thiruvananthapuram", State: "Kerala", Lat: 8.5241, Lon: 76.9366, Timezone: istTimezone},
}

// Resolver answers city lookups from the static table, optionally falling
// back to geocoding for cities the table does not know.
type Resolver struct {
	geocoderKey string
}

// NewResolver creates a Resolver. geocoderKey may be empty, in which case
// unknown cities are rejected instead of geocoded.
func NewResolver(geocoderKey string) *Resolver {
	return &Resolver{geocoderKey: geocoderKey}
}

// Lookup resolves a city by name. Table hits carry state, timezone and
// Weather Union locality metadata; geocoded results only coordinates.
func (r *Resolver) Lookup(name string) (City, error) {
	if c, ok := Find(name); ok {
		return c, nil
	}

	if r.geocoderKey == "" {
		return City{}, fmt.Errorf("%w: %s", ErrUnknownCity, name)
	}

	geocoder.ApiKey = r.geocoderKey
	loc, err := geocoder.Geocoding(geocoder.Address{
		City:    name,
		Country: "India",
	})
	if err != nil {
		log.Printf("ERROR: geocoder lookup failed for %s: %v", name, err)
		return City{}, fmt.Errorf("%w: %s", ErrUnknownCity, name)
	}

	return City{
		Name:     Key(name),
		State:    "India",
		Lat:      loc.Latitude,
		Lon:      loc.Longitude,
		Timezone: istTimezone,
	}, nil
}

// Find looks a city up in the static table only.
func Find(name string) (City, bool) {
	c, ok := cities[Key(name)]
	return c, ok
}

// Key canonicalizes a user-supplied city name into a table key.
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Names returns all supported city names, sorted.
func Names() []string {
	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Nearby holds a city and its distance from a query point.
type Nearby struct {
	City       City    `json:"city"`
	DistanceKm float64 `json:"distanceKm"`
}

// FindNearby returns all table cities within radiusKm of the given point,
// ordered nearest first.
func FindNearby(lat, lon, radiusKm float64) []Nearby {
	var result []Nearby
	for _, c := range cities {
		d := haversineKm(lat, lon, c.Lat, c.Lon)
		if d <= radiusKm {
			result = append(result, Nearby{City: c, DistanceKm: d})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})
	return result
}

const earthRadiusKm = 6371

// haversineKm computes the great-circle distance between two points.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// title uppercases the first letter of each underscore- or space-separated word.
func title(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
