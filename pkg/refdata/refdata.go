// Package refdata holds the static reference tables the resolution engine
// depends on: license-compact states, major-city lookups, city coordinates and
// the forecasting model's specialty vocabulary. The tables are immutable after
// Default() returns; resolvers receive them explicitly instead of reaching for
// package-level state.
package refdata

import "strings"

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Tables bundles every reference table used by the engine
type Tables struct {
	compactStates   map[string]bool
	majorCityStates map[string]string
	cityCoordinates map[string]Coordinates

	locumAliases    map[string]string
	knownPrefixes   []string
	locumPrefixes   []string
	standaloneLocum map[string]bool
	topStates       []string
	sparseSpecialty map[string]bool
}

// Default returns the built-in reference tables
func Default() *Tables {
	return &Tables{
		compactStates:   toSet(compactStates),
		majorCityStates: majorCityStates,
		cityCoordinates: cityCoordinates,
		locumAliases:    locumSpecialtyAliases,
		knownPrefixes:   knownPrefixes,
		locumPrefixes:   locumPrefixes,
		standaloneLocum: toSet(standaloneLocumSpecialties),
		topStates:       topForecastStates,
		sparseSpecialty: toSet(sparseForecastSpecialties),
	}
}

// IsCompactState reports whether a state participates in the nurse license compact
func (t *Tables) IsCompactState(state string) bool {
	return t.compactStates[strings.ToUpper(strings.TrimSpace(state))]
}

// StateForMajorCity resolves a well-known city name to its state code
func (t *Tables) StateForMajorCity(city string) (string, bool) {
	state, ok := t.majorCityStates[strings.ToLower(strings.TrimSpace(city))]
	return state, ok
}

// CityCoordinates returns coordinates for a "city, st" pair. When the state is
// empty the first city-name match wins.
func (t *Tables) CityCoordinates(city, state string) (Coordinates, bool) {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return Coordinates{}, false
	}
	if state != "" {
		key := city + ", " + strings.ToLower(strings.TrimSpace(state))
		coords, ok := t.cityCoordinates[key]
		return coords, ok
	}
	for key, coords := range t.cityCoordinates {
		if strings.HasPrefix(key, city+",") {
			return coords, true
		}
	}
	return Coordinates{}, false
}

// LocumAlias resolves a user-facing specialty to the forecasting vocabulary
// label for locum/tenens roles
func (t *Tables) LocumAlias(specialty string) (string, bool) {
	mapped, ok := t.locumAliases[specialty]
	return mapped, ok
}

// HasKnownPrefix reports whether a specialty already carries a recognized
// vocabulary prefix
func (t *Tables) HasKnownPrefix(specialty string) bool {
	for _, prefix := range t.knownPrefixes {
		if strings.HasPrefix(specialty, prefix) {
			return true
		}
	}
	return false
}

// IsLocumSpecialty reports whether a specialty is a locum/tenens label, either
// by prefix or by exact standalone match
func (t *Tables) IsLocumSpecialty(specialty string) bool {
	for _, prefix := range t.locumPrefixes {
		if strings.HasPrefix(specialty, prefix) {
			return true
		}
	}
	return t.standaloneLocum[specialty]
}

// TopForecastStates returns the states with the densest forecast history,
// excluding the given state
func (t *Tables) TopForecastStates(exclude string) []string {
	exclude = strings.ToUpper(strings.TrimSpace(exclude))
	states := make([]string, 0, len(t.topStates))
	for _, s := range t.topStates {
		if s != exclude {
			states = append(states, s)
		}
	}
	return states
}

// IsSparseForecastSpecialty reports whether a specialty label is known to
// have thin forecast history in most states. Matches by containment so both
// the bare credential and its prefixed vocabulary forms qualify.
func (t *Tables) IsSparseForecastSpecialty(specialty string) bool {
	upper := strings.ToUpper(specialty)
	for sparse := range t.sparseSpecialty {
		if strings.Contains(upper, sparse) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Nurse License Compact member states
var compactStates = []string{
	"AL", "AZ", "AR", "CO", "CT", "DE", "FL", "GA", "GU", "ID", "IN", "IA", "KS", "KY",
	"LA", "ME", "MD", "MA", "MS", "MO", "MT", "NE", "NH", "NJ", "NM", "NC", "ND", "OH",
	"OK", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "VI", "WA", "WV", "WI", "WY",
}

// Major cities whose state can be inferred without clarification
var majorCityStates = map[string]string{
	"new york city": "NY", "nyc": "NY", "manhattan": "NY",
	"los angeles": "CA", "la": "CA", "san francisco": "CA",
	"chicago": "IL", "houston": "TX", "phoenix": "AZ",
	"philadelphia": "PA", "boston": "MA", "atlanta": "GA",
	"seattle": "WA", "denver": "CO", "miami": "FL",
	"dallas": "TX", "detroit": "MI", "las vegas": "NV",
}

// User-facing aliases translated to the forecasting model's training labels.
// This applies only when the profession is Locum/Tenens.
var locumSpecialtyAliases = map[string]string{
	"CRNA":                        "Certified Nurse Anesthetist (CRNA)",
	"Certified Nurse Anesthetist": "Certified Nurse Anesthetist (CRNA)",

	"NP":                        "APRN - NP",
	"FNP":                       "APRN - FNP",
	"Family Nurse Practitioner": "APRN - Family Nurse Practitioner",
	"PMHNP":                     "APRN - PMHNP",
	"AGACNP":                    "APRN - NP Adult Gerontology",

	"PA":                  "PA",
	"Physician Assistant": "PA",

	"Hospitalist":        "MD/DO - Hospitalist",
	"Emergency Medicine": "MD/DO - Emergency Medicine",
	"Family Medicine":    "MD/DO - Family Medicine",
	"Internal Medicine":  "MD/DO - Internal Medicine",
	"Anesthesiologist":   "MD/DO - Anesthesiologist",
	"Cardiologist":       "MD/DO - Cardiologist",
	"Psychiatrist":       "MD/DO - Psychiatrist",

	"Pharmacist":   "Pharmacist",
	"Dentist":      "Dentistry - Dentist",
	"Psychologist": "Psychologist",
}

// Prefixes the forecasting vocabulary already recognizes; specialties carrying
// one never get the nursing prefix
var knownPrefixes = []string{
	"RN - ", "APRN - ", "MD/DO - ", "PA - ", "CRNA - ",
	"Dentistry - ", "Behavioral Health - ", "Clinical ",
}

// Locum/tenens label prefixes, superset of knownPrefixes minus "RN - "
var locumPrefixes = []string{
	"APRN - ", "MD/DO - ", "PA - ", "CRNA - ", "Certified Nurse Anesthetist",
	"Dentistry - ", "Behavioral Health - ", "Clinical ", "Psychologist",
	"Pharmacist", "Physicist", "Optometrist", "Exercise Physiologist",
}

// Standalone non-nursing labels that must never receive the "RN - " prefix
var standaloneLocumSpecialties = []string{
	"PA", "CRNA", "Oncology", "Orthopedic", "Cardiology",
	"General Practice", "Psychologist Assistant", "School Psychologist",
}

// States with the densest forecast history, tried in order by the fallback cascade
var topForecastStates = []string{"CA", "TX", "FL", "NY", "PA"}

// Specialties whose state-level forecast history is thin almost everywhere
var sparseForecastSpecialties = []string{"CRNA"}

// Coordinates for major US cities, keyed "city, st"
var cityCoordinates = map[string]Coordinates{
	// Ohio
	"cincinnati, oh": {39.1031, -84.5120},
	"cleveland, oh":  {41.4993, -81.6944},
	"columbus, oh":   {39.9612, -82.9988},
	"toledo, oh":     {41.6528, -83.5379},
	"akron, oh":      {41.0814, -81.5190},
	"dayton, oh":     {39.7589, -84.1916},

	// New York
	"new york, ny":  {40.7128, -74.0060},
	"nyc, ny":       {40.7128, -74.0060},
	"buffalo, ny":   {42.8864, -78.8784},
	"rochester, ny": {43.1566, -77.6088},
	"syracuse, ny":  {43.0481, -76.1474},
	"albany, ny":    {42.6526, -73.7562},
	"yonkers, ny":   {40.9312, -73.8987},

	// California
	"los angeles, ca":   {34.0522, -118.2437},
	"san francisco, ca": {37.7749, -122.4194},
	"san diego, ca":     {32.7157, -117.1611},
	"sacramento, ca":    {38.5816, -121.4944},
	"san jose, ca":      {37.3382, -121.8863},
	"fresno, ca":        {36.7378, -119.7871},
	"oakland, ca":       {37.8044, -122.2712},

	// Texas
	"houston, tx":     {29.7604, -95.3698},
	"dallas, tx":      {32.7767, -96.7970},
	"austin, tx":      {30.2672, -97.7431},
	"san antonio, tx": {29.4241, -98.4936},
	"fort worth, tx":  {32.7555, -97.3308},
	"el paso, tx":     {31.7619, -106.4850},

	// Florida
	"miami, fl":           {25.7617, -80.1918},
	"orlando, fl":         {28.5383, -81.3792},
	"tampa, fl":           {27.9506, -82.4572},
	"jacksonville, fl":    {30.3322, -81.6557},
	"fort lauderdale, fl": {26.1224, -80.1373},
	"tallahassee, fl":     {30.4383, -84.2807},

	// Illinois
	"chicago, il":     {41.8781, -87.6298},
	"springfield, il": {39.7817, -89.6501},
	"peoria, il":      {40.6936, -89.5890},
	"rockford, il":    {42.2711, -89.0940},

	// Pennsylvania
	"philadelphia, pa": {39.9526, -75.1652},
	"pittsburgh, pa":   {40.4406, -79.9959},
	"harrisburg, pa":   {40.2732, -76.8867},
	"allentown, pa":    {40.6084, -75.4902},

	// Arizona
	"phoenix, az":    {33.4484, -112.0740},
	"tucson, az":     {32.2226, -110.9747},
	"mesa, az":       {33.4152, -111.8315},
	"scottsdale, az": {33.4942, -111.9261},

	// Michigan
	"detroit, mi":      {42.3314, -83.0458},
	"grand rapids, mi": {42.9634, -85.6681},
	"lansing, mi":      {42.7325, -84.5555},

	// Massachusetts
	"boston, ma":    {42.3601, -71.0589},
	"worcester, ma": {42.2626, -71.8023},
	"cambridge, ma": {42.3736, -71.1097},

	// Washington
	"seattle, wa": {47.6062, -122.3321},
	"spokane, wa": {47.6588, -117.4260},
	"tacoma, wa":  {47.2529, -122.4443},

	// Georgia
	"atlanta, ga":  {33.7490, -84.3880},
	"savannah, ga": {32.0809, -81.0912},
	"augusta, ga":  {33.4735, -82.0105},

	// North Carolina
	"charlotte, nc":  {35.2271, -80.8431},
	"raleigh, nc":    {35.7796, -78.6382},
	"greensboro, nc": {36.0726, -79.7920},

	// Tennessee
	"nashville, tn": {36.1627, -86.7816},
	"memphis, tn":   {35.1495, -90.0490},
	"knoxville, tn": {35.9606, -83.9207},

	// Missouri
	"kansas city, mo": {39.0997, -94.5786},
	"st louis, mo":    {38.6270, -90.1994},
	"st. louis, mo":   {38.6270, -90.1994},
	"springfield, mo": {37.2090, -93.2923},

	// Wisconsin
	"milwaukee, wi": {43.0389, -87.9065},
	"madison, wi":   {43.0731, -89.4012},

	// Colorado
	"denver, co":           {39.7392, -104.9903},
	"colorado springs, co": {38.8339, -104.8214},
	"aurora, co":           {39.7294, -104.8319},

	// Nevada
	"las vegas, nv": {36.1699, -115.1398},
	"reno, nv":      {39.5296, -119.8138},

	// Oregon
	"portland, or": {45.5152, -122.6784},
	"salem, or":    {44.9429, -123.0351},
	"eugene, or":   {44.0521, -123.0868},

	// Louisiana
	"new orleans, la": {29.9511, -90.0715},
	"baton rouge, la": {30.4515, -91.1871},

	// Indiana
	"indianapolis, in": {39.7684, -86.1581},
	"fort wayne, in":   {41.0793, -85.1394},

	// Virginia
	"virginia beach, va": {36.8529, -75.9780},
	"richmond, va":       {37.5407, -77.4360},

	// Minnesota
	"minneapolis, mn": {44.9778, -93.2650},
	"st paul, mn":     {44.9537, -93.0900},
	"st. paul, mn":    {44.9537, -93.0900},

	// Maryland
	"baltimore, md": {39.2904, -76.6122},

	// Connecticut
	"hartford, ct": {41.7658, -72.6734},

	// Alabama
	"birmingham, al": {33.5186, -86.8104},
	"montgomery, al": {32.3668, -86.3000},

	// South Carolina
	"charleston, sc": {32.7765, -79.9311},
	"columbia, sc":   {34.0007, -81.0348},

	// Kentucky
	"louisville, ky": {38.2527, -85.7585},
	"lexington, ky":  {38.0406, -84.5037},
}
