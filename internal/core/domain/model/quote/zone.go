package quote

// Zone classifies a route by how far a parcel travels.
type Zone int

const (
	UnknownZone Zone = iota
	Local
	Domestic
	International
)

func getZoneStrings() map[Zone]string {
	return map[Zone]string{
		UnknownZone:   "unknown",
		Local:         "local",
		Domestic:      "domestic",
		International: "international",
	}
}

func (z Zone) String() string {
	if str, ok := getZoneStrings()[z]; ok {
		return str
	}
	return "unknown"
}

// ZoneOf picks the zone between two endpoints: same country and postal prefix
// is local, same country is domestic, anything else international.
func ZoneOf(origin, destination Endpoint) Zone {
	switch {
	case origin.Country() != destination.Country():
		return International
	case origin.PostalPrefix() != "" && origin.PostalPrefix() == destination.PostalPrefix():
		return Local
	default:
		return Domestic
	}
}
