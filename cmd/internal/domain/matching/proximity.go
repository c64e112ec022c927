package matching

import "rfqengine/cmd/internal/domain/entity"

const (
	// UnknownLocationPenalty sorts candidates with no known district last.
	UnknownLocationPenalty = 999

	// UnmappedPairPenalty is the distance between two districts the table does not relate.
	UnmappedPairPenalty = 10
)

type districtRow map[entity.District]int

// proximity is keyed client district first. It is read-only after init.
var proximity = map[entity.District]districtRow{
	"Hodan":       {"Hodan": 0, "Wadajir": 1, "Hamar Weyne": 2, "Dharkenley": 2, "Hamar Jajab": 3},
	"Wadajir":     {"Wadajir": 0, "Hodan": 1, "Hamar Weyne": 2, "Kaxda": 1, "Dharkenley": 2},
	"Hamar Weyne": {"Hamar Weyne": 0, "Hodan": 2, "Shangani": 1, "Hamar Jajab": 1, "Boondheere": 2},
	"Dharkenley":  {"Dharkenley": 0, "Hodan": 2, "Wadajir": 2, "Kaxda": 1, "Daynile": 2},
	"Kaxda":       {"Kaxda": 0, "Wadajir": 1, "Dharkenley": 1, "Daynile": 2, "Hodan": 3},
	"Shangani":    {"Shangani": 0, "Hamar Weyne": 1, "Boondheere": 1, "Hamar Jajab": 2},
	"Hamar Jajab": {"Hamar Jajab": 0, "Hamar Weyne": 1, "Shangani": 2, "Boondheere": 1},
	"Boondheere":  {"Boondheere": 0, "Shangani": 1, "Hamar Jajab": 1, "Hamar Weyne": 2},
	"Abdiaziiz":   {"Abdiaziiz": 0, "Kaxda": 2, "Waberi": 1, "Daynile": 2},
	"Waberi":      {"Waberi": 0, "Abdiaziiz": 1, "Wadajir": 2, "Kaxda": 2},
	"Daynile":     {"Daynile": 0, "Kaxda": 2, "Dharkenley": 2, "Hodan": 3},
	"Yaqshiid":    {"Yaqshiid": 0, "Daynile": 1, "Kaxda": 2},
	"Shibis":      {"Shibis": 0, "Hamar Weyne": 2, "Boondheere": 2},
	"Heliwa":      {"Heliwa": 0, "Daynile": 1, "Yaqshiid": 2},
	"Wardhiigley": {"Wardhiigley": 0, "Wadajir": 2, "Hodan": 2},
	"Kahda":       {"Kahda": 0, "Kaxda": 1, "Daynile": 2},
}

// Proximity scores how far a supplier district is from a client district,
// lower is closer. It never fails.
func Proximity(client, supplier entity.District) int {
	if client.IsZero() || supplier.IsZero() {
		return UnknownLocationPenalty
	}
	if client == supplier {
		return 0
	}

	if d, ok := proximity[client][supplier]; ok {
		return d
	}
	return UnmappedPairPenalty
}
