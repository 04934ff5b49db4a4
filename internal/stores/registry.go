// Package stores holds the static registry of physical panes.gr stores.
// The registry is fixed configuration: immutable after startup and safe
// for unsynchronized concurrent reads.
package stores

// Hours describes opening hours per day type.
type Hours struct {
	Weekdays string `json:"weekdays"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
}

// Store is one physical pickup location.
type Store struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	MapLink      string  `json:"map_link"`
	Hours        Hours   `json:"hours"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	DriveThrough bool    `json:"drive_through"`
	Active       bool    `json:"active"`
}

// DefaultStoreID is assigned to customers before they pick a store.
const DefaultStoreID = "cholargos"

var registry = []Store{
	{
		ID:      "cholargos",
		Name:    "PANES.GR Χολαργός",
		Address: "Λεωφ. Μεσογείων 235, Χολαργός 155 61",
		Lat:     38.0047,
		Lng:     23.7972,
		MapLink: "https://maps.google.com/?q=38.0047,23.7972",
		Hours: Hours{
			Weekdays: "09:00–21:00",
			Saturday: "09:00–18:00",
			Sunday:   "Κλειστά",
		},
		Phone:        "210 680 0549",
		Email:        "cholargos@panes.gr",
		DriveThrough: true,
		Active:       true,
	},
	{
		ID:      "peristeri",
		Name:    "PANES.GR Περιστέρι",
		Address: "Εθνάρχου Μακαρίου 15, Περιστέρι 121 31",
		Lat:     38.0156,
		Lng:     23.6919,
		MapLink: "https://maps.google.com/?q=38.0156,23.6919",
		Hours: Hours{
			Weekdays: "09:00–20:00",
			Saturday: "09:00–16:00",
			Sunday:   "Κλειστά",
		},
		Phone:        "210 571 2230",
		Email:        "peristeri@panes.gr",
		DriveThrough: false,
		Active:       true,
	},
	{
		ID:      "glyfada",
		Name:    "PANES.GR Γλυφάδα",
		Address: "Γούναρη 112, Γλυφάδα 166 74",
		Lat:     37.8747,
		Lng:     23.7526,
		MapLink: "https://maps.google.com/?q=37.8747,23.7526",
		Hours: Hours{
			Weekdays: "09:00–21:00",
			Saturday: "09:00–18:00",
			Sunday:   "Κλειστά",
		},
		Phone:        "210 894 1175",
		Email:        "glyfada@panes.gr",
		DriveThrough: false,
		Active:       true,
	},
}

// All returns the active stores in display order.
func All() []Store {
	out := make([]Store, 0, len(registry))
	for _, s := range registry {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

// ByID looks a store up by its identifier.
func ByID(id string) (Store, bool) {
	for _, s := range registry {
		if s.ID == id {
			return s, true
		}
	}
	return Store{}, false
}

// Default returns the store assigned to new customers.
func Default() Store {
	s, _ := ByID(DefaultStoreID)
	return s
}
