package roomtype

// catalog is the closed list of room-type labels offered by the capture-review
// workflow. Order matters: it drives the assignment menus in the CLI.
var catalog = []string{
	"Fassade",
	"Eingangsbereich",
	"Flur",
	"Wohnzimmer",
	"Esszimmer",
	"Küche",
	"Schlafzimmer",
	"Kinderzimmer",
	"Arbeitszimmer",
	"Badezimmer",
	"Gäste-WC",
	"Balkon",
	"Terrasse",
	"Garten",
	"Garage",
	"Keller",
	"Dachboden",
	"Treppenhaus",
	"Hauswirtschaftsraum",
	"Außenansicht",
}

var catalogTokens = func() map[string]string {
	m := make(map[string]string, len(catalog))
	for _, label := range catalog {
		m[Normalize(label)] = label
	}
	return m
}()

// Labels returns the catalog in display order.
func Labels() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// Known reports whether the label (or its normalized token) belongs to the
// catalog.
func Known(label string) bool {
	_, ok := catalogTokens[Normalize(label)]
	return ok
}

// LabelForToken resolves a normalized token back to its display label.
func LabelForToken(token string) (string, bool) {
	label, ok := catalogTokens[token]
	return label, ok
}
