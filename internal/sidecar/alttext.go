package sidecar

import (
	"fmt"
	"strings"
)

// orientationQualifiers maps an orientation to its German caption
// qualifier.
var orientationQualifiers = map[Orientation]string{
	OrientationFront: "Vorderansicht",
	OrientationSide:  "Seitenansicht",
	OrientationBack:  "Rückansicht",
}

// GenerateGermanAltText composes the descriptive caption for one
// photograph. The orientation qualifier is appended in parentheses and
// omitted entirely when no orientation was recorded.
func GenerateGermanAltText(roomLabel string, orientation Orientation) string {
	caption := fmt.Sprintf("Immobilienfoto: %s", strings.TrimSpace(roomLabel))
	if qualifier, ok := orientationQualifiers[orientation]; ok {
		caption += fmt.Sprintf(" (%s)", qualifier)
	}
	return caption
}

// AltTextEntry pairs a delivered filename with its caption.
type AltTextEntry struct {
	Filename string
	AltText  string
}

// GenerateAltTextFile renders the bulk caption file: one tab-separated
// line per entry, newline-joined.
func GenerateAltTextFile(entries []AltTextEntry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.Filename+"\t"+entry.AltText)
	}
	return strings.Join(lines, "\n") + "\n"
}
