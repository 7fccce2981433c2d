package naming

import (
	"fmt"

	"shootdesk/internal/roomtype"
	"shootdesk/internal/services"
)

// FinalComponents describes one delivered, merged photograph.
//
// Room may hold either a display label ("Gäste-WC") or an already-normalized
// token ("gaeste-wc"); it is normalized on render. Parsed components always
// carry the token, since the display label is not recoverable from a
// filename.
type FinalComponents struct {
	Date      string // calendar day, YYYY-MM-DD
	ShootCode string
	Room      string
	Index     int
	Version   int
}

// RawFrameComponents describes one exposure belonging to a bracket group.
// Version is carried for bookkeeping but not encoded in the raw grammar, so
// it is neither validated nor recovered by the parser.
type RawFrameComponents struct {
	FinalComponents
	StackNumber int
	EV          int
	Extension   string
}

// RoomToken returns the normalized room token for the components.
func (c FinalComponents) RoomToken() string {
	return roomtype.Normalize(c.Room)
}

// BaseName renders the shared subject prefix (date-shootCode_roomToken_index)
// that identifies one subject independent of version or bracket suffix.
func (c FinalComponents) BaseName() string {
	return renderBase(c.Date, c.ShootCode, c.RoomToken(), c.Index)
}

func (c FinalComponents) validate(requireVersion bool) error {
	// Validate the exact value: BaseName renders c.Date verbatim, so padded
	// or decorated dates would produce unparseable filenames.
	if !validDate(c.Date) {
		return invalidComponents(fmt.Sprintf("date %q is not a valid YYYY-MM-DD day", c.Date))
	}
	if !validShootCode(c.ShootCode) {
		return invalidComponents(fmt.Sprintf("shoot code %q must be %d uppercase alphanumerics", c.ShootCode, ShootCodeLength))
	}
	if c.RoomToken() == "" {
		return invalidComponents(fmt.Sprintf("room %q normalizes to an empty token", c.Room))
	}
	if c.Index < 1 || c.Index > maxEncodable {
		return invalidComponents(fmt.Sprintf("subject index %d must be between 1 and %d", c.Index, maxEncodable))
	}
	if requireVersion && c.Version < 1 {
		return invalidComponents(fmt.Sprintf("version %d must be positive", c.Version))
	}
	return nil
}

func (c RawFrameComponents) validate() error {
	if err := c.FinalComponents.validate(false); err != nil {
		return err
	}
	if c.StackNumber < 1 || c.StackNumber > maxEncodable {
		return invalidComponents(fmt.Sprintf("stack number %d must be between 1 and %d", c.StackNumber, maxEncodable))
	}
	if !extensionPattern.MatchString(c.Extension) {
		return invalidComponents(fmt.Sprintf("extension %q must be lowercase alphanumeric", c.Extension))
	}
	return nil
}

// invalidComponents tags structurally invalid generate inputs. Callers treat
// this as a pipeline bug, not a user-facing parse failure.
func invalidComponents(message string) error {
	return services.Wrap(services.ErrValidation, "naming", "generate filename", message, nil)
}
