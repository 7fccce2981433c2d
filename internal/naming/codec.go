package naming

import (
	"fmt"
	"strconv"
)

// GenerateFinalFilename renders the final-image grammar for the components.
// It fails hard on structurally invalid input; see the package comment.
func GenerateFinalFilename(c FinalComponents) (string, error) {
	if err := c.validate(true); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_v%d.%s", c.BaseName(), c.Version, FinalExtension), nil
}

// GenerateRawFrameFilename renders the raw bracket-frame grammar for the
// components. Version is carried but never encoded.
func GenerateRawFrameFilename(c RawFrameComponents) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_g%0*d_e%s.%s", c.BaseName(), stackWidth, c.StackNumber, renderEV(c.EV), c.Extension), nil
}

// ParseFinalFilename decodes a final-image filename. The second return value
// reports whether the string matched the grammar; a non-match is not an
// error.
func ParseFinalFilename(name string) (FinalComponents, bool) {
	captures, ok := namedCaptures(finalPattern, name)
	if !ok {
		return FinalComponents{}, false
	}
	base, ok := decodeBase(captures)
	if !ok {
		return FinalComponents{}, false
	}
	version, err := strconv.Atoi(captures["version"])
	if err != nil || version < 1 {
		return FinalComponents{}, false
	}
	base.Version = version
	return base, true
}

// ParseRawFrameFilename decodes a raw bracket-frame filename. Version is not
// encoded in the raw grammar and is left zero.
func ParseRawFrameFilename(name string) (RawFrameComponents, bool) {
	captures, ok := namedCaptures(rawPattern, name)
	if !ok {
		return RawFrameComponents{}, false
	}
	base, ok := decodeBase(captures)
	if !ok {
		return RawFrameComponents{}, false
	}
	stack, err := strconv.Atoi(captures["stack"])
	if err != nil || stack < 1 {
		return RawFrameComponents{}, false
	}
	ev, err := strconv.Atoi(captures["ev"])
	if err != nil {
		return RawFrameComponents{}, false
	}
	return RawFrameComponents{
		FinalComponents: base,
		StackNumber:     stack,
		EV:              ev,
		Extension:       captures["ext"],
	}, true
}

// ExtractBaseName tries both parsers and, on a match, re-renders the shared
// subject prefix independent of version or bracket suffix. It is used to
// correlate a merged output with the raw frames that produced it.
func ExtractBaseName(name string) (string, bool) {
	if c, ok := ParseFinalFilename(name); ok {
		return c.BaseName(), true
	}
	if c, ok := ParseRawFrameFilename(name); ok {
		return c.BaseName(), true
	}
	return "", false
}

func decodeBase(captures map[string]string) (FinalComponents, bool) {
	date := captures["date"]
	if !validDate(date) {
		return FinalComponents{}, false
	}
	index, err := strconv.Atoi(captures["index"])
	if err != nil || index < 1 {
		return FinalComponents{}, false
	}
	return FinalComponents{
		Date:      date,
		ShootCode: captures["code"],
		Room:      captures["room"],
		Index:     index,
	}, true
}
