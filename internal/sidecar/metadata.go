package sidecar

import (
	"encoding/json"
	"fmt"
	"time"

	"shootdesk/internal/naming"
)

// Orientation describes which side of the subject the photograph shows.
type Orientation string

const (
	OrientationFront Orientation = "front"
	OrientationSide  Orientation = "side"
	OrientationBack  Orientation = "back"
)

// Known reports whether the orientation is one of the supported values.
func (o Orientation) Known() bool {
	switch o {
	case OrientationFront, OrientationSide, OrientationBack:
		return true
	}
	return false
}

// ObjectMetadata is the sidecar record delivered alongside one merged
// photograph. Identity fields are required; descriptive fields are
// optional and omitted from the serialized form when absent.
type ObjectMetadata struct {
	JobID           string   `json:"jobId"`
	Date            string   `json:"date"`
	ShootCode       string   `json:"shootCode"`
	RoomType        string   `json:"roomType"`
	MergedFilename  string   `json:"mergedFilename"`
	Version         int      `json:"version"`
	SourceFilenames []string `json:"sourceFilenames"`

	Orientation        Orientation `json:"orientation,omitempty"`
	Lens               string      `json:"lens,omitempty"`
	EVValue            *int        `json:"evValue,omitempty"`
	WhiteBalanceMode   string      `json:"whiteBalanceMode,omitempty"`
	WhiteBalanceKelvin int         `json:"whiteBalanceKelvin,omitempty"`
	HDRBracketCount    int         `json:"hdrBracketCount,omitempty"`
	FileFormat         string      `json:"fileFormat,omitempty"`
	CaptureTimestamp   *time.Time  `json:"captureTimestamp,omitempty"`
	DeviceInfo         string      `json:"deviceInfo,omitempty"`
	Geolocation        string      `json:"geolocation,omitempty"`
}

// MetaInputs carries the capture-session state a metadata record is built
// from. Optional fields may be left at their zero value.
type MetaInputs struct {
	JobID           string
	Date            string
	ShootCode       string
	RoomType        string
	MergedFilename  string
	Version         int
	SourceFilenames []string

	Orientation        Orientation
	Lens               string
	EVValue            *int
	WhiteBalanceMode   string
	WhiteBalanceKelvin int
	HDRBracketCount    int
	FileFormat         string
	CaptureTimestamp   *time.Time
	DeviceInfo         string
	Geolocation        string
}

// GenerateObjectMeta assembles a metadata record from session state. It is
// purely constructive; completeness is checked separately by
// ValidateObjectMeta.
func GenerateObjectMeta(in MetaInputs) ObjectMetadata {
	sources := append([]string(nil), in.SourceFilenames...)
	if sources == nil {
		sources = []string{}
	}
	return ObjectMetadata{
		JobID:              in.JobID,
		Date:               in.Date,
		ShootCode:          in.ShootCode,
		RoomType:           in.RoomType,
		MergedFilename:     in.MergedFilename,
		Version:            in.Version,
		SourceFilenames:    sources,
		Orientation:        in.Orientation,
		Lens:               in.Lens,
		EVValue:            in.EVValue,
		WhiteBalanceMode:   in.WhiteBalanceMode,
		WhiteBalanceKelvin: in.WhiteBalanceKelvin,
		HDRBracketCount:    in.HDRBracketCount,
		FileFormat:         in.FileFormat,
		CaptureTimestamp:   in.CaptureTimestamp,
		DeviceInfo:         in.DeviceInfo,
		Geolocation:        in.Geolocation,
	}
}

// SerializeObjectMeta renders one record as indented JSON.
func SerializeObjectMeta(record ObjectMetadata) (string, error) {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize metadata for %s: %w", record.MergedFilename, err)
	}
	return string(data), nil
}

// Report is the outcome of validating one metadata record. Errors block
// delivery of the record; warnings are advisory only.
type Report struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

// ValidateObjectMeta checks a record for completeness. Missing identity
// fields and inconsistent source filenames are errors; missing descriptive
// fields are warnings and never affect validity.
func ValidateObjectMeta(record ObjectMetadata) Report {
	var report Report

	requireField(&report, record.JobID != "", "jobId is missing")
	requireField(&report, record.Date != "", "date is missing")
	requireField(&report, record.ShootCode != "", "shootCode is missing")
	requireField(&report, record.RoomType != "", "roomType is missing")
	requireField(&report, record.MergedFilename != "", "mergedFilename is missing")

	if record.MergedFilename != "" && len(record.SourceFilenames) > 0 {
		base, ok := naming.ExtractBaseName(record.MergedFilename)
		if !ok {
			report.Errors = append(report.Errors,
				fmt.Sprintf("mergedFilename %q does not match the final filename grammar", record.MergedFilename))
		}
		for _, source := range record.SourceFilenames {
			raw, parsed := naming.ParseRawFrameFilename(source)
			if !parsed {
				report.Errors = append(report.Errors,
					fmt.Sprintf("source filename %q does not match the raw frame grammar", source))
				continue
			}
			if ok && raw.BaseName() != base {
				report.Errors = append(report.Errors,
					fmt.Sprintf("source filename %q belongs to subject %s, not %s", source, raw.BaseName(), base))
			}
		}
	}

	warnField(&report, record.Lens != "", "lens not recorded")
	warnField(&report, record.EVValue != nil, "evValue not recorded")
	warnField(&report, record.WhiteBalanceMode != "" || record.WhiteBalanceKelvin > 0, "white balance not recorded")
	warnField(&report, record.HDRBracketCount > 0, "hdrBracketCount not recorded")
	warnField(&report, record.FileFormat != "", "fileFormat not recorded")
	warnField(&report, record.CaptureTimestamp != nil, "captureTimestamp not recorded")

	report.IsValid = len(report.Errors) == 0
	return report
}

func requireField(report *Report, present bool, message string) {
	if !present {
		report.Errors = append(report.Errors, message)
	}
}

func warnField(report *Report, present bool, message string) {
	if !present {
		report.Warnings = append(report.Warnings, message)
	}
}
