package service

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"github.com/vineetm1204-m/ODAutomation/internal/model"
	apperrors "github.com/vineetm1204-m/ODAutomation/pkg/errors"
)

// ── Timetable parsers ───────────────────────────────────────
//
// Every format produces the same []model.TimetableEntry:
//   - CSV:  header row skipped, then day,time,subject,faculty per line
//   - XLSX: first sheet, same column order, header row skipped
//   - ICS:  one entry per VEVENT (weekday of DTSTART, "hh:mm AM - hh:mm PM")
//
// Rows missing any of the four fields are dropped silently; callers only
// ever see the accepted count.
// ─────────────────────────────────────────────────────────────

var (
	ErrTimetableReadFailure       = apperrors.NewParse("Failed to read the timetable file")
	ErrTimetableNoValidEntries    = apperrors.NewParse("No valid entries found in the timetable")
	ErrTimetableUnsupportedFormat = apperrors.NewValidation("Unsupported timetable format; upload a .csv, .xlsx or .ics file")
)

// Timetable formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatICS  = "ics"
)

const utf8BOM = "\ufeff"

// DetectFormat maps a file name to one of the supported formats
func DetectFormat(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".ics", ".ical":
		return FormatICS, nil
	default:
		return "", ErrTimetableUnsupportedFormat
	}
}

// ParseTimetable dispatches on format. A readable file with no valid rows
// returns an empty slice and a nil error; the caller decides whether that
// is a warning.
func ParseTimetable(format string, r io.Reader) ([]model.TimetableEntry, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	case FormatICS:
		return ParseICS(r)
	default:
		return nil, ErrTimetableUnsupportedFormat
	}
}

// ── CSV ──

// ParseCSV parses timetable CSV text. Lines are handled one at a time so a
// malformed quote only costs that row.
func ParseCSV(r io.Reader) ([]model.TimetableEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableReadFailure, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: file is not valid UTF-8 text", ErrTimetableReadFailure)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	entries := []model.TimetableEntry{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)

	header := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if e, ok := entryFromFields(splitCSVLine(line)); ok {
			entries = append(entries, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableReadFailure, err)
	}
	return entries, nil
}

func splitCSVLine(line string) []string {
	cr := csv.NewReader(strings.NewReader(line))
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	fields, err := cr.Read()
	if err != nil {
		return nil
	}
	return fields
}

// entryFromFields keeps the first four trimmed fields when all are non-empty
func entryFromFields(fields []string) (model.TimetableEntry, bool) {
	if len(fields) < 4 {
		return model.TimetableEntry{}, false
	}
	e := model.TimetableEntry{
		Day:     strings.TrimSpace(fields[0]),
		Time:    strings.TrimSpace(fields[1]),
		Subject: strings.TrimSpace(fields[2]),
		Faculty: strings.TrimSpace(fields[3]),
	}
	if e.Day == "" || e.Time == "" || e.Subject == "" || e.Faculty == "" {
		return model.TimetableEntry{}, false
	}
	return e, true
}

// ── XLSX ──

// ParseXLSX reads the first sheet of a workbook
func ParseXLSX(r io.Reader) ([]model.TimetableEntry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableReadFailure, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []model.TimetableEntry{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableReadFailure, err)
	}

	entries := []model.TimetableEntry{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if e, ok := entryFromFields(row); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ── ICS ──

const icsTimeLayout = "03:04 PM"

// ParseICS turns each VEVENT into an entry. Identical events (a recurring
// class exported as separate occurrences) collapse into one.
func ParseICS(r io.Reader) ([]model.TimetableEntry, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTimetableReadFailure, err)
	}

	entries := []model.TimetableEntry{}
	seen := make(map[model.TimetableEntry]bool)
	for _, evt := range cal.Events() {
		e, ok := entryFromEvent(evt)
		if !ok || seen[e] {
			continue
		}
		seen[e] = true
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromEvent(evt *ics.VEvent) (model.TimetableEntry, bool) {
	summary := propValue(evt, ics.ComponentPropertySummary)
	if summary == "" {
		return model.TimetableEntry{}, false
	}

	start, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return model.TimetableEntry{}, false
	}
	end, err := parseICSDateTime(evt, ics.ComponentPropertyDtEnd)
	if err != nil {
		return model.TimetableEntry{}, false
	}

	return entryFromFields([]string{
		start.Weekday().String(),
		start.Format(icsTimeLayout) + " - " + end.Format(icsTimeLayout),
		summary,
		eventFaculty(evt),
	})
}

// eventFaculty prefers the organizer's display name, then the description
func eventFaculty(evt *ics.VEvent) string {
	if prop := evt.GetProperty(ics.ComponentPropertyOrganizer); prop != nil {
		if cn, ok := prop.ICalParameters[string(ics.ParameterCn)]; ok && len(cn) > 0 {
			if name := strings.TrimSpace(cn[0]); name != "" {
				return name
			}
		}
	}
	return propValue(evt, ics.ComponentPropertyDescription)
}

func propValue(evt *ics.VEvent, name ics.ComponentProperty) string {
	prop := evt.GetProperty(name)
	if prop == nil {
		return ""
	}
	return strings.TrimSpace(prop.Value)
}

// parseICSDateTime reads a DATE-TIME property. UTC values are kept in UTC,
// TZID values in their zone and floating values as-is: the wall-clock time
// is what the timetable shows.
func parseICSDateTime(evt *ics.VEvent, name ics.ComponentProperty) (time.Time, error) {
	prop := evt.GetProperty(name)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", name)
	}

	loc := time.UTC
	for k, v := range prop.ICalParameters {
		if strings.EqualFold(k, "TZID") && len(v) > 0 {
			if tz, err := time.LoadLocation(v[0]); err == nil {
				loc = tz
			}
		}
	}

	for _, layout := range []string{"20060102T150405Z", "20060102T150405"} {
		if t, err := time.ParseInLocation(layout, prop.Value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %s value %q", name, prop.Value)
}
