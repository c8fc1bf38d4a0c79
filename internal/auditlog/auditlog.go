// Package auditlog keeps an append-only CSV trail of mutating
// operations in the data directory. The log is best-effort: a failed
// append never blocks the mutation that triggered it.
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Action    string
	Envelope  string
	ItemID    string
	Details   string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,envelope,item_id,details"

const (
	numFields    = 5
	logDir       = "logs"
	logFile      = "logs/audit-log.csv"
	colTimestamp = 0
	colAction    = 1
	colEnvelope  = 2
	colItemID    = 3
	colDetails   = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colEnvelope] = e.Envelope
	row[colItemID] = e.ItemID
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Action:    record[colAction],
		Envelope:  record[colEnvelope],
		ItemID:    record[colItemID],
		Details:   record[colDetails],
	}, nil
}

// Append writes entries to <dataDir>/logs/audit-log.csv, creating the
// file and header if needed.
func Append(dataDir string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	if err := os.MkdirAll(filepath.Join(dataDir, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	for _, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from the audit log, oldest first.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataDir, logFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 && strings.Join(rec, ",") == Header {
			continue
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
