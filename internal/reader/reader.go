// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader parses the TrueKey CSV export dialect into logical records.
//
// The dialect is double-quote-delimited CSV, except that the notes field may
// contain raw, un-escaped line breaks inside its quotes, so one logical record
// can span several physical lines. The reader reassembles records by tracking
// quote parity: a record is complete only once every opened quote has closed.
package reader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/passmigrate/pkg/types"
)

var (
	// ErrMissingPasswordColumn is returned when the header lacks a password
	// column under any recognized spelling.
	ErrMissingPasswordColumn = errors.New("header has no password column")
	// ErrUnterminatedQuote is returned when end of file is reached while a
	// quoted field is still open.
	ErrUnterminatedQuote = errors.New("quoted field not closed before end of file")
)

// MalformedError reports a structural problem in the source file. Record is
// the index of the last complete logical record read before the problem, so
// callers can tell the user where the file went wrong.
type MalformedError struct {
	Record int
	Err    error
}

// Error formats the message with the last complete record index.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed source after record %d: %v", e.Record, e.Err)
}

// Unwrap returns the underlying cause so MalformedError participates in
// errors.Is checks.
func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Reader produces a lazy, forward-only sequence of SourceRecords from a
// TrueKey export. It is not restartable; a fresh read requires reopening the
// source.
type Reader struct {
	br *bufio.Reader

	cols  map[string]int
	ncols int

	emitted int
	done    bool
}

// columnAliases maps header spellings seen in real exports to the semantic
// column names the converter works with.
var columnAliases = map[string]string{
	"kind":     "kind",
	"type":     "type",
	"name":     "title",
	"title":    "title",
	"url":      "url",
	"website":  "url",
	"login":    "username",
	"username": "username",
	"password": "password",
	"note":     "notes",
	"notes":    "notes",
	"memo":     "notes",
	"otp":      "otp",
	"totp":     "otp",
	"secret":   "otp",
}

// New reads and validates the header line of src and returns a Reader
// positioned at the first data record. The header must contain a password
// column; otherwise a MalformedError wrapping ErrMissingPasswordColumn is
// returned.
func New(src io.Reader) (*Reader, error) {
	br := bufio.NewReader(src)

	header, _, err := readLine(br)
	if err != nil {
		if err == io.EOF {
			return nil, &MalformedError{Record: 0, Err: ErrMissingPasswordColumn}
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	header = strings.TrimPrefix(header, "\ufeff")

	cols := make(map[string]int)
	for i, name := range splitFields(header) {
		key := strings.ToLower(strings.TrimSpace(name))
		if sem, ok := columnAliases[key]; ok {
			if _, dup := cols[sem]; !dup {
				cols[sem] = i
			}
		}
	}
	if _, ok := cols["password"]; !ok {
		return nil, &MalformedError{Record: 0, Err: ErrMissingPasswordColumn}
	}

	return &Reader{
		br:    br,
		cols:  cols,
		ncols: len(splitFields(header)),
	}, nil
}

// Next returns the next logical record, or io.EOF when the source is
// exhausted. A record spanning several physical lines is returned as one
// SourceRecord with the internal line breaks preserved in its notes.
func (r *Reader) Next() (types.SourceRecord, error) {
	if r.done {
		return types.SourceRecord{}, io.EOF
	}

	var buf strings.Builder
	pending := false
	parity := 0

	for {
		line, sawEOF, err := readLine(r.br)
		if err != nil && err != io.EOF {
			return types.SourceRecord{}, fmt.Errorf("reading source: %w", err)
		}

		if !pending && strings.TrimSpace(line) == "" {
			// Blank lines between records carry nothing.
			if sawEOF {
				r.done = true
				return types.SourceRecord{}, io.EOF
			}
			continue
		}

		if pending {
			// The consumed line terminator was part of the quoted content.
			buf.WriteByte('\n')
		}
		buf.WriteString(line)
		pending = true
		parity = (parity + quoteCount(line)) % 2

		if parity == 0 {
			rec := r.record(splitFields(buf.String()))
			r.emitted++
			if sawEOF {
				r.done = true
			}
			return rec, nil
		}

		if sawEOF {
			// A record never reached quote balance: structurally truncated.
			r.done = true
			return types.SourceRecord{}, &MalformedError{Record: r.emitted, Err: ErrUnterminatedQuote}
		}
	}
}

// readLine returns the next physical line without its terminator. sawEOF is
// true when the underlying source is exhausted after this line.
func readLine(br *bufio.Reader) (line string, sawEOF bool, err error) {
	line, err = br.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", true, io.EOF
		}
		return trimEOL(line), true, nil
	}
	if err != nil {
		return "", false, err
	}
	return trimEOL(line), false, nil
}

func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// quoteCount counts quote boundary markers in line. An escaped literal quote
// ("") closes as soon as it opens, so it contributes a full pair and never
// flips parity.
func quoteCount(line string) int {
	n := 0
	for i := 0; i < len(line); i++ {
		if line[i] == '"' {
			n++
		}
	}
	return n
}

// splitFields splits one complete logical record into fields: commas outside
// quotes separate, commas and newlines inside quotes are literal, and "" is
// an escaped quote. A bare quote in the middle of an unquoted field is kept
// literally rather than rejected, since real exports contain them.
func splitFields(record string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	for i := 0; i < len(record); i++ {
		c := record[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(record) && record[i+1] == '"' {
					b.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
				break
			}
			b.WriteByte(c)
		case c == '"' && b.Len() == 0:
			inQuotes = true
		case c == ',':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// record maps raw fields onto a SourceRecord by the header's column layout.
// Short rows are padded; when the notes column is last, surplus unquoted
// commas are folded back into it rather than dropped.
func (r *Reader) record(fields []string) types.SourceRecord {
	if len(fields) > r.ncols {
		if idx, ok := r.cols["notes"]; ok && idx == r.ncols-1 {
			fields[idx] = strings.Join(fields[idx:], ",")
		}
		fields = fields[:r.ncols]
	}
	for len(fields) < r.ncols {
		fields = append(fields, "")
	}

	field := func(sem string) string {
		idx, ok := r.cols[sem]
		if !ok || idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	kind := types.KindLogin
	for _, sem := range []string{"kind", "type"} {
		if strings.EqualFold(strings.TrimSpace(field(sem)), "note") {
			kind = types.KindNote
		}
	}

	return types.SourceRecord{
		Kind:      kind,
		Title:     strings.TrimSpace(field("title")),
		URL:       strings.TrimSpace(field("url")),
		Username:  strings.TrimSpace(field("username")),
		Password:  field("password"),
		Notes:     field("notes"),
		OTPSecret: strings.TrimSpace(field("otp")),
	}
}
