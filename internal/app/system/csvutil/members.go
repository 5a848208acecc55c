// internal/app/system/csvutil/members.go
package csvutil

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dalemusser/memberhub/internal/domain/models"
)

// Header is the column order written by WriteMembers.
var Header = []string{"id", "name", "date_of_birth", "member_number", "interests"}

// InterestSeparator joins interests inside one CSV cell. A semicolon or
// backslash inside an interest, and spaces at its edges, are escaped with a
// backslash.
const InterestSeparator = "; "

// ErrTooManyRows is returned when a file exceeds ParseOptions.MaxRows.
var ErrTooManyRows = errors.New("csv has too many rows")

// WriteMembers writes a header and one row per member.
func WriteMembers(w io.Writer, list []models.Member) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, m := range list {
		if err := cw.Write(MemberRecord(m)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MemberRecord is the CSV row for m, in Header order.
func MemberRecord(m models.Member) []string {
	return []string{
		m.ID.Hex(),
		m.Name,
		m.DateOfBirth.UTC().Format(models.DateLayout),
		strconv.FormatInt(m.MemberNumber, 10),
		EncodeInterests(m.Interests),
	}
}

// MemberCSVRow is one parsed import row.
type MemberCSVRow struct {
	Line         int
	Name         string
	DateOfBirth  time.Time
	MemberNumber int64
	Interests    []string
}

// Member converts the row into a record ready to insert.
func (r MemberCSVRow) Member() models.Member {
	return models.Member{
		Name:         r.Name,
		DateOfBirth:  r.DateOfBirth,
		MemberNumber: r.MemberNumber,
		Interests:    r.Interests,
	}
}

// RowError describes why one line was rejected.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ParseResult holds the valid rows and the errors of a parse.
type ParseResult struct {
	Rows   []MemberCSVRow
	Errors []RowError
}

// HasErrors reports whether any row was rejected.
func (r *ParseResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ParseOptions tunes ParseMemberCSV.
type ParseOptions struct {
	MaxRows int
}

// DefaultParseOptions uses MaxRows.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// column positions for the fields an import needs.
type columns struct {
	name, dob, number, interests int
}

// positional is the layout of a headerless file.
var positional = columns{name: 0, dob: 1, number: 2, interests: 3}

// headerColumns maps a header row to column positions. ok is false when the
// row does not look like a header.
func headerColumns(rec []string) (columns, bool) {
	c := columns{name: -1, dob: -1, number: -1, interests: -1}
	for i, h := range rec {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			c.name = i
		case "date_of_birth", "date of birth", "dateofbirth":
			c.dob = i
		case "member_number", "member number", "membernumber":
			c.number = i
		case "interests":
			c.interests = i
		}
	}
	return c, c.name >= 0
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// ParseMemberCSV reads a member import file. A header row (as written by
// WriteMembers) is optional; without one the columns are name,
// date_of_birth, member_number, interests. Blank lines are skipped.
// It never writes to a store, so callers can reject a file before any
// mutation.
func ParseMemberCSV(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	res := &ParseResult{}
	cols := positional
	first := true
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if first {
			first = false
			if len(rec) > 0 {
				rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			}
			if hc, ok := headerColumns(rec); ok {
				cols = hc
				continue
			}
		}
		if isBlank(rec) {
			continue
		}
		if opts.MaxRows > 0 && len(res.Rows)+len(res.Errors) >= opts.MaxRows {
			return nil, fmt.Errorf("%w (max %d)", ErrTooManyRows, opts.MaxRows)
		}

		row, reason := parseRow(rec, cols)
		if reason != "" {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: reason})
			continue
		}
		row.Line = line
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRow(rec []string, c columns) (MemberCSVRow, string) {
	var row MemberCSVRow

	row.Name = cell(rec, c.name)
	if row.Name == "" {
		return row, "missing name"
	}

	dob := cell(rec, c.dob)
	if dob == "" {
		return row, "missing date_of_birth"
	}
	t, err := time.Parse(models.DateLayout, dob)
	if err != nil {
		return row, fmt.Sprintf("date_of_birth %q is not YYYY-MM-DD", dob)
	}
	row.DateOfBirth = t.UTC()

	num := cell(rec, c.number)
	if num == "" {
		return row, "missing member_number"
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return row, fmt.Sprintf("member_number %q is not a whole number", num)
	}
	row.MemberNumber = n

	// Untrimmed: an escaped space may end the cell.
	row.Interests = []string{}
	if c.interests >= 0 && c.interests < len(rec) {
		row.Interests = DecodeInterests(rec[c.interests])
	}
	return row, ""
}

// EncodeInterests writes an interests cell that DecodeInterests turns back
// into the same list. Empty interests are not representable.
func EncodeInterests(list []string) string {
	parts := make([]string, 0, len(list))
	for _, s := range list {
		parts = append(parts, escapeInterest(s))
	}
	return strings.Join(parts, InterestSeparator)
}

func escapeInterest(s string) string {
	runes := []rune(s)
	lead := 0
	for lead < len(runes) && unicode.IsSpace(runes[lead]) {
		lead++
	}
	trail := len(runes)
	for trail > lead && unicode.IsSpace(runes[trail-1]) {
		trail--
	}

	var b strings.Builder
	for i, r := range runes {
		if r == '\\' || r == ';' || i < lead || i >= trail {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DecodeInterests splits a cell on unescaped ';'. Unescaped spaces around
// each entry are trimmed and blank entries are dropped, so hand-written
// cells like "golf;chess" or "golf ; chess" also work. The result is never nil.
func DecodeInterests(cell string) []string {
	out := []string{}
	var b strings.Builder
	keep := 0 // length of b through the last rune that is not trimmable
	escaped := false

	flush := func() {
		if v := b.String()[:keep]; v != "" {
			out = append(out, v)
		}
		b.Reset()
		keep = 0
	}

	for _, r := range cell {
		switch {
		case escaped:
			b.WriteRune(r)
			keep = b.Len()
			escaped = false
		case r == '\\':
			escaped = true
		case r == ';':
			flush()
		case unicode.IsSpace(r):
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
			keep = b.Len()
		}
	}
	if escaped {
		// A lone trailing backslash is kept as typed.
		b.WriteByte('\\')
		keep = b.Len()
	}
	flush()
	return out
}
