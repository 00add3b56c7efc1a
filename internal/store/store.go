// Package store reads and writes posting tables as CSV files.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/skill-matcher/internal/levels"
	"github.com/spigell/skill-matcher/internal/matching"
	"github.com/spigell/skill-matcher/internal/posting"
)

// Column names shared with the collector and the ranking output.
const (
	ColumnCompany     = "company"
	ColumnTitle       = "title"
	ColumnLocation    = "location"
	ColumnURL         = "url"
	ColumnDescription = "description_raw"
	ColumnScrapedAt   = "date_scraped"
	ColumnRequired    = "required_skills"
	ColumnPreferred   = "preferred_skills"
	ColumnRawScore    = "raw_score"
	ColumnFinalScore  = "final_score"
)

var (
	rawColumns        = []string{ColumnCompany, ColumnTitle, ColumnLocation, ColumnURL, ColumnDescription, ColumnScrapedAt}
	structuredColumns = append(append([]string(nil), rawColumns...), ColumnRequired, ColumnPreferred)
	rankedColumns     = append(append([]string(nil), structuredColumns...), ColumnRawScore, ColumnFinalScore)

	knownColumns = func() map[string]struct{} {
		known := make(map[string]struct{}, len(rankedColumns))
		for _, c := range rankedColumns {
			known[c] = struct{}{}
		}
		return known
	}()
)

// timestampLayouts are tried in order when reading date_scraped.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

const timestampLayout = "2006-01-02 15:04:05.999999"

// ErrMissingColumn is returned when a table lacks a column the caller needs.
var ErrMissingColumn = errors.New("missing column")

// RowError points to the cell that could not be read.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Table is the result of reading a posting file.
type Table struct {
	Postings *posting.Postings
	Columns  []string
}

// HasColumn reports whether the header contained name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Require returns ErrMissingColumn for the first absent column.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	return nil
}

// Read parses a CSV table with a header row. Unknown columns are kept in
// Posting.Extra and absent ones are left empty. Skill columns are decoded with
// levels.Decode. Score columns are dropped since ranking recomputes them.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Table{Postings: &posting.Postings{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	columns := make([]string, 0, len(header))
	var extra []string
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			if _, ok := knownColumns[name]; !ok && name != "" {
				extra = append(extra, name)
			}
		}
		index[name] = i
		columns = append(columns, name)
	}

	table := &Table{Postings: &posting.Postings{}, Columns: columns}

	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		p, err := decodeRow(row, cell)
		if err != nil {
			return nil, err
		}
		if len(extra) > 0 {
			p.Extra = make(map[string]string, len(extra))
			for _, name := range extra {
				p.Extra[name] = cell(name)
			}
		}
		table.Postings.Items = append(table.Postings.Items, p)
	}

	return table, nil
}

func decodeRow(row int, cell func(string) string) (*posting.Posting, error) {
	p := &posting.Posting{
		Company:     cell(ColumnCompany),
		Title:       cell(ColumnTitle),
		Location:    cell(ColumnLocation),
		URL:         cell(ColumnURL),
		Description: cell(ColumnDescription),
	}

	var err error
	if p.ScrapedAt, err = parseTimestamp(cell(ColumnScrapedAt)); err != nil {
		return nil, &RowError{Row: row, Column: ColumnScrapedAt, Err: err}
	}
	if p.Required, err = levels.Decode(cell(ColumnRequired)); err != nil {
		return nil, &RowError{Row: row, Column: ColumnRequired, Err: err}
	}
	if p.Preferred, err = levels.Decode(cell(ColumnPreferred)); err != nil {
		return nil, &RowError{Row: row, Column: ColumnPreferred, Err: err}
	}

	return p, nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

func structuredRecord(p *posting.Posting, extra []string) []string {
	record := []string{
		p.Company, p.Title, p.Location, p.URL, p.Description, formatTimestamp(p.ScrapedAt),
		p.Required.Encode(), p.Preferred.Encode(),
	}
	for _, name := range extra {
		record = append(record, p.Extra[name])
	}
	return record
}

// extraColumns returns the names of all extra columns in lexical order.
func extraColumns(items []*posting.Posting) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, p := range items {
		for name := range p.Extra {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// WriteStructured writes postings with their extracted skill columns followed
// by any extra columns.
func WriteStructured(w io.Writer, postings *posting.Postings) error {
	extra := extraColumns(postings.Items)

	writer := csv.NewWriter(w)
	if err := writer.Write(append(append([]string(nil), structuredColumns...), extra...)); err != nil {
		return err
	}

	for _, p := range postings.Items {
		if err := writer.Write(structuredRecord(p, extra)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteRanking writes the ranking in its order. Extra columns come before the
// raw and final scores.
func WriteRanking(w io.Writer, ranking matching.Ranking) error {
	extra := extraColumns(ranking.Postings().Items)

	header := append(append([]string(nil), structuredColumns...), extra...)
	writer := csv.NewWriter(w)
	if err := writer.Write(append(header, ColumnRawScore, ColumnFinalScore)); err != nil {
		return err
	}

	for _, s := range ranking.Items {
		record := append(structuredRecord(s.Posting, extra),
			strconv.Itoa(s.RawScore),
			strconv.FormatFloat(s.FinalScore, 'f', 2, 64),
		)
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// WriteFile creates path and fills it with write.
func WriteFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return file.Close()
}
