package dataset

import (
	"fmt"
	"strings"
)

// ColumnType describes how a CSV column is coerced during load.
type ColumnType int

const (
	ColString ColumnType = iota
	ColInt
	ColFloat
)

// Column is one named, typed column in a dataset schema. Aliases list the
// header spellings seen in the wild for this column; the first alias found in
// the file header wins. Optional columns may be absent from the file without
// failing resolution.
type Column struct {
	Name     string
	Type     ColumnType
	Aliases  []string
	Optional bool
}

// Schema is an explicit descriptor for a CSV dataset: every required column,
// its type, and its accepted header aliases. Schemas are validated once at
// load time so a bad file fails fast instead of surfacing halfway through a
// render.
type Schema struct {
	Name    string
	Columns []Column
}

// MissingColumnError reports a required column that could not be resolved
// against the file header under any of its aliases. Available carries the
// headers actually present so the message shown to the user is actionable.
type MissingColumnError struct {
	Dataset   string
	Column    string
	Aliases   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf(
		"dataset %s: no column matching %q (tried: %s; file has: %s)",
		e.Dataset, e.Column,
		strings.Join(e.Aliases, ", "),
		strings.Join(e.Available, ", "),
	)
}

// Resolve maps each schema column to its index in header. Header cells are
// trimmed and matched case-insensitively; a BOM on the first cell is
// stripped. Returns a MissingColumnError for the first unresolvable required
// column; an absent optional column simply gets no index entry.
func (s Schema) Resolve(header []string) (map[string]int, error) {
	cleaned := make([]string, len(header))
	byName := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		h = strings.TrimSpace(h)
		cleaned[i] = h
		byName[strings.ToLower(h)] = i
	}

	idx := make(map[string]int, len(s.Columns))
	for _, col := range s.Columns {
		found := false
		for _, alias := range col.Aliases {
			if i, ok := byName[strings.ToLower(alias)]; ok {
				idx[col.Name] = i
				found = true
				break
			}
		}
		if !found {
			if col.Optional {
				continue
			}
			return nil, &MissingColumnError{
				Dataset:   s.Name,
				Column:    col.Name,
				Aliases:   col.Aliases,
				Available: cleaned,
			}
		}
	}
	return idx, nil
}
