// Package importer reads and writes the spreadsheet registers used for bulk
// participant and VSLA data entry.
package importer

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"impacttrack/internal/entities"

	"gopkg.in/yaml.v3"
)

//go:embed columns.yaml
var columnsYAML []byte

// Column describes one canonical sheet field.
type Column struct {
	Field    string   `yaml:"field"`
	Required bool     `yaml:"required"`
	Aliases  []string `yaml:"aliases"`
}

// ColumnMap resolves canonical field names to sheet column indexes.
type ColumnMap map[string]int

var (
	loadOnce sync.Once
	layouts  map[entities.ImportKind][]Column
	loadErr  error
)

func load() (map[entities.ImportKind][]Column, error) {
	loadOnce.Do(func() {
		raw := map[string][]Column{}
		if err := yaml.Unmarshal(columnsYAML, &raw); err != nil {
			loadErr = fmt.Errorf("parse column aliases: %w", err)
			return
		}
		layouts = make(map[entities.ImportKind][]Column, len(raw))
		for k, cols := range raw {
			layouts[entities.ImportKind(k)] = cols
		}
	})
	return layouts, loadErr
}

// Columns returns the canonical layout of a sheet kind in export order.
func Columns(kind entities.ImportKind) ([]Column, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	cols, ok := all[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown import kind %q", entities.ErrInvalidArgument, kind)
	}
	return cols, nil
}

func headers(cols []Column) []string {
	res := make([]string, len(cols))
	for i, c := range cols {
		res[i] = c.Field
	}
	return res
}

// normalizeHeader folds case and drops separators so "Sub-County", "sub_county"
// and "SUB COUNTY" compare equal.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.', '\t':
			return -1
		}
		return r
	}, s)
}

// MapHeader resolves header cells to canonical fields. The first matching
// column wins; unrecognised columns are ignored.
func MapHeader(kind entities.ImportKind, header []string) (ColumnMap, error) {
	cols, err := Columns(kind)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]string)
	for _, c := range cols {
		lookup[normalizeHeader(c.Field)] = c.Field
		for _, a := range c.Aliases {
			if _, taken := lookup[normalizeHeader(a)]; !taken {
				lookup[normalizeHeader(a)] = c.Field
			}
		}
	}

	res := make(ColumnMap)
	for i, cell := range header {
		field, ok := lookup[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, dup := res[field]; !dup {
			res[field] = i
		}
	}

	var missing []string
	for _, c := range cols {
		if _, ok := res[c.Field]; c.Required && !ok {
			missing = append(missing, c.Field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", entities.ErrImportMissingColumns, strings.Join(missing, ", "))
	}
	return res, nil
}
