package dealers

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"ticket-classifier-go/internal/logger"
	"ticket-classifier-go/internal/types"
)

// Table is the rep/dealer reference mapping, loaded once at startup and
// read-only afterwards. Keys are normalized dealer names (lowercased,
// non-alphanumerics stripped, tokens sorted) so lookups are case- and
// word-order-insensitive.
type Table struct {
	byNorm map[string]types.DealerRecord
	keys   []string
}

// Load reads the mapping from a .csv or .xlsx file. A missing or unreadable
// file is fatal for callers: the pipeline cannot resolve identities without it.
func Load(path string) (*Table, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return buildTable(rows)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read mapping csv: %w", err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("mapping file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read mapping rows: %w", err)
	}
	return rows, nil
}

func buildTable(rows [][]string) (*Table, error) {
	if len(rows) <= 1 {
		return nil, fmt.Errorf("mapping has no data rows")
	}

	log := logger.New().WithField("component", "dealers.loader")

	// Header column detection by name; falls back to the conventional
	// (name, id, rep) order when headers are unrecognizable.
	nameIdx, idIdx, repIdx := -1, -1, -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case nameIdx == -1 && strings.Contains(l, "dealer") && strings.Contains(l, "name"):
			nameIdx = i
		case idIdx == -1 && strings.Contains(l, "id"):
			idIdx = i
		case repIdx == -1 && strings.Contains(l, "rep"):
			repIdx = i
		}
	}
	if nameIdx == -1 {
		nameIdx = 0
	}
	if idIdx == -1 {
		idIdx = 1
	}
	if repIdx == -1 {
		repIdx = 2
	}

	t := &Table{byNorm: make(map[string]types.DealerRecord, len(rows)-1)}
	for i, r := range rows {
		if i == 0 {
			continue
		}
		cell := func(idx int) string {
			if idx >= 0 && idx < len(r) {
				return strings.TrimSpace(r[idx])
			}
			return ""
		}
		rec := types.DealerRecord{
			DealerName: cell(nameIdx),
			DealerID:   cell(idIdx),
			Rep:        cell(repIdx),
		}
		if rec.DealerName == "" {
			continue
		}
		norm := NormalizeName(rec.DealerName)
		if _, dup := t.byNorm[norm]; dup {
			log.WithField("dealer", rec.DealerName).Warn("duplicate dealer name in mapping, keeping first")
			continue
		}
		t.byNorm[norm] = rec
		t.keys = append(t.keys, norm)
	}
	if len(t.byNorm) == 0 {
		return nil, fmt.Errorf("mapping has no usable rows")
	}
	log.WithField("dealers", len(t.byNorm)).Info("reference mapping loaded")
	return t, nil
}

// Len reports how many dealers the table holds.
func (t *Table) Len() int {
	return len(t.byNorm)
}
