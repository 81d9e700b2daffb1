package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"StreetDash/internal/model"
)

var csvHeader = []string{"Date", "Asset", "Amount", "Type"}

// CSVStore keeps the ledger in a CSV file with header Date,Asset,Amount,Type.
type CSVStore struct {
	Path string
}

func NewCSVStore(path string) *CSVStore { return &CSVStore{Path: path} }

// Load reads the file. A missing file is an empty ledger.
func (s *CSVStore) Load() ([]model.LedgerEntry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var entries []model.LedgerEntry
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		e, err := parseRecord(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save rewrites the file through a temporary file and rename.
func (s *CSVStore) Save(entries []model.LedgerEntry) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return err
	}
	for _, e := range entries {
		if err := w.Write([]string{
			e.Date.Format(DateLayout),
			e.Asset,
			e.Amount.String(),
			string(e.Type),
		}); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

func (s *CSVStore) Close() error { return nil }

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range csvHeader {
		if _, ok := cols[strings.ToLower(want)]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", want)
		}
	}
	return cols, nil
}

func parseRecord(rec []string, cols map[string]int) (model.LedgerEntry, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	date, err := time.Parse(DateLayout, field("date"))
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("date: %w", err)
	}
	amount, err := decimal.NewFromString(field("amount"))
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("amount: %w", err)
	}
	typ, ok := model.ParseAssetType(field("type"))
	if !ok {
		return model.LedgerEntry{}, fmt.Errorf("unknown type %q", field("type"))
	}
	return model.LedgerEntry{Date: date, Asset: field("asset"), Amount: amount, Type: typ}, nil
}
