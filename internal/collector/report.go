package collector

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"StreetDash/internal/model"
)

// SymbolResult is the outcome for one symbol of a scan: an indicator set or
// the reason it was skipped.
type SymbolResult struct {
	Symbol string              `json:"symbol"`
	Set    *model.IndicatorSet `json:"set,omitempty"`
	Err    string              `json:"error,omitempty"`
}

// OK reports whether the symbol was evaluated.
func (r SymbolResult) OK() bool { return r.Set != nil && r.Err == "" }

// Report collects a scan's results in watchlist order.
type Report struct {
	Provider string
	Started  time.Time
	Finished time.Time
	Results  []SymbolResult
}

// Succeeded returns the evaluated symbols.
func (r *Report) Succeeded() []SymbolResult {
	var out []SymbolResult
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the skipped symbols.
func (r *Report) Failed() []SymbolResult {
	var out []SymbolResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Sets returns the indicator sets of the evaluated symbols.
func (r *Report) Sets() []model.IndicatorSet {
	var out []model.IndicatorSet
	for _, res := range r.Succeeded() {
		out = append(out, *res.Set)
	}
	return out
}

type failedEntry struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

const (
	successFile = ".lastrun.success.json"
	failedFile  = ".lastrun.failed.json"
)

// WriteJSON records which symbols succeeded and why the others failed.
// Indicator values are not written.
func (r *Report) WriteJSON(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	success := make([]string, 0, len(r.Results))
	failed := make([]failedEntry, 0)
	for _, res := range r.Results {
		if res.OK() {
			success = append(success, res.Symbol)
		} else {
			failed = append(failed, failedEntry{Symbol: res.Symbol, Reason: res.Err})
		}
	}

	if err := writeJSONFile(filepath.Join(dir, successFile), success); err != nil {
		return err
	}
	if err := writeJSONFile(filepath.Join(dir, failedFile), failed); err != nil {
		return err
	}
	slog.Info("report written", "dir", dir, "succeeded", len(success), "failed", len(failed))
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
