// Package screener classifies indicator sets into RSI zones.
package screener

import (
	"fmt"
	"strings"

	"StreetDash/internal/model"
)

// Zone is an RSI band.
type Zone string

const (
	ZoneOversold   Zone = "OVERSOLD"
	ZoneOverbought Zone = "OVERBOUGHT"
	ZoneNeutral    Zone = "NEUTRAL"
	ZoneUnknown    Zone = "UNKNOWN"
)

// Label returns the report heading for the zone.
func (z Zone) Label() string {
	switch z {
	case ZoneOversold:
		return "Oversold"
	case ZoneOverbought:
		return "Overbought"
	case ZoneNeutral:
		return "Neutral"
	default:
		return "Not enough data"
	}
}

// ParseZone accepts the zone names in any case.
func ParseZone(s string) (Zone, error) {
	for _, z := range []Zone{ZoneOversold, ZoneOverbought, ZoneNeutral, ZoneUnknown} {
		if strings.EqualFold(string(z), s) {
			return z, nil
		}
	}
	return "", fmt.Errorf("unknown zone %q", s)
}

// Thresholds bound the neutral band. Readings strictly below Oversold or
// strictly above Overbought leave it.
type Thresholds struct {
	Oversold   float64
	Overbought float64
}

// DefaultThresholds is the classic 30/70 split.
func DefaultThresholds() Thresholds {
	return Thresholds{Oversold: 30, Overbought: 70}
}

func (t Thresholds) Validate() error {
	if t.Oversold < 0 || t.Overbought > 100 {
		return fmt.Errorf("rsi thresholds must lie in [0,100], got %.2f/%.2f", t.Oversold, t.Overbought)
	}
	if t.Oversold >= t.Overbought {
		return fmt.Errorf("oversold threshold %.2f must be below overbought %.2f", t.Oversold, t.Overbought)
	}
	return nil
}

// bands maps an RSI reading to a zone, first match wins.
func (t Thresholds) bands() []struct {
	match func(rsi float64) bool
	zone  Zone
} {
	return []struct {
		match func(rsi float64) bool
		zone  Zone
	}{
		{func(rsi float64) bool { return rsi < t.Oversold }, ZoneOversold},
		{func(rsi float64) bool { return rsi > t.Overbought }, ZoneOverbought},
	}
}

// ClassifyRSI maps one RSI reading to its zone.
func ClassifyRSI(rsi model.IndicatorValue, t Thresholds) Zone {
	v, ok := rsi.Float()
	if !ok {
		return ZoneUnknown
	}
	for _, b := range t.bands() {
		if b.match(v) {
			return b.zone
		}
	}
	return ZoneNeutral
}

// Classify maps an indicator set to the zone of its RSI.
func Classify(set model.IndicatorSet, t Thresholds) Zone {
	return ClassifyRSI(set.RSI, t)
}

// Filter returns the sets that fall in zone, preserving order.
func Filter(sets []model.IndicatorSet, t Thresholds, zone Zone) []model.IndicatorSet {
	var out []model.IndicatorSet
	for _, s := range sets {
		if Classify(s, t) == zone {
			out = append(out, s)
		}
	}
	return out
}

