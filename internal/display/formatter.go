// Package display renders indicator sets, scan reports and the ledger as
// console text.
package display

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"StreetDash/internal/collector"
	"StreetDash/internal/model"
	"StreetDash/internal/screener"
)

// Averages carries the two moving averages shown under the crossover tile.
type Averages struct {
	ShortWindow, LongWindow int
	Short, Long             model.IndicatorValue
}

// FormatDashboard renders the RSI, MACD and VWAP tiles and the crossover
// signal for one symbol. avg may be nil.
func FormatDashboard(set model.IndicatorSet, avg *Averages) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Trading Dashboard | %s", set.Symbol))
	if !set.AsOf.IsZero() {
		b.WriteString(fmt.Sprintf(" | as of %s", set.AsOf.Format("2006-01-02")))
	}
	b.WriteString(fmt.Sprintf(" (%d bars)\n\n", set.Bars))

	b.WriteString(fmt.Sprintf("RSI:  %s\n", set.RSI))
	b.WriteString(fmt.Sprintf("MACD: %s\n", set.MACD))
	b.WriteString(fmt.Sprintf("VWAP: %s\n\n", set.VWAP))

	if avg != nil {
		b.WriteString(fmt.Sprintf("SMA %d/%d Crossover Signal\n", avg.ShortWindow, avg.LongWindow))
	} else {
		b.WriteString("SMA Crossover Signal\n")
	}
	b.WriteString(set.Crossover.Label())
	b.WriteString("\n")
	if avg != nil {
		b.WriteString(fmt.Sprintf("  SMA%d: %s | SMA%d: %s\n", avg.ShortWindow, avg.Short, avg.LongWindow, avg.Long))
	}
	return b.String()
}

// FormatScanReport lists the symbols whose RSI falls in zone, then the
// symbols that were skipped and why.
func FormatScanReport(report *collector.Report, th screener.Thresholds, zone screener.Zone) string {
	var b strings.Builder

	b.WriteString(zoneHeading(zone, th))
	b.WriteString("\n")
	hits := screener.Filter(report.Sets(), th, zone)
	for _, s := range hits {
		b.WriteString(fmt.Sprintf("%s: RSI = %s\n", s.Symbol, s.RSI))
	}
	if len(hits) == 0 {
		b.WriteString("(none)\n")
	}

	var skipped []string
	for _, res := range report.Results {
		switch {
		case !res.OK():
			skipped = append(skipped, fmt.Sprintf("%s: %s", res.Symbol, res.Err))
		case !res.Set.RSI.Available && zone != screener.ZoneUnknown:
			skipped = append(skipped, fmt.Sprintf("%s: not enough data (%d bars)", res.Symbol, res.Set.Bars))
		}
	}
	if len(skipped) > 0 {
		b.WriteString(fmt.Sprintf("\nSkipped (%d):\n", len(skipped)))
		for _, s := range skipped {
			b.WriteString("  ")
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func zoneHeading(zone screener.Zone, th screener.Thresholds) string {
	switch zone {
	case screener.ZoneOversold:
		return fmt.Sprintf("Oversold Stocks (RSI < %g):", th.Oversold)
	case screener.ZoneOverbought:
		return fmt.Sprintf("Overbought Stocks (RSI > %g):", th.Overbought)
	case screener.ZoneNeutral:
		return fmt.Sprintf("Neutral Stocks (%g <= RSI <= %g):", th.Oversold, th.Overbought)
	default:
		return "Stocks without an RSI reading:"
	}
}

// FormatLedger renders the ledger table with its index column and totals.
func FormatLedger(entries []model.LedgerEntry, summary model.LedgerSummary) string {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString("Ledger is empty.\n")
	} else {
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tDate\tAsset\tAmount\tType")
		for i, e := range entries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, e.Date.Format("2006-01-02"), e.Asset, e.Amount.StringFixed(2), e.Type)
		}
		w.Flush()
	}
	b.WriteString("\n")
	b.WriteString(FormatSummary(summary))
	return b.String()
}

// FormatSummary renders the invested totals.
func FormatSummary(s model.LedgerSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Total Invested: $%s (%d entries)\n", money(s.TotalInvested), s.Entries))

	types := make([]string, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		b.WriteString(fmt.Sprintf("  %s: $%s\n", t, money(s.ByType[model.AssetType(t)])))
	}
	return b.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
