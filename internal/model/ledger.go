package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AssetType is the ledger category of an investment.
type AssetType string

const (
	AssetCrypto AssetType = "Crypto"
	AssetStock  AssetType = "Stock"
)

// ParseAssetType accepts the ledger spelling, case-insensitively.
func ParseAssetType(s string) (AssetType, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(AssetCrypto)):
		return AssetCrypto, true
	case strings.EqualFold(s, string(AssetStock)):
		return AssetStock, true
	}
	return "", false
}

// LedgerEntry is one manual investment record.
type LedgerEntry struct {
	Date   time.Time       `json:"date"`
	Asset  string          `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
	Type   AssetType       `json:"type"`
}

// LedgerSummary totals the amounts invested.
type LedgerSummary struct {
	Entries       int
	TotalInvested decimal.Decimal
	ByType        map[AssetType]decimal.Decimal
}
