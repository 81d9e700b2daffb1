package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"StreetDash/internal/model"
)

var (
	ErrInvalidEntry    = errors.New("invalid ledger entry")
	ErrIndexOutOfRange = errors.New("ledger index out of range")
)

// Book owns the ledger entries and writes every change through to its Store.
// It is safe for concurrent use.
type Book struct {
	mu      sync.Mutex
	store   Store
	entries []model.LedgerEntry
}

// Open loads the ledger from store.
func Open(store Store) (*Book, error) {
	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return &Book{store: store, entries: entries}, nil
}

// Entries returns a copy of the entries in insertion order.
func (b *Book) Entries() []model.LedgerEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.LedgerEntry(nil), b.entries...)
}

// Len returns the number of entries.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// NewEntry parses user input into a validated entry. The asset is
// upper-cased; the date must be YYYY-MM-DD.
func NewEntry(date, asset, amount, typ string) (model.LedgerEntry, error) {
	date, asset, amount = strings.TrimSpace(date), strings.TrimSpace(asset), strings.TrimSpace(amount)
	if date == "" || asset == "" || amount == "" {
		return model.LedgerEntry{}, fmt.Errorf("%w: date, asset and amount are required", ErrInvalidEntry)
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidEntry, date)
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return model.LedgerEntry{}, fmt.Errorf("%w: amount %q is not a number", ErrInvalidEntry, amount)
	}
	t := model.AssetCrypto
	if strings.TrimSpace(typ) != "" {
		var ok bool
		if t, ok = model.ParseAssetType(typ); !ok {
			return model.LedgerEntry{}, fmt.Errorf("%w: type must be Crypto or Stock, got %q", ErrInvalidEntry, typ)
		}
	}
	e := model.LedgerEntry{Date: d, Asset: asset, Amount: amt, Type: t}
	return e, validate(&e)
}

func validate(e *model.LedgerEntry) error {
	e.Asset = strings.ToUpper(strings.TrimSpace(e.Asset))
	switch {
	case e.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	case e.Asset == "":
		return fmt.Errorf("%w: asset is required", ErrInvalidEntry)
	case !e.Amount.IsPositive():
		return fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	}
	if _, ok := model.ParseAssetType(string(e.Type)); !ok {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEntry, e.Type)
	}
	return nil
}

// Append validates e, adds it and persists the ledger. The entry is not
// kept when persisting fails.
func (b *Book) Append(e model.LedgerEntry) error {
	if err := validate(&e); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, e)
	if err := b.store.Save(b.entries); err != nil {
		b.entries = b.entries[:len(b.entries)-1]
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// Remove deletes the entry at index and persists the ledger.
func (b *Book) Remove(index int) (model.LedgerEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index < 0 || index >= len(b.entries) {
		return model.LedgerEntry{}, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(b.entries))
	}
	removed := b.entries[index]
	next := make([]model.LedgerEntry, 0, len(b.entries)-1)
	next = append(next, b.entries[:index]...)
	next = append(next, b.entries[index+1:]...)
	if err := b.store.Save(next); err != nil {
		return model.LedgerEntry{}, fmt.Errorf("save ledger: %w", err)
	}
	b.entries = next
	return removed, nil
}

// Persist writes the current entries to the store.
func (b *Book) Persist() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Save(b.entries)
}

// Summary totals the invested amounts overall and per asset type.
func (b *Book) Summary() model.LedgerSummary {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := model.LedgerSummary{
		Entries:       len(b.entries),
		TotalInvested: decimal.Zero,
		ByType:        make(map[model.AssetType]decimal.Decimal),
	}
	for _, e := range b.entries {
		s.TotalInvested = s.TotalInvested.Add(e.Amount)
		s.ByType[e.Type] = s.ByType[e.Type].Add(e.Amount)
	}
	return s
}

// Close closes the underlying store.
func (b *Book) Close() error {
	return b.store.Close()
}
