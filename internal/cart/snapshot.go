package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kingrea/techshop/internal/kvstore"
	"github.com/kingrea/techshop/internal/logbook"
)

// StorageKey is the fixed key the cart snapshot lives under.
const StorageKey = "cart"

func init() {
	// Persisted snapshots keep prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// snapshotRecord is the wire form of one line item.
type snapshotRecord struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Icon     string          `json:"icon"`
	Quantity int             `json:"quantity"`
}

// SnapshotStore round-trips cart state through the key-value store so a
// cart survives process restarts. Loading is best-effort: anything it
// cannot make sense of degrades to an empty cart with a logged warning.
type SnapshotStore struct {
	kv  *kvstore.Store
	log *logbook.Logbook
}

// NewSnapshotStore builds the persistence adapter over a key-value store.
func NewSnapshotStore(kv *kvstore.Store, log *logbook.Logbook) *SnapshotStore {
	return &SnapshotStore{kv: kv, log: log}
}

// SaveCart serializes the ordered line-item sequence under the fixed key,
// overwriting any previous snapshot. Implements the cart Saver.
func (s *SnapshotStore) SaveCart(items []LineItem) error {
	records := make([]snapshotRecord, 0, len(items))
	for _, item := range items {
		records = append(records, snapshotRecord{
			ID:       item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Icon:     item.Icon,
			Quantity: item.Quantity,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cart: encode snapshot: %w", err)
	}
	return s.kv.Put(StorageKey, data)
}

// LoadCart reads the persisted snapshot and returns the initial cart
// state. A missing key is an empty cart. Malformed or invalid content is
// also an empty cart, with a warning in the logbook.
func (s *SnapshotStore) LoadCart() []LineItem {
	data, err := s.kv.Get(StorageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) && s.log != nil {
			s.log.Warn("cart: snapshot unreadable, starting empty: %v", err)
		}
		return nil
	}
	items, err := decodeSnapshot(data)
	if err != nil {
		if s.log != nil {
			s.log.Warn("cart: discarding invalid snapshot: %v", err)
		}
		return nil
	}
	return items
}

func decodeSnapshot(data []byte) ([]LineItem, error) {
	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	items := make([]LineItem, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	for i, rec := range records {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("record %d: id must be > 0", i)
		}
		if rec.Quantity < 1 {
			return nil, fmt.Errorf("record %d: quantity must be >= 1", i)
		}
		if rec.Price.IsNegative() {
			return nil, fmt.Errorf("record %d: negative price", i)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate product id %d", i, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		items = append(items, LineItem{
			ProductID: rec.ID,
			Name:      rec.Name,
			Price:     rec.Price,
			Icon:      rec.Icon,
			Quantity:  rec.Quantity,
		})
	}
	return items, nil
}
