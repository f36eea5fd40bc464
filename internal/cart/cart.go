// Package cart owns all mutation and query logic over the shopping cart:
// add/remove/quantity updates, derived totals, clear and checkout flows,
// and the persistence trigger after every mutation.
package cart

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kingrea/techshop/internal/catalog"
	"github.com/kingrea/techshop/internal/logbook"
)

// taxRate is the fixed 10% sales tax applied to the subtotal.
var taxRate = decimal.RequireFromString("0.10")

// LineItem is one product in the cart, with the product fields copied at
// add time so later catalog changes never affect an existing cart.
type LineItem struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
	Icon      string
	Quantity  int
}

// Subtotal returns price × quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Summary carries the derived cart totals. Tax is rounded to cents; the
// total is subtotal plus the rounded tax, so the displayed figures always
// add up.
type Summary struct {
	Subtotal  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
	ItemCount int
}

// Receipt records a completed checkout.
type Receipt struct {
	OrderID  string
	Summary  Summary
	Items    []LineItem
	PlacedAt time.Time
}

// Notifier receives user-visible notifications emitted by cart operations.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

// ConfirmFunc is a caller-supplied confirmation capability: it presents the
// prompt and reports the user's yes/no answer. Operations invoke it
// synchronously and apply no partial state change when it returns false.
type ConfirmFunc func(prompt string) bool

// Saver persists the cart after each mutation. Failures are best-effort:
// the store logs them and carries on with the in-memory state.
type Saver interface {
	SaveCart(items []LineItem) error
}

// Store is the single owner of cart state. All access goes through its
// operation set; operations run synchronously on the caller's goroutine.
type Store struct {
	catalog *catalog.Catalog
	items   []LineItem

	notifier        Notifier
	saver           Saver
	log             *logbook.Logbook
	now             func() time.Time
	newOrderID      func() string
	confirmCheckout bool
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithNotifier routes operation notifications to the given sink.
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithSaver installs the persistence adapter invoked after every mutation.
func WithSaver(saver Saver) StoreOption {
	return func(s *Store) {
		s.saver = saver
	}
}

// WithLogbook records save failures and order activity to the journey log.
func WithLogbook(log *logbook.Logbook) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// WithClock overrides the clock used for receipt timestamps.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithOrderIDs overrides order id generation.
func WithOrderIDs(gen func() string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newOrderID = gen
		}
	}
}

// WithCheckoutConfirmation enables the confirm-then-clear checkout variant.
// Off by default: the classic flow clears the cart unconditionally after
// the order summary acknowledgement.
func WithCheckoutConfirmation(enabled bool) StoreOption {
	return func(s *Store) {
		s.confirmCheckout = enabled
	}
}

// NewStore creates an empty cart over the given catalog.
func NewStore(cat *catalog.Catalog, opts ...StoreOption) *Store {
	s := &Store{
		catalog:    cat,
		notifier:   NotifierFunc(func(string) {}),
		now:        time.Now,
		newOrderID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Restore installs a previously persisted line-item sequence as the initial
// cart state. It does not notify or save; the loader has already vetted the
// items.
func (s *Store) Restore(items []LineItem) {
	s.items = make([]LineItem, len(items))
	copy(s.items, items)
}

// Add puts one unit of the product into the cart. An unknown product id is
// a silent no-op. Adding a product already in the cart bumps its quantity.
func (s *Store) Add(productID int) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return
	}
	if item := s.find(productID); item != nil {
		item.Quantity++
	} else {
		s.items = append(s.items, LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Icon:      product.Icon,
			Quantity:  1,
		})
	}
	s.save()
	s.notifier.Notify(fmt.Sprintf("%s added to cart!", product.Name))
}

// Remove deletes the line item for the product, if present.
func (s *Store) Remove(productID int) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.save()
	s.notifier.Notify("Item removed from cart")
}

// UpdateQuantity adds delta to the product's quantity. Driving the
// quantity to zero or below removes the line item entirely. An id not in
// the cart is a no-op.
func (s *Store) UpdateQuantity(productID, delta int) {
	item := s.find(productID)
	if item == nil {
		return
	}
	item.Quantity += delta
	if item.Quantity <= 0 {
		s.Remove(productID)
		return
	}
	s.save()
}

// Clear empties the cart after the user confirms. An already empty cart
// only emits a notification; a declined confirmation leaves the cart and
// the persisted snapshot untouched.
func (s *Store) Clear(confirm ConfirmFunc) {
	if len(s.items) == 0 {
		s.notifier.Notify("Cart is already empty")
		return
	}
	if confirm == nil || !confirm("Are you sure you want to clear your cart?") {
		return
	}
	s.items = nil
	s.save()
	s.notifier.Notify("Cart cleared")
}

// Checkout finalizes the order. On an empty cart it notifies and returns
// ok=false with no dialog. Otherwise it builds the receipt and empties the
// cart; the receipt is returned for the renderer to present as the order
// summary acknowledgement. When the confirm-then-clear variant is enabled,
// a declined confirmation preserves the cart.
func (s *Store) Checkout(confirm ConfirmFunc) (Receipt, bool) {
	if len(s.items) == 0 {
		s.notifier.Notify("Your cart is empty")
		return Receipt{}, false
	}
	summary := s.Summary()
	if s.confirmCheckout {
		prompt := fmt.Sprintf("Place this order for %s?", summary.Total.StringFixed(2))
		if confirm == nil || !confirm(prompt) {
			return Receipt{}, false
		}
	}
	receipt := Receipt{
		OrderID:  s.newOrderID(),
		Summary:  summary,
		Items:    s.Items(),
		PlacedAt: s.now(),
	}
	s.items = nil
	s.save()
	if s.log != nil {
		s.log.Info("order %s placed: %d item(s), total %s", receipt.OrderID, summary.ItemCount, summary.Total.StringFixed(2))
	}
	s.notifier.Notify("Order placed successfully!")
	return receipt, true
}

// Summary computes the derived totals for the current cart state.
func (s *Store) Summary() Summary {
	subtotal := decimal.Zero
	count := 0
	for _, item := range s.items {
		subtotal = subtotal.Add(item.Subtotal())
		count += item.Quantity
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Summary{
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		ItemCount: count,
	}
}

// Items returns a copy of the line items in display order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct line items.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) find(productID int) *LineItem {
	if idx := s.indexOf(productID); idx >= 0 {
		return &s.items[idx]
	}
	return nil
}

func (s *Store) indexOf(productID int) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) save() {
	if s.saver == nil {
		return
	}
	if err := s.saver.SaveCart(s.Items()); err != nil && s.log != nil {
		s.log.Error("cart: save failed: %v", err)
	}
}
