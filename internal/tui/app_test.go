package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/techshop/internal/config"
)

func newTestApp(t *testing.T, workDir string, opts ...AppOption) *App {
	t.Helper()
	if err := config.InitShopDir(workDir); err != nil {
		t.Fatalf("init shop dir: %v", err)
	}
	app, err := NewApp(workDir, opts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func press(t *testing.T, app *App, msg tea.KeyMsg) *App {
	t.Helper()
	model, _ := app.Update(msg)
	next, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	return next
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAddToCartFromStorefront(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if got := app.cart.Summary().ItemCount; got != 1 {
		t.Fatalf("item count = %d, want 1", got)
	}
	if app.statusMsg != "Wireless Headphones added to cart!" {
		t.Fatalf("unexpected toast %q", app.statusMsg)
	}
}

func TestClearCartConfirmFlow(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = press(t, app, keyRune('c'))
	if app.state != stateCart {
		t.Fatalf("expected cart view, got state %d", app.state)
	}

	app = press(t, app, keyRune('C'))
	if app.state != stateConfirmClear {
		t.Fatalf("expected clear confirmation, got state %d", app.state)
	}

	// Declining leaves the cart alone.
	app = press(t, app, keyRune('n'))
	if app.state != stateCart {
		t.Fatalf("expected return to cart view, got state %d", app.state)
	}
	if got := app.cart.Summary().ItemCount; got != 1 {
		t.Fatalf("declined clear changed the cart: %d items", got)
	}

	// Confirming empties it.
	app = press(t, app, keyRune('C'))
	app = press(t, app, keyRune('y'))
	if got := app.cart.Summary().ItemCount; got != 0 {
		t.Fatalf("confirmed clear left %d items", got)
	}
	if app.statusMsg != "Cart cleared" {
		t.Fatalf("unexpected toast %q", app.statusMsg)
	}
}

func TestClearOnEmptyCartSkipsDialog(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app = press(t, app, keyRune('c'))
	app = press(t, app, keyRune('C'))
	if app.state != stateCart {
		t.Fatalf("empty cart must not open the dialog, got state %d", app.state)
	}
	if app.statusMsg != "Cart is already empty" {
		t.Fatalf("unexpected toast %q", app.statusMsg)
	}
}

func TestQuantityKeysInCartView(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = press(t, app, keyRune('c'))

	app = press(t, app, keyRune('+'))
	if got := app.cart.Items()[0].Quantity; got != 2 {
		t.Fatalf("quantity = %d, want 2", got)
	}

	app = press(t, app, keyRune('-'))
	app = press(t, app, keyRune('-'))
	if got := app.cart.Len(); got != 0 {
		t.Fatalf("driving quantity to zero must remove the line, %d left", got)
	}
}

func TestCheckoutFlow(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter}) // Wireless Headphones 79.99
	app = press(t, app, keyRune('c'))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.state != stateReceipt {
		t.Fatalf("expected receipt acknowledgement, got state %d", app.state)
	}
	if got := app.cart.Summary().ItemCount; got != 0 {
		t.Fatalf("checkout left %d items in the cart", got)
	}
	if app.receipt.OrderID == "" {
		t.Fatalf("receipt is missing an order id")
	}
	if got := app.receipt.Summary.Total.StringFixed(2); got != "87.99" {
		t.Fatalf("receipt total = %s, want 87.99", got)
	}

	// Any key acknowledges and closes the cart view.
	app = press(t, app, keyRune(' '))
	if app.state != stateStorefront {
		t.Fatalf("acknowledgement must return to the storefront, got state %d", app.state)
	}
}

func TestCheckoutOnEmptyCart(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	app = press(t, app, keyRune('c'))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.state != stateCart {
		t.Fatalf("empty checkout must stay in the cart view, got state %d", app.state)
	}
	if app.statusMsg != "Your cart is empty" {
		t.Fatalf("unexpected toast %q", app.statusMsg)
	}
}

func TestCheckoutConfirmVariant(t *testing.T) {
	workDir := t.TempDir()
	if err := config.InitShopDir(workDir); err != nil {
		t.Fatalf("init shop dir: %v", err)
	}
	configYAML := "version: 1\ncheckout:\n  confirm: true\n"
	if err := os.WriteFile(filepath.Join(workDir, config.ShopDirName, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	app, err := NewApp(workDir)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = press(t, app, keyRune('c'))
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.state != stateConfirmCheckout {
		t.Fatalf("expected checkout confirmation, got state %d", app.state)
	}

	app = press(t, app, keyRune('n'))
	if got := app.cart.Summary().ItemCount; got != 1 {
		t.Fatalf("declined checkout changed the cart: %d items", got)
	}

	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = press(t, app, keyRune('y'))
	if app.state != stateReceipt {
		t.Fatalf("expected receipt after confirmation, got state %d", app.state)
	}
	if got := app.cart.Summary().ItemCount; got != 0 {
		t.Fatalf("confirmed checkout left %d items", got)
	}
}

func TestCartPersistsAcrossSessions(t *testing.T) {
	workDir := t.TempDir()
	app := newTestApp(t, workDir)
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if got := app.cart.Summary().ItemCount; got != 2 {
		t.Fatalf("item count = %d, want 2", got)
	}

	again, err := NewApp(workDir)
	if err != nil {
		t.Fatalf("reopen app: %v", err)
	}
	if got := again.cart.Summary().ItemCount; got != 2 {
		t.Fatalf("restored item count = %d, want 2", got)
	}
	items := again.cart.Items()
	if len(items) != 1 || items[0].ProductID != 1 {
		t.Fatalf("unexpected restored items: %+v", items)
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	if view := app.View(); view == "" {
		t.Fatalf("expected non-empty view")
	}
	app = press(t, app, keyRune('c'))
	if view := app.View(); view == "" {
		t.Fatalf("expected non-empty cart view")
	}
}
