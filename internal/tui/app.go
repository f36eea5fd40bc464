// internal/tui/app.go
//
// This is the storefront TUI. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen
//
// All cart mutations go through the cart.Store; the TUI only decides which
// screen is visible, presents the blocking confirm/acknowledge dialogs, and
// shows the notifications the store emits.

package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/kingrea/techshop/internal/cart"
	"github.com/kingrea/techshop/internal/catalog"
	"github.com/kingrea/techshop/internal/config"
	"github.com/kingrea/techshop/internal/kvstore"
	"github.com/kingrea/techshop/internal/logbook"
)

// appState represents which "screen" we're on
type appState int

const (
	stateStorefront      appState = iota // Product grid with the cart badge
	stateCart                            // Cart contents and totals
	stateConfirmClear                    // Modal yes/no before clearing the cart
	stateConfirmCheckout                 // Modal yes/no (confirm-then-clear variant only)
	stateReceipt                         // Blocking order summary acknowledgement
)

const toastDuration = 3 * time.Second

// toastExpiredMsg clears the notification footer once its time is up.
type toastExpiredMsg struct {
	seq int
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithCatalog overrides the catalog resolved from configuration.
func WithCatalog(cat *catalog.Catalog) AppOption {
	return func(a *App) {
		if cat != nil {
			a.catalog = cat
		}
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	config  *config.Config
	catalog *catalog.Catalog
	cart    *cart.Store
	logbook *logbook.Logbook

	// UI components
	productMenu   list.Model
	cartSelection int          // highlighted line item in the cart view
	receipt       cart.Receipt // pending order summary acknowledgement
	statusMsg     string       // toast notification in the footer
	toastSeq      int

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// productItem implements list.Item for catalog entries.
type productItem struct {
	product  catalog.Product
	currency string
}

func (i productItem) Title() string {
	return fmt.Sprintf("%s %s · %s%s", i.product.Icon, i.product.Name, i.currency, i.product.Price.StringFixed(2))
}
func (i productItem) Description() string { return i.product.Description }
func (i productItem) FilterValue() string { return i.product.Name }

// NewApp creates a new App instance. It loads the catalog, opens the
// journey log, and restores any persisted cart from the state directory.
func NewApp(workDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.New(workDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(cfg.LogbookPath())
	if err != nil {
		lb = nil // the log is best-effort; the shop still works without it
	}

	app := &App{
		state:   stateStorefront,
		config:  cfg,
		logbook: lb,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	if app.catalog == nil {
		if path := cfg.CatalogPath(); path != "" {
			app.catalog, err = catalog.Load(path)
			if err != nil {
				return nil, err
			}
		} else {
			app.catalog = catalog.Default()
		}
	}

	kv, err := kvstore.New(cfg.StateDir())
	if err != nil {
		return nil, err
	}
	snapshots := cart.NewSnapshotStore(kv, lb)
	app.cart = cart.NewStore(app.catalog,
		cart.WithNotifier(app),
		cart.WithSaver(snapshots),
		cart.WithLogbook(lb),
		cart.WithCheckoutConfirmation(cfg.CheckoutConfirm()),
	)
	if restored := snapshots.LoadCart(); len(restored) > 0 {
		app.cart.Restore(restored)
		lb.Info("Restored cart with %d item(s)", app.cart.Summary().ItemCount)
	}

	app.productMenu = buildProductMenu(app.catalog, cfg.Currency(), cfg.StoreName())
	lb.Info("Session opened · %d product(s) in catalog", app.catalog.Len())
	return app, nil
}

func buildProductMenu(cat *catalog.Catalog, currency, storeName string) list.Model {
	products := cat.List()
	items := make([]list.Item, 0, len(products))
	for _, p := range products {
		items = append(items, productItem{product: p, currency: currency})
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = fmt.Sprintf("⬡ %s", storeName)
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	return menu
}

// Notify implements cart.Notifier: store notifications surface as toasts.
func (a *App) Notify(message string) {
	a.statusMsg = message
	a.toastSeq++
}

// expireToast schedules the footer message to clear after toastDuration.
func (a *App) expireToast() tea.Cmd {
	seq := a.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.productMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-12))
		return a, nil

	case toastExpiredMsg:
		if msg.seq == a.toastSeq {
			a.statusMsg = ""
		}
		return a, nil

	case tea.KeyMsg:
		switch a.state {
		case stateStorefront:
			return a.updateStorefront(msg)
		case stateCart:
			return a.updateCart(msg)
		case stateConfirmClear:
			return a.updateConfirmClear(msg)
		case stateConfirmCheckout:
			return a.updateConfirmCheckout(msg)
		case stateReceipt:
			return a.updateReceipt(msg)
		}
	}

	var cmd tea.Cmd
	if a.state == stateStorefront {
		a.productMenu, cmd = a.productMenu.Update(msg)
	}
	return a, cmd
}

func (a *App) updateStorefront(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		a.logInfo("Session closed")
		return a, tea.Quit
	case "enter":
		if item, ok := a.productMenu.SelectedItem().(productItem); ok {
			a.cart.Add(item.product.ID)
			return a, a.expireToast()
		}
		return a, nil
	case "c":
		a.state = stateCart
		a.clampCartSelection()
		return a, nil
	}
	var cmd tea.Cmd
	a.productMenu, cmd = a.productMenu.Update(msg)
	return a, cmd
}

func (a *App) updateCart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := a.cart.Items()
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "esc", "c":
		a.state = stateStorefront
		return a, nil
	case "up", "k":
		if a.cartSelection > 0 {
			a.cartSelection--
		}
		return a, nil
	case "down", "j":
		if a.cartSelection < len(items)-1 {
			a.cartSelection++
		}
		return a, nil
	case "+", "right", "l":
		if item := a.selectedLine(items); item != nil {
			a.cart.UpdateQuantity(item.ProductID, 1)
		}
		return a, a.expireToast()
	case "-", "left", "h":
		if item := a.selectedLine(items); item != nil {
			a.cart.UpdateQuantity(item.ProductID, -1)
			a.clampCartSelection()
		}
		return a, a.expireToast()
	case "d", "x":
		if item := a.selectedLine(items); item != nil {
			a.cart.Remove(item.ProductID)
			a.clampCartSelection()
		}
		return a, a.expireToast()
	case "C":
		if len(items) == 0 {
			// Let the store emit its "already empty" notification;
			// no dialog is shown in that case.
			a.cart.Clear(nil)
			return a, a.expireToast()
		}
		a.state = stateConfirmClear
		return a, nil
	case "enter":
		return a.beginCheckout(items)
	}
	return a, nil
}

func (a *App) beginCheckout(items []cart.LineItem) (tea.Model, tea.Cmd) {
	if len(items) == 0 {
		// "Your cart is empty" comes from the store; no dialog either way.
		a.cart.Checkout(nil)
		return a, a.expireToast()
	}
	if a.config.CheckoutConfirm() {
		a.state = stateConfirmCheckout
		return a, nil
	}
	return a.placeOrder()
}

func (a *App) placeOrder() (tea.Model, tea.Cmd) {
	receipt, ok := a.cart.Checkout(func(string) bool { return true })
	if !ok {
		a.state = stateCart
		return a, a.expireToast()
	}
	a.receipt = receipt
	a.state = stateReceipt
	a.cartSelection = 0
	return a, a.expireToast()
}

func (a *App) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		a.cart.Clear(func(string) bool { return true })
		a.state = stateCart
		a.cartSelection = 0
		return a, a.expireToast()
	case "n", "N", "esc":
		// Declined: the cart is left untouched and nothing is persisted.
		a.state = stateCart
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) updateConfirmCheckout(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return a.placeOrder()
	case "n", "N", "esc":
		a.state = stateCart
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) updateReceipt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	// The acknowledgement is purely informational: any key dismisses it
	// and closes the cart view. The order was already placed.
	a.state = stateStorefront
	return a, nil
}

func (a *App) selectedLine(items []cart.LineItem) *cart.LineItem {
	if a.cartSelection < 0 || a.cartSelection >= len(items) {
		return nil
	}
	return &items[a.cartSelection]
}

func (a *App) clampCartSelection() {
	n := a.cart.Len()
	if n == 0 {
		a.cartSelection = 0
		return
	}
	if a.cartSelection >= n {
		a.cartSelection = n - 1
	}
	if a.cartSelection < 0 {
		a.cartSelection = 0
	}
}

func (a *App) money(value decimal.Decimal) string {
	return a.config.Currency() + value.StringFixed(2)
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
