package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(1, 2)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			MarginTop(1)
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
)

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}

	var content string
	switch a.state {
	case stateStorefront:
		content = a.renderStorefront(width)
	case stateCart:
		content = a.renderCart(width)
	case stateConfirmClear:
		content = a.renderConfirmDialog("Are you sure you want to clear your cart?")
	case stateConfirmCheckout:
		content = a.renderConfirmDialog(fmt.Sprintf(
			"Place this order for %s?", a.money(a.cart.Summary().Total)))
	case stateReceipt:
		content = a.renderReceipt()
	}

	sections := []string{
		headerStyle.Render(fmt.Sprintf("⬡ %s", strings.ToUpper(a.config.StoreName()))),
		content,
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, dimStyle.MarginTop(1).Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderStorefront(width int) string {
	summary := a.cart.Summary()
	badge := fmt.Sprintf("🛒 %d item(s) · %s", summary.ItemCount, a.money(summary.Total))
	header := titleStyle.Render(badge)
	hint := hintStyle.Render("Enter → add to cart    c → view cart    q → quit")
	body := lipgloss.JoinVertical(lipgloss.Left, header, a.productMenu.View(), hint)
	return panelStyle.Width(max(30, width-2)).Render(body)
}

func (a *App) renderCart(width int) string {
	items := a.cart.Items()
	title := titleStyle.Render(fmt.Sprintf("Your Cart (%d)", len(items)))
	var body string
	if len(items) == 0 {
		body = dimStyle.Render("Your cart is empty")
	} else {
		var rows []string
		for i, item := range items {
			line1 := fmt.Sprintf("%s %s", item.Icon, item.Name)
			line2 := fmt.Sprintf("%s each · qty %d · %s",
				a.money(item.Price), item.Quantity, a.money(item.Subtotal()))
			row := strings.Join([]string{line1, line2}, "\n")
			if i == a.cartSelection {
				rows = append(rows, selectedStyle.Render(row))
			} else {
				rows = append(rows, lipgloss.NewStyle().Padding(0, 1).Render(row))
			}
		}
		body = strings.Join(rows, "\n")
	}
	hint := hintStyle.Render(strings.Join([]string{
		"+/- → quantity    d → remove    C → clear cart",
		"Enter → checkout    Esc → keep shopping",
	}, "\n"))
	content := lipgloss.JoinVertical(lipgloss.Left, title, body, a.renderSummaryPanel(), hint)
	return panelStyle.Width(max(30, width-2)).Render(content)
}

func (a *App) renderSummaryPanel() string {
	summary := a.cart.Summary()
	lines := []string{
		fmt.Sprintf("Subtotal: %s", a.money(summary.Subtotal)),
		fmt.Sprintf("Tax (10%%): %s", a.money(summary.Tax)),
		fmt.Sprintf("Total: %s", a.money(summary.Total)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderConfirmDialog(prompt string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		prompt,
		hintStyle.Render("y → yes    n → no"),
	)
	return dialogStyle.Render(body)
}

func (a *App) renderReceipt() string {
	lines := []string{
		titleStyle.Render("Thank you for your purchase!"),
		"",
		fmt.Sprintf("Order %s", a.receipt.OrderID),
	}
	for _, item := range a.receipt.Items {
		lines = append(lines, fmt.Sprintf("  %s %s ×%d · %s",
			item.Icon, item.Name, item.Quantity, a.money(item.Subtotal())))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Subtotal: %s", a.money(a.receipt.Summary.Subtotal)),
		fmt.Sprintf("Tax: %s", a.money(a.receipt.Summary.Tax)),
		fmt.Sprintf("Total: %s", a.money(a.receipt.Summary.Total)),
		"",
		"Your order has been placed successfully!",
		hintStyle.Render("Press any key to continue"),
	)
	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(5)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := titleStyle.Render(fmt.Sprintf("LOG · %s", fileName))
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
