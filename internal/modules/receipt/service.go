package receipt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/twalumbu/martpos/internal/i18n"
	"github.com/twalumbu/martpos/internal/modules/order"
	"github.com/twalumbu/martpos/internal/modules/settings"
	"github.com/twalumbu/martpos/internal/state"
)

const lineWidth = 40

// Printer sends rendered text to a physical printer.
type Printer interface {
	Print(ctx context.Context, text string) error
}

// Service renders and prints order receipts.
type Service interface {
	// Render serializes the order into printable receipt text, localized
	// to the given locale (empty means the app language preference).
	Render(ctx context.Context, orderID, locale string) (string, error)

	// Print renders the receipt and sends it to the printer. When printing
	// fails the text is still returned with printed=false so the caller
	// can fall back to the clipboard.
	Print(ctx context.Context, orderID, locale string) (text string, printed bool, err error)
}

type service struct {
	orders     order.Service
	settings   settings.Service
	translator *i18n.Translator
	appState   *state.Store
	printer    Printer
}

// NewService creates a new receipt service.
func NewService(orders order.Service, cfg settings.Service, translator *i18n.Translator, appState *state.Store, printer Printer) Service {
	return &service{
		orders:     orders,
		settings:   cfg,
		translator: translator,
		appState:   appState,
		printer:    printer,
	}
}

func (s *service) Render(ctx context.Context, orderID, locale string) (string, error) {
	o, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	if locale == "" || !s.translator.Has(locale) {
		locale = s.appState.Language()
	}
	return s.render(o, cfg, locale), nil
}

func (s *service) Print(ctx context.Context, orderID, locale string) (string, bool, error) {
	text, err := s.Render(ctx, orderID, locale)
	if err != nil {
		return "", false, err
	}
	if err := s.printer.Print(ctx, text); err != nil {
		zap.S().Warnw("receipt print failed, falling back to clipboard", "order_id", orderID, "err", err)
		return text, false, nil
	}
	return text, true, nil
}

func (s *service) render(o *order.Order, cfg *settings.Settings, locale string) string {
	t := func(key string, args map[string]string) string {
		return s.translator.T(locale, key, args)
	}

	var b strings.Builder
	center(&b, cfg.StoreName)
	center(&b, t("receipt.title", nil))
	rule(&b)
	line(&b, t("receipt.order", map[string]string{"id": shortID(o.ID.String())}), "")
	line(&b, t("receipt.date", nil), o.CreatedAt.Local().Format(time.DateTime))
	if sess := s.appState.Session(); sess != nil {
		line(&b, t("receipt.cashier", nil), sess.Username)
	}
	rule(&b)
	for _, item := range o.Items {
		b.WriteString(item.ProductName)
		b.WriteByte('\n')
		qty := fmt.Sprintf("  %d x %s %s", item.Quantity, item.UnitPrice.StringFixed(2), cfg.Currency)
		line(&b, qty, item.TotalPrice.StringFixed(2))
	}
	rule(&b)
	line(&b, t("receipt.subtotal", nil), o.Subtotal.StringFixed(2))
	line(&b, t("receipt.tax", nil), o.Tax.StringFixed(2))
	line(&b, t("receipt.total", nil), o.Total.StringFixed(2)+" "+cfg.Currency)
	if o.PaymentMethod != "" {
		method := t("payment."+string(o.PaymentMethod), nil)
		line(&b, t("receipt.payment", map[string]string{"method": method}), "")
	}
	rule(&b)
	center(&b, t("receipt.thanks", nil))
	if cfg.ReceiptFooter != "" {
		center(&b, cfg.ReceiptFooter)
	}
	return b.String()
}

func line(b *strings.Builder, left, right string) {
	pad := lineWidth - len([]rune(left)) - len([]rune(right))
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(right)
	b.WriteByte('\n')
}

func center(b *strings.Builder, s string) {
	pad := (lineWidth - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(s)
	b.WriteByte('\n')
}

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", lineWidth))
	b.WriteByte('\n')
}

func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
