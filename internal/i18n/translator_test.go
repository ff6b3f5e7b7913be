package i18n

import "testing"

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New("en")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

func TestResolveByLocale(t *testing.T) {
	tr := newTranslator(t)

	if got := tr.T("en", "receipt.title", nil); got != "SALES RECEIPT" {
		t.Fatalf("en title = %q", got)
	}
	if got := tr.T("es", "receipt.title", nil); got != "RECIBO DE VENTA" {
		t.Fatalf("es title = %q", got)
	}
}

func TestInterpolation(t *testing.T) {
	tr := newTranslator(t)

	got := tr.T("en", "receipt.payment", map[string]string{"method": "cash"})
	if got != "Paid by cash" {
		t.Fatalf("got %q", got)
	}
}

func TestFallbacks(t *testing.T) {
	tr := newTranslator(t)

	// Unknown locale falls back to the default locale.
	if got := tr.T("fr", "receipt.title", nil); got != "SALES RECEIPT" {
		t.Fatalf("unknown locale: got %q", got)
	}
	// Missing key resolves to the key itself.
	if got := tr.T("en", "no.such.key", nil); got != "no.such.key" {
		t.Fatalf("missing key: got %q", got)
	}
}

func TestMatch(t *testing.T) {
	tr := newTranslator(t)

	cases := []struct {
		accept string
		want   string
	}{
		{"es", "es"},
		{"es-MX,es;q=0.9", "es"},
		{"en-US,en;q=0.8", "en"},
		{"de-DE", "en"},
		{"", "en"},
		{"not a language", "en"},
	}
	for _, tc := range cases {
		if got := tr.Match(tc.accept); got != tc.want {
			t.Errorf("Match(%q) = %q, want %q", tc.accept, got, tc.want)
		}
	}
}

func TestHasAndMessages(t *testing.T) {
	tr := newTranslator(t)

	if !tr.Has("en") || !tr.Has("es") {
		t.Fatal("shipped locales should be present")
	}
	if tr.Has("fr") {
		t.Fatal("fr is not shipped")
	}
	msgs := tr.Messages("es")
	if msgs["receipt.thanks"] != "¡Gracias por su compra!" {
		t.Fatalf("es messages = %q", msgs["receipt.thanks"])
	}
	// Unknown locale serves the fallback set.
	if tr.Messages("fr")["receipt.thanks"] != "Thank you for your purchase!" {
		t.Fatal("unknown locale should serve fallback messages")
	}
}
