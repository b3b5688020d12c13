package i18n

import "testing"

func TestUnknownLocaleFallsBackToDefault(t *testing.T) {
	l := New("fr")
	if l.Language() != DefaultLanguage {
		t.Errorf("Language() = %q, want %q", l.Language(), DefaultLanguage)
	}
}

func TestUnresolvedKeyReturnsKey(t *testing.T) {
	l := New("en")
	if got := l.T("no.such.key"); got != "no.such.key" {
		t.Errorf("T(no.such.key) = %q, want the key itself", got)
	}
}

func TestSetLanguageIdempotent(t *testing.T) {
	l := New("en")
	l.SetLanguage("es")
	l.SetLanguage("es")
	if l.Language() != "es" {
		t.Errorf("Language() = %q, want es", l.Language())
	}
	if got := l.T("tab.dashboard"); got != "Panel" {
		t.Errorf("T(tab.dashboard) = %q, want Panel", got)
	}
}

func TestMissingKeyInLocaleFallsBackToEnglish(t *testing.T) {
	// Every key present in en should resolve in es, either directly
	// or through the English fallback.
	l := New("es")
	for key := range messages["en"] {
		if got := l.T(key); got == key {
			t.Errorf("T(%q) fell through to the key", key)
		}
	}
}

func TestLocaleTablesCoverSameKeys(t *testing.T) {
	en, es := messages["en"], messages["es"]
	for key := range en {
		if _, ok := es[key]; !ok {
			t.Errorf("es table missing key %q", key)
		}
	}
	for key := range es {
		if _, ok := en[key]; !ok {
			t.Errorf("en table missing key %q", key)
		}
	}
}
