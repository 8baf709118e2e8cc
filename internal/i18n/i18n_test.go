// ABOUTME: Tests for locale negotiation and key fallback
// ABOUTME: Verifies region variants match base catalogues and unknown keys echo back

package i18n

import "testing"

func TestNew_Negotiation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested []string
		want      string
	}{
		{"none", nil, "en"},
		{"exact", []string{"zh"}, "zh"},
		{"region variant", []string{"zh-CN"}, "zh"},
		{"unsupported falls back", []string{"xx-invalid", "ko"}, "en"},
		{"first supported wins", []string{"zh", "en"}, "zh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := New(tt.requested...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c.Locale() != tt.want {
				t.Errorf("Locale() = %q, want %q", c.Locale(), tt.want)
			}
		})
	}
}

func TestCatalog_T(t *testing.T) {
	t.Parallel()
	zh := MustNew("zh")
	if got := zh.T("delete"); got != "删除" {
		t.Errorf("T(delete) = %q", got)
	}
	if got := zh.T("rich-text-mode"); got != "Rich text" {
		t.Errorf("missing zh key should fall back to en, got %q", got)
	}
	if got := zh.T("no-such-key"); got != "no-such-key" {
		t.Errorf("unknown key = %q", got)
	}
	if got := MustNew("en").Tf("multi-select-count", 3); got != "3 selected" {
		t.Errorf("Tf = %q", got)
	}

	var nilCat *Catalog
	if nilCat.T("x") != "x" {
		t.Error("nil catalog should echo keys")
	}
}

func TestAvailable(t *testing.T) {
	t.Parallel()
	got := Available()
	if len(got) < 2 || got[0] != "en" {
		t.Errorf("Available() = %v", got)
	}
}
