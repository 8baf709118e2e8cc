// ABOUTME: Tests for tag and AI-command trigger detection
// ABOUTME: Table-driven over preceding-text shapes including unicode and whitespace edges

package editor

import "testing"

func TestDetectTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		preceding string
		wantQuery string
		wantOK    bool
	}{
		{"token", "note #abc", "abc", true},
		{"bare hash", "note #", "", true},
		{"trailing space closes", "note #abc ", "", false},
		{"trailing nbsp closes", "note #abc\u00a0", "", false},
		{"lower-cased", "#WorkItems", "workitems", true},
		{"hierarchy", "see #work/proj", "work/proj", true},
		{"last token wins", "#one #two", "two", true},
		{"no hash", "plain text", "", false},
		{"empty", "", "", false},
		{"space inside token", "#abc def", "", false},
		{"double hash", "##", "", true},
		{"unicode", "#café", "café", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, ok := DetectTag(tt.preceding)
			if ok != tt.wantOK || q != tt.wantQuery {
				t.Errorf("DetectTag(%q) = (%q, %v), want (%q, %v)", tt.preceding, q, ok, tt.wantQuery, tt.wantOK)
			}
		})
	}
}

func TestDetectAICommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		preceding string
		want      bool
	}{
		{"x/", true},
		{"hello/", true},
		{"日/", true},
		{"a /", false},
		{"/", false},
		{"", false},
		{"a/b", false},
		{"tab\t/", false},
	}

	for _, tt := range tests {
		t.Run(tt.preceding, func(t *testing.T) {
			t.Parallel()
			if got := DetectAICommand(tt.preceding); got != tt.want {
				t.Errorf("DetectAICommand(%q) = %v, want %v", tt.preceding, got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		preceding string
		ai        bool
		want      Trigger
	}{
		{"tag", "#ab", true, Trigger{Kind: TriggerTag, Query: "ab"}},
		{"ai enabled", "go/", true, Trigger{Kind: TriggerAI}},
		{"ai disabled", "go/", false, Trigger{}},
		{"tag wins over slash", "#a/", true, Trigger{Kind: TriggerTag, Query: "a/"}},
		{"none", "hello", true, Trigger{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Detect(tt.preceding, tt.ai); got != tt.want {
				t.Errorf("Detect(%q, %v) = %+v, want %+v", tt.preceding, tt.ai, got, tt.want)
			}
		})
	}
}

func TestTriggerKindString(t *testing.T) {
	t.Parallel()
	if TriggerTag.String() != "tag" || TriggerAI.String() != "ai" || TriggerNone.String() != "none" {
		t.Error("unexpected TriggerKind names")
	}
}
