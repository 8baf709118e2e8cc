// ABOUTME: Pure trigger detection over the text preceding the cursor
// ABOUTME: Decides between tag autocomplete (#query), AI command (x/) and nothing

package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TriggerKind names which popover, if any, the preceding text asks for.
type TriggerKind int

const (
	TriggerNone TriggerKind = iota
	TriggerTag
	TriggerAI
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerTag:
		return "tag"
	case TriggerAI:
		return "ai"
	default:
		return "none"
	}
}

// Trigger is the result of one detection pass.
type Trigger struct {
	Kind TriggerKind
	// Query is the lower-cased tag prefix for TriggerTag; "" for a bare '#'.
	Query string
}

// DetectTag reports whether preceding ends in an open "#token" and returns
// the token without its '#', lower-cased.
func DetectTag(preceding string) (string, bool) {
	idx := tagStart(preceding)
	if idx < 0 {
		return "", false
	}
	return strings.ToLower(preceding[idx+1:]), true
}

// tagStart returns the byte index of the '#' opening the trailing tag token
// of s, or -1. The token after '#' may not contain whitespace.
func tagStart(s string) int {
	idx := strings.LastIndexByte(s, '#')
	if idx < 0 {
		return -1
	}
	if strings.IndexFunc(s[idx+1:], unicode.IsSpace) >= 0 {
		return -1
	}
	return idx
}

// DetectAICommand reports whether preceding ends in '/' directly after a
// non-whitespace character.
func DetectAICommand(preceding string) bool {
	if !strings.HasSuffix(preceding, "/") {
		return false
	}
	before := preceding[:len(preceding)-1]
	if before == "" {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(before)
	return !unicode.IsSpace(r)
}

// Detect classifies preceding. Tag triggers win over AI triggers; aiEnabled
// gates the AI check.
func Detect(preceding string, aiEnabled bool) Trigger {
	if q, ok := DetectTag(preceding); ok {
		return Trigger{Kind: TriggerTag, Query: q}
	}
	if aiEnabled && DetectAICommand(preceding) {
		return Trigger{Kind: TriggerAI}
	}
	return Trigger{}
}
