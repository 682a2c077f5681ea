package guardian

import (
	"strings"
	"unicode/utf16"
)

// MaxSingleLineChars is the longest newline-free content accepted before it
// is treated as a pasted binary or image payload. Length is measured in
// UTF-16 code units, so characters outside the BMP count twice.
const MaxSingleLineChars = 200

// HeuristicGuard detects meme-like content using fixed string rules.
// It runs synchronously and never fails.
type HeuristicGuard struct {
	rules []heuristicRule
}

// heuristicRule is a single detection pattern. match receives the original
// content and its lower-cased form.
type heuristicRule struct {
	signal Signal
	match  func(content, lower string) bool
}

// NewHeuristicGuard creates a guard with the built-in rule set.
func NewHeuristicGuard() *HeuristicGuard {
	g := &HeuristicGuard{}
	g.rules = g.buildRules()
	return g
}

// IsSuspicious reports whether content should be kept out of the protocol state.
func (g *HeuristicGuard) IsSuspicious(content string) bool {
	return g.Analyze(content).Suspicious
}

// Analyze runs every rule against content. Empty content never fires.
func (g *HeuristicGuard) Analyze(content string) Verdict {
	if content == "" {
		return Verdict{}
	}
	lower := strings.ToLower(content)

	var signals []Signal
	for _, r := range g.rules {
		if r.match(content, lower) {
			signals = append(signals, r.signal)
		}
	}

	return Verdict{
		Suspicious: len(signals) > 0,
		Signals:    signals,
	}
}

func (g *HeuristicGuard) buildRules() []heuristicRule {
	rules := make([]heuristicRule, 0, len(triggers)+1)
	for _, t := range triggers {
		rules = append(rules, heuristicRule{
			signal: t.signal,
			match:  containsLower(t.substr),
		})
	}

	// Large single-line payloads usually mean pasted binary data.
	rules = append(rules, heuristicRule{
		signal: Signal{
			ID:          "single_line_payload",
			Category:    "binary-payload",
			Description: "Content is a single line longer than 200 characters",
		},
		match: func(content, _ string) bool {
			return utf16Len(content) > MaxSingleLineChars &&
				!strings.Contains(content, "\n")
		},
	})

	return rules
}

// ---------------------------------------------------------------------------
// Trigger definitions
// ---------------------------------------------------------------------------

type trigger struct {
	substr string
	signal Signal
}

var triggers = []trigger{
	{"meme", Signal{
		ID:          "meme_keyword",
		Category:    "meme",
		Description: "Content mentions 'meme'",
	}},
	{".png", Signal{
		ID:          "png_extension",
		Category:    "image-reference",
		Description: "Content references a .png file",
	}},
	{".jpg", Signal{
		ID:          "jpg_extension",
		Category:    "image-reference",
		Description: "Content references a .jpg file",
	}},
	{".jpeg", Signal{
		ID:          "jpeg_extension",
		Category:    "image-reference",
		Description: "Content references a .jpeg file",
	}},
	{"data:image", Signal{
		ID:          "data_uri_image",
		Category:    "binary-payload",
		Description: "Content contains an inline image data URI",
	}},
	{"base64,", Signal{
		ID:          "base64_marker",
		Category:    "binary-payload",
		Description: "Content contains a base64 payload marker",
	}},
}

// Triggers returns the fixed substrings matched case-insensitively.
func Triggers() []string {
	out := make([]string, len(triggers))
	for i, t := range triggers {
		out[i] = t.substr
	}
	return out
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r1, _ := utf16.EncodeRune(r); r1 != '\uFFFD' {
			n += 2
		} else {
			n++
		}
	}
	return n
}

func containsLower(substr string) func(string, string) bool {
	return func(_, lower string) bool {
		return strings.Contains(lower, substr)
	}
}
