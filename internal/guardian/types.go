// Package guardian classifies candidate protocol states before the engine
// adopts them. It flags content that looks like a pasted meme, image
// reference or inline binary payload.
//
// Architecture:
//
//	Guard (interface)
//	  └── HeuristicGuard: fixed substring and shape rules, no dependencies
//
// The engine only needs the boolean IsSuspicious; Analyze additionally
// reports which rules fired so the audit trail can record them.
package guardian

// Signal is a single rule that fired against a piece of content.
type Signal struct {
	// ID is a short, unique identifier (e.g., "png_extension").
	ID string

	// Category groups related signals ("image-reference", "binary-payload", "meme").
	Category string

	// Description is a human-readable explanation of why this signal fired.
	Description string
}

// Verdict is the transient result of classifying one string.
type Verdict struct {
	Suspicious bool
	Signals    []Signal
}

// SignalIDs returns the IDs of every signal in the verdict, in rule order.
func (v Verdict) SignalIDs() []string {
	ids := make([]string, 0, len(v.Signals))
	for _, s := range v.Signals {
		ids = append(ids, s.ID)
	}
	return ids
}

// Guard is the interface the protocol engine depends on.
type Guard interface {
	IsSuspicious(content string) bool
	Analyze(content string) Verdict
}
