// Package reasoning holds the innermost text transformation that every
// depth and aim operation in the protocol is built from.
package reasoning

// CorePrefix is the annotation prepended by a single pass of the core.
const CorePrefix = "[Abstract Core] Deep abstract processing: "

// Processor is anything that can run one pass of core reasoning.
type Processor interface {
	ProcessCoreReasoning(input string) string
}

// Core is the default Processor. It is stateless and safe to share.
type Core struct{}

// NewCore returns the default reasoning core.
func NewCore() *Core {
	return &Core{}
}

// ProcessCoreReasoning wraps input in the core annotation.
func (c *Core) ProcessCoreReasoning(input string) string {
	return CorePrefix + input
}

// Apply runs p over input depth times, feeding each result back in.
// A depth of zero or less returns input unchanged.
func Apply(p Processor, input string, depth int) string {
	processed := input
	for i := 0; i < depth; i++ {
		processed = p.ProcessCoreReasoning(processed)
	}
	return processed
}
