package shell

// FAQEntry is one question and its answer.
type FAQEntry struct {
	Question string
	Answer   string
}

var faqs = []FAQEntry{
	{
		Question: "What is the Deep Learning Protocol?",
		Answer: "A hierarchical reasoning system that processes information through several layers:\n" +
			"  • Abstract core (deepest layer)\n" +
			"  • Depth layer (recursive processing)\n" +
			"  • Aim layer (goal-directed exploration)\n" +
			"  • State layer (state management)\n" +
			"  • Data loss prevention (DLP) guarding every state change",
	},
	{
		Question: "How do I run the program?",
		Answer: "Three ways:\n" +
			"  1. Interactive: dlprotocol (or dlprotocol menu) and follow the prompts\n" +
			"  2. One-shot: dlprotocol run --input \"...\" --goal \"...\" --depth 3\n" +
			"  3. From source: go run ./cmd/dlprotocol",
	},
	{
		Question: "What is Data Loss Prevention (DLP)?",
		Answer: "A protective layer that:\n" +
			"  • Detects meme/binary content (.png, .jpg, base64, 'meme' keyword)\n" +
			"  • Blocks suspicious state updates\n" +
			"  • Backs up the previous state to ./.dlp_backups/ with a timestamp",
	},
	{
		Question: "What are the core components?",
		Answer: "  • reasoning.Core: base reasoning pass\n" +
			"  • protocol.StateInterface: state get/update\n" +
			"  • protocol.AimInterface: goal setting and pursuit\n" +
			"  • protocol.DepthInterface: processing at N levels\n" +
			"  • protocol.Engine: the orchestrator tying them together",
	},
	{
		Question: "How does depth processing work?",
		Answer: "ProcessAtDepth(input, depth) applies the core reasoning pass depth times.\n" +
			"Example: depth=3 wraps the input in 3 layers of abstract processing",
	},
	{
		Question: "Can I ask custom questions?",
		Answer: "Yes. When you run the protocol you are prompted for:\n" +
			"  • Your question/input\n" +
			"  • Your goal\n" +
			"  • Processing depth (1-10)\n" +
			"  • Whether to ask another question",
	},
	{
		Question: "How do I run tests?",
		Answer: "Run: go test ./...\n" +
			"This covers the reasoning core, the guard, the backup store and the engine",
	},
	{
		Question: "What happens if I input meme-like content?",
		Answer: "The DLP layer:\n" +
			"  • Detects the suspicious content\n" +
			"  • Backs up your current state\n" +
			"  • Blocks the update\n" +
			"  • Sets the state to [DLP-BLOCKED]",
	},
	{
		Question: "How do I extend the project?",
		Answer: "1. Add a package under internal/\n" +
			"2. Add _test.go files next to it\n" +
			"3. Run go test ./... to verify",
	},
	{
		Question: "What are future enhancements?",
		Answer: "  • Neural network layer integration\n" +
			"  • Concurrent sessions\n" +
			"  • Structured persistence\n" +
			"  • Learned DLP rules\n" +
			"  • HTTP API",
	},
}

// FAQs returns the FAQ table in display order. Entry i is shown as number i+1.
func FAQs() []FAQEntry {
	out := make([]FAQEntry, len(faqs))
	copy(out, faqs)
	return out
}

// LookupFAQ returns the entry shown as number n.
func LookupFAQ(n int) (FAQEntry, bool) {
	if n < 1 || n > len(faqs) {
		return FAQEntry{}, false
	}
	return faqs[n-1], true
}
