package provider

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

// ChatCompleter is the go-openai call surface used by ChatInvoker.
type ChatCompleter = chatCompleter

var (
	WithChatCompleter = withChatCompleter
	Classify          = classify
	DataURL           = dataURL
)
