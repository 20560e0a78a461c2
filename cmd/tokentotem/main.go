// TokenTotem shows month-to-date OpenAI and Anthropic API spend in the macOS
// menu bar as a SwiftBar/xbar plugin.
//
// Each invocation polls the provider cost APIs with organization admin
// keys, falls back to the last cached values when a provider fails, and
// posts a desktop notification the first time spend crosses a budget
// warning threshold in a month.
//
// Usage:
//
//	# Render the menu bar (what SwiftBar runs)
//	tokentotem
//
//	# Same, as JSON
//	tokentotem status --format json
//
//	# Store an admin key (dialog on macOS, prompt elsewhere)
//	tokentotem set-key openai
//
//	# Set the monthly budget
//	tokentotem set-budget 250
//
//	# Refresh every 5 minutes and serve Prometheus metrics
//	tokentotem watch --metrics-addr :9464
package main

func main() {
	Execute()
}
