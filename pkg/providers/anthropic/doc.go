// Package anthropic fetches organization costs from the Anthropic Admin API
// cost report (GET /v1/organizations/cost_report) with an admin key.
//
// The cost report expresses amounts in the lowest currency unit (cents);
// each entry is divided by 100 once before it is summed.
package anthropic
