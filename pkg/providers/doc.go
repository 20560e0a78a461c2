// Package providers defines the contract shared by the organization cost
// clients (OpenAI, Anthropic) and the plumbing they have in common.
//
// # Overview
//
// Each client implements Fetcher. Given an admin key and a Window, a client
// returns Costs: the spend for the current UTC day and for the current UTC
// calendar month, in major currency units (dollars, not cents).
//
// # Normalization
//
// Providers report daily cost buckets. Every bucket in the window sums into
// MonthToDate; a bucket whose start date equals the UTC date of Window.End
// also sums into Today. Amounts that are missing or not numeric count as
// zero so a single malformed line item cannot blank out a report.
// Sums use decimal arithmetic and are only rounded when rendered.
//
// # Errors
//
// Every failure is returned as a *FetchError:
//
//   - non-2xx response: Message is "HTTP <code>: <body or reason>", StatusCode is set
//   - transport failure or timeout: StatusCode is 0
//   - malformed response body: Kind is KindParse
//
// Clients never retry. The next scheduled refresh is the retry.
package providers
