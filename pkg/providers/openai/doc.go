// Package openai fetches organization costs from the OpenAI Costs API
// (GET /v1/organization/costs) with an admin key.
//
// The API returns daily buckets whose results carry amount.value in dollars,
// so no unit scaling is applied. Project ids from the config are passed as
// repeated project_ids parameters.
//
// # Basic Usage
//
//	client := openai.NewClient(openai.Config{})
//	costs, err := client.FetchCosts(ctx, adminKey, providers.MonthToDate(now), providers.Filters{})
package openai
