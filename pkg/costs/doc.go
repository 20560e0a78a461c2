// Package costs reconciles live provider results with the previous snapshot.
//
// # Aggregation
//
// Aggregate is a pure function over its inputs. For every enabled provider:
//
//  1. a successful fetch is used as-is (Stale=false)
//  2. a failed fetch with a previous result carries that result forward with
//     Stale=true and Error set to the new failure; previous data never expires
//  3. a failed fetch without a previous result becomes a zero result with
//     Error set and Stale=false
//
// Providers that are disabled or have no admin key are not in the enabled
// list and are omitted from the snapshot entirely. Totals are the sums over
// the resulting map.
//
// # Collection
//
// Collect runs the configured fetchers, sequentially or in parallel, and
// turns each return into an Outcome.
package costs
