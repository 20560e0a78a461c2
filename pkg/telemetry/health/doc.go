// Package health serves liveness and readiness endpoints for the watch
// command.
//
// Liveness (/healthz) only reports that the process is up. Readiness
// (/readyz) runs the registered checks: typically that a refresh completed
// recently and that every enabled provider reported live data on the last
// pass. A failing check turns the response into a 503.
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("refresh", health.FreshnessCheck(lastRun, 10*time.Minute, time.Now))
//	health.Register(mux, checker, version)
package health
