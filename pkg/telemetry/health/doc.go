// Package health provides liveness, readiness and version endpoints for the
// EDGAR proxy.
//
// # Endpoints
//
//   - GET /health: Liveness probe, always 200 while the process serves
//   - GET /ready: Readiness probe, runs every registered check
//   - GET /version: Build information
//
// # Liveness vs Readiness
//
// Liveness never consults component checks, so a missing frontend build
// does not get the process restarted. Readiness reports 503 until every
// check passes; the proxy registers:
//
//   - static: the asset directory and its index document exist
//   - user_agent: an upstream identification header is configured
//
// EDGAR itself is never probed; a readiness check must not generate
// upstream traffic.
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("static", health.StaticDirCheck(cfg.Static.Dir, cfg.Static.Index))
//	checker.RegisterCheck("user_agent", health.UserAgentCheck(cfg.Upstream.UserAgent))
//	health.Register(mux, checker, version, commit, buildTime)
package health
