// Package httpserver runs an http.Server until its context is cancelled or the
// process receives SIGINT/SIGTERM, then shuts it down gracefully.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil { ... }
//
// HealthCheckHandler builds liveness and readiness endpoints from probe functions.
package httpserver
