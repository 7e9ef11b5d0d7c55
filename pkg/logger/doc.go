// Package logger builds the application's *slog.Logger.
//
// New applies functional options on top of production defaults (JSON, info
// level, stdout). WithEnvironment picks the preset for the running
// environment. Context extractors registered with WithContextExtractors add
// request-scoped attributes, such as the request id, to every record logged
// with a *Context method.
//
// Middleware writes one access-log record per HTTP request.
package logger
