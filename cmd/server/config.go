package main

import "time"

// appConfig holds settings that belong to the application itself. Infrastructure
// packages load their own Config structs.
type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"intellicall"`

	// JWTSecret signs session tokens. There is no default: the server refuses to start without it.
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`

	// LoginRateLimit is the number of login attempts per minute per client IP.
	LoginRateLimit int `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
}
