// Package settings loads and validates the runtime configuration of the
// codepilot application.
//
// Quick Start:
//
//	loader := settings.NewLoader().
//	    WithSource(sourcedotenv.New(".env", sourcedotenv.Options{})).
//	    WithSource(sourceenv.New(sourceenv.Options{Prefix: "CODEPILOT_"}))
//
//	s, warnings, err := loader.Load(context.Background())
//
// Sources are merged in order (later override earlier). Load either
// returns a fully validated, immutable Settings or a *LoadError
// aggregating every broken key; it never returns a partial Settings.
// Secret-bearing fields use the Secret type, which redacts itself when
// printed or serialized.
//
// See examples/basic for end-to-end usage.
package settings
