package settings

import "sync"

// Provenance contains source information for a loaded Settings.
type Provenance struct {
	Fields   []FieldProvenance
	Warnings []Warning
}

// FieldProvenance describes where a key's effective value came from.
type FieldProvenance struct {
	Key        string // Canonical key (e.g., "DATABASE_URL")
	SourceName string // Source identifier (e.g., "dotenv:.env")
	SourceKey  string // Exact origin (e.g., "env:CODEPILOT_DATABASE_URL")
	Secret     bool   // Whether the value is secret
	Default    bool   // Whether the documented default applied
}

var provenanceStore sync.Map

// GetProvenance returns provenance metadata for a loaded Settings.
// Thread-safe.
func GetProvenance(s *Settings) (*Provenance, bool) {
	if s == nil {
		return nil, false
	}

	value, ok := provenanceStore.Load(s)
	if !ok {
		return nil, false
	}

	prov, ok := value.(*Provenance)
	return prov, ok
}

func storeProvenance(s *Settings, prov *Provenance) {
	if s != nil && prov != nil {
		provenanceStore.Store(s, prov)
	}
}

func deleteProvenance(s *Settings) {
	if s != nil {
		provenanceStore.Delete(s)
	}
}
