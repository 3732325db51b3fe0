package settings

// Redacted is the token substituted for secret values in all output.
const Redacted = "***redacted***"

// Secret holds an opaque credential. It renders as Redacted through
// fmt, encoding/json, and encoding.TextMarshaler, so a Secret cannot
// reach logs or serialized output by accident. Call Reveal to obtain
// the raw value.
type Secret string

// Reveal returns the raw secret value.
func (s Secret) Reveal() string {
	return string(s)
}

// IsZero reports whether the secret is empty.
func (s Secret) IsZero() bool {
	return s == ""
}

// String implements fmt.Stringer. Always returns Redacted.
func (s Secret) String() string {
	return Redacted
}

// GoString implements fmt.GoStringer, covering the %#v verb.
func (s Secret) GoString() string {
	return "settings.Secret(" + Redacted + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (s Secret) MarshalText() ([]byte, error) {
	return []byte(Redacted), nil
}

// MarshalJSON implements json.Marshaler.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + Redacted + `"`), nil
}
