package settings

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestSecret_Reveal(t *testing.T) {
	s := Secret("real-credential")

	if s.Reveal() != "real-credential" {
		t.Errorf("Reveal() = %q, want %q", s.Reveal(), "real-credential")
	}
}

func TestSecret_IsZero(t *testing.T) {
	if !Secret("").IsZero() {
		t.Error("empty secret should be zero")
	}
	if Secret("x").IsZero() {
		t.Error("non-empty secret should not be zero")
	}
}

func TestSecret_NeverPrintsRawValue(t *testing.T) {
	s := Secret("real-credential")

	outputs := map[string]string{
		"String":         s.String(),
		"Sprintf %v":     fmt.Sprintf("%v", s),
		"Sprintf %s":     fmt.Sprintf("%s", s),
		"Sprintf %+v":    fmt.Sprintf("%+v", s),
		"Sprintf %#v":    fmt.Sprintf("%#v", s),
		"Sprint":         fmt.Sprint(s),
		"concat via %q?": fmt.Sprintf("%q", s),
	}

	for name, out := range outputs {
		if strings.Contains(out, "real-credential") {
			t.Errorf("%s leaked the raw secret: %q", name, out)
		}
		if !strings.Contains(out, Redacted) {
			t.Errorf("%s does not contain the redaction token: %q", name, out)
		}
	}
}

func TestSecret_JSONMarshalRedacts(t *testing.T) {
	payload := struct {
		APIKey Secret `json:"api_key"`
		Name   string `json:"name"`
	}{
		APIKey: Secret("real-credential"),
		Name:   "codepilot",
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	if strings.Contains(string(data), "real-credential") {
		t.Errorf("JSON output leaked the raw secret: %s", data)
	}
	if !strings.Contains(string(data), Redacted) {
		t.Errorf("JSON output missing redaction token: %s", data)
	}
}

func TestSecret_MarshalText(t *testing.T) {
	data, err := Secret("real-credential").MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(data) != Redacted {
		t.Errorf("MarshalText = %q, want %q", data, Redacted)
	}
}
