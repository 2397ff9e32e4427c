package domain

import (
	"encoding/json"
	"testing"
)

func TestAmountUnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `250`, 250},
		{"decimal", `99.5`, 99.5},
		{"numeric string", `"250"`, 250},
		{"decimal string", `"99.5"`, 99.5},
		{"padded string", `" 42 "`, 42},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"lots"`, 0},
		{"negative", `-7`, -7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tc.raw), &a); err != nil {
				t.Fatalf("Unmarshal(%s) returned error: %v", tc.raw, err)
			}
			if a.Float() != tc.want {
				t.Fatalf("Unmarshal(%s) = %v, want %v", tc.raw, a.Float(), tc.want)
			}
		})
	}
}

func TestAmountStringAndNumberAgree(t *testing.T) {
	var fromString, fromNumber Amount
	if err := json.Unmarshal([]byte(`"250"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if err := json.Unmarshal([]byte(`250`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if fromString != fromNumber {
		t.Fatalf("coercion not idempotent: %v != %v", fromString, fromNumber)
	}
}

func TestAmountMarshalEmitsNumber(t *testing.T) {
	out, err := json.Marshal(Amount(250))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != "250" {
		t.Fatalf("Marshal = %s, want 250", out)
	}
}
