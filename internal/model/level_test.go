package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr error
	}{
		{"NORMAL", LevelNormal, nil},
		{"vip", LevelVIP, nil},
		{" Vip ", LevelVIP, nil},
		{"gold", "", ErrInvalidLevel},
		{"", "", ErrInvalidLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("ParseLevel(%q)=(%q,%v) want (%q,%v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestLevelRates(t *testing.T) {
	if got := LevelNormal.Rate().String(); got != "0.01" {
		t.Fatalf("NORMAL rate=%s", got)
	}
	if got := LevelVIP.Rate().String(); got != "0.02" {
		t.Fatalf("VIP rate=%s", got)
	}
}

func TestLevelJSON(t *testing.T) {
	var v struct {
		Level Level `json:"level"`
	}
	if err := json.Unmarshal([]byte(`{"level":"vip"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Level != LevelVIP {
		t.Fatalf("level=%q", v.Level)
	}
	if err := json.Unmarshal([]byte(`{"level":"bronze"}`), &v); err == nil {
		t.Fatal("expected error for unknown level")
	}

	v.Level = LevelVIP
	if err := json.Unmarshal([]byte(`{"level":""}`), &v); err != nil {
		t.Fatalf("empty level rejected: %v", err)
	}
	if v.Level != "" {
		t.Fatalf("level=%q want unset", v.Level)
	}
}
