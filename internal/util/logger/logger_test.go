package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		err := Init(tt.level)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Init(%q) err=%v wantErr=%v", tt.level, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if !Log.Core().Enabled(tt.want) {
			t.Errorf("Init(%q): level %s disabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && Log.Core().Enabled(tt.want-1) {
			t.Errorf("Init(%q): level %s should be disabled", tt.level, tt.want-1)
		}
	}
}
