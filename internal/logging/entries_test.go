// pattern: Functional Core

package logging

import (
	"strings"
	"testing"
	"time"
)

func TestLogEntry_String(t *testing.T) {
	tests := []struct {
		name  string
		entry LogEntry
		want  string
	}{
		{
			name: "basic entry",
			entry: LogEntry{
				Timestamp: time.Date(2026, 1, 27, 10, 30, 0, 0, time.UTC),
				Level:     "INFO",
				Scope:     "app",
				Message:   "application starting",
			},
			want: "10:30:00 INFO [app] application starting",
		},
		{
			name: "fields sorted by key",
			entry: LogEntry{
				Timestamp: time.Date(2026, 1, 27, 10, 30, 0, 0, time.UTC),
				Level:     "ERROR",
				Scope:     "launch",
				Message:   "command failed",
				Fields:    map[string]any{"path": "/p", "error": "not found"},
			},
			want: "10:30:00 ERROR [launch] command failed error=not found path=/p",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "DEBUG",
		"INFO":    "INFO",
		"warning": "WARN",
		"Warn":    "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"fatal":   "INFO",
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
	if !strings.EqualFold(ParseLevel("warn"), "warn") {
		t.Error("ParseLevel should preserve the level name")
	}
}
