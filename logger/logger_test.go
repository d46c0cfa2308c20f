package logger

import (
	"testing"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name string
		in   []interface{}
		want []interface{}
	}{
		{name: "empty", in: nil, want: nil},
		{name: "plain", in: []interface{}{"key", "clothingItems"}, want: []interface{}{"key", "clothingItems"}},
		{name: "api key", in: []interface{}{"gemini_api_key", "abc"}, want: []interface{}{"gemini_api_key", "[REDACTED]"}},
		{name: "mixed case token", in: []interface{}{"AuthToken", "abc", "id", "1"}, want: []interface{}{"AuthToken", "[REDACTED]", "id", "1"}},
		{name: "dangling key", in: []interface{}{"id", "1", "orphan"}, want: []interface{}{"id", "1", "orphan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeKVs(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	l := Nop().With("service", "test")
	l.Info("hello", "k", "v")
	l.Sync()
}
