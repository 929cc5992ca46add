package logger

import "testing"

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "empty", in: "", limit: 10, want: ""},
		{name: "shorter than limit", in: "short", limit: 10, want: "short"},
		{name: "exactly at limit", in: "1234567890", limit: 10, want: "1234567890"},
		{name: "longer than limit", in: "12345678901", limit: 10, want: "1234567890..."},
		{name: "trims whitespace first", in: "  padded  ", limit: 10, want: "padded"},
		{name: "zero limit", in: "anything", limit: 0, want: ""},
		{name: "negative limit", in: "anything", limit: -1, want: ""},
		{name: "multibyte runes", in: "héllo wörld", limit: 5, want: "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateForLog(tt.in, tt.limit); got != tt.want {
				t.Errorf("TruncateForLog(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, tt := range []struct {
		name  string
		json  bool
		debug bool
	}{
		{name: "console info"},
		{name: "json", json: true},
		{name: "debug", debug: true},
		{name: "json debug", json: true, debug: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.json, tt.debug)
			if err != nil {
				t.Fatalf("New(%v, %v) returned error: %v", tt.json, tt.debug, err)
			}
			if logger == nil {
				t.Fatalf("New(%v, %v) returned nil logger", tt.json, tt.debug)
			}
		})
	}
}
