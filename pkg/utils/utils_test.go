package utils

import "testing"

func TestFormatRoundedUnit(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{seconds: 0, want: "0s"},
		{seconds: 42, want: "42s"},
		{seconds: 60, want: "1m"},
		{seconds: 3599, want: "59m"},
		{seconds: 3600, want: "60m"},
		{seconds: 7200, want: "2h"},
		{seconds: -90, want: "1m"},
	}

	for _, tt := range tests {
		if got := FormatRoundedUnit(tt.seconds); got != tt.want {
			t.Errorf("FormatRoundedUnit(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{seconds: 42, want: "42s"},
		{seconds: 300, want: "5m"},
		{seconds: 3900, want: "1h05m"},
		{seconds: 9000, want: "2h30m"},
	}

	for _, tt := range tests {
		if got := FormatCompact(tt.seconds); got != tt.want {
			t.Errorf("FormatCompact(%d) = %s, want %s", tt.seconds, got, tt.want)
		}
	}
}
