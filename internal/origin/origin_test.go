package origin

import (
	"net/http"
	"testing"
)

func TestClientIP(t *testing.T) {
	headers := http.Header{}
	headers.Set("X-Forwarded-For", "149.154.160.1, 10.0.0.1")

	if got := ClientIP(headers); got != "149.154.160.1, 10.0.0.1" {
		t.Errorf("ClientIP = %q", got)
	}

	headers = http.Header{}
	headers.Set("X-Real-Ip", "91.108.4.5")

	if got := ClientIP(headers); got != "91.108.4.5" {
		t.Errorf("ClientIP = %q", got)
	}

	if got := ClientIP(http.Header{}); got != "" {
		t.Errorf("ClientIP on empty headers = %q, want empty", got)
	}
}

func TestIsTelegram(t *testing.T) {
	tests := []struct {
		addresses string
		want      bool
	}{
		{"91.108.4.1", true},
		{"91.108.7.255", true},
		{"149.154.160.1", true},
		{"149.154.175.254", true},
		{"91.108.8.1", false},
		{"149.154.176.1", false},
		{"8.8.8.8", false},
		{"10.0.0.1, 149.154.161.7", true},
		{"not-an-ip", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsTelegram(tt.addresses); got != tt.want {
			t.Errorf("IsTelegram(%q) = %v, want %v", tt.addresses, got, tt.want)
		}
	}
}
