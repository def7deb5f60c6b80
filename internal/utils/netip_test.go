package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"1.2.3.4:80":  "1.2.3.4",
		"[::1]:8080":  "::1",
		"1.2.3.4":     "1.2.3.4",
		"[::1]":       "::1",
		"example.com": "example.com",
		"":            "",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := ClientIP(req, false); got != "10.0.0.1" {
		t.Errorf("ClientIP(untrusted) = %q, want 10.0.0.1", got)
	}
	if got := ClientIP(req, true); got != "203.0.113.7" {
		t.Errorf("ClientIP(trusted) = %q, want 203.0.113.7", got)
	}

	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	if got := ClientIP(req, true); got != "198.51.100.2" {
		t.Errorf("ClientIP(cloudflare) = %q, want 198.51.100.2", got)
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.10 ", "::1", "garbage", ""})
	if m.IsEmpty() {
		t.Fatal("matcher should not be empty")
	}

	tests := map[string]bool{
		"10.20.30.40":     true,
		"192.168.1.10":    true,
		"192.168.1.11":    false,
		"::1":             true,
		"::ffff:10.1.1.1": true,
		"not-an-ip":       false,
		"2001:db8::1":     false,
	}
	for ip, want := range tests {
		if got := m.Allow(ip); got != want {
			t.Errorf("Allow(%q) = %v, want %v", ip, got, want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("nil list should give an empty matcher")
	}
}
