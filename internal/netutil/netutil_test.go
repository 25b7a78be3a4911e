package netutil

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNormalizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "ipv4 with port", input: "192.0.2.4:8080", expected: "192.0.2.4", ok: true},
		{name: "ipv6 with port", input: "[2001:db8::1]:443", expected: "2001:db8::1", ok: true},
		{name: "ipv6 textual port", input: "[::1]:port", expected: "::1", ok: true},
		{name: "ipv4 textual port", input: "10.0.0.1:port", expected: "10.0.0.1", ok: true},
		{name: "plain ipv4", input: "203.0.113.9", expected: "203.0.113.9", ok: true},
		{name: "plain ipv6", input: "2001:db8::5", expected: "2001:db8::5", ok: true},
		{name: "zoned ipv6", input: "fe80::1%eth0", expected: "fe80::1", ok: true},
		{name: "padded", input: "  198.51.100.7 ", expected: "198.51.100.7", ok: true},
		{name: "empty", input: "", expected: "", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeIP(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestNormalizeIPInvalid(t *testing.T) {
	if got, ok := NormalizeIP("not-an-ip"); ok {
		t.Fatalf("expected failure, got success with %q", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		xff        string
		realIP     string
		trustProxy bool
		expected   string
	}{
		{name: "remote addr", remote: "192.0.2.1:5555", expected: "192.0.2.1"},
		{name: "xff trusted", remote: "10.0.0.1:1", xff: "203.0.113.5, 10.0.0.1", trustProxy: true, expected: "203.0.113.5"},
		{name: "xff ignored", remote: "10.0.0.1:1", xff: "203.0.113.5", expected: "10.0.0.1"},
		{name: "real ip trusted", remote: "10.0.0.1:1", realIP: "198.51.100.2", trustProxy: true, expected: "198.51.100.2"},
		{name: "garbage xff falls back", remote: "10.0.0.1:1", xff: "garbage", trustProxy: true, expected: "10.0.0.1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tc.remote
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				r.Header.Set("X-Real-IP", tc.realIP)
			}
			if got := ClientIP(r, tc.trustProxy); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestTruncateUserAgent(t *testing.T) {
	long := strings.Repeat("é", MaxUserAgentLength+10)
	truncated := TruncateUserAgent(long)
	if len([]rune(truncated)) != MaxUserAgentLength {
		t.Fatalf("expected %d runes, got %d", MaxUserAgentLength, len([]rune(truncated)))
	}
	if TruncateUserAgent("curl/8.0") != "curl/8.0" {
		t.Fatalf("short user agents must be left alone")
	}
}
