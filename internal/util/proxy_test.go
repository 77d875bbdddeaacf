package util

import (
	"net/http"
	"net/url"
	"testing"
)

func request(t *testing.T, raw string) *http.Request {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-http:3128", "http://proxy-https:3128", "")

	u, err := proxy(request(t, "https://api.openai.com/v1/chat/completions"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Host != "proxy-https:3128" {
		t.Errorf("Expected https proxy, got %v", u)
	}

	u, err = proxy(request(t, "http://example.com/"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Host != "proxy-http:3128" {
		t.Errorf("Expected http proxy, got %v", u)
	}
}

func TestNewProxyFunc_HTTPSFallsBackToHTTPProxy(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "", "")

	u, err := proxy(request(t, "https://api.openai.com/"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil || u.Host != "proxy:3128" {
		t.Errorf("Expected http proxy for https request without https proxy, got %v", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "", "localhost, .internal.example.com")

	for _, raw := range []string{
		"http://localhost:8080/",
		"http://svc.internal.example.com/",
	} {
		u, err := proxy(request(t, raw))
		if err != nil {
			t.Fatal(err)
		}
		if u != nil {
			t.Errorf("Expected direct connection for %s, got proxy %v", raw, u)
		}
	}

	// Suffix matching is on domain labels, not raw substrings
	u, err := proxy(request(t, "http://notinternal.example.com/"))
	if err != nil {
		t.Fatal(err)
	}
	if u == nil {
		t.Error("Expected non-listed host to be proxied")
	}
}
