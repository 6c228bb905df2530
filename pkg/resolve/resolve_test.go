package resolve

import (
	"strings"
	"testing"
)

const ddg = "https://duckduckgo.com/?q="

func TestInput(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		wantKind Kind
		wantURL  string
	}{
		{name: "bare domain", input: "example.com", wantKind: URL, wantURL: "https://example.com"},
		{name: "bare domain trimmed", input: "  example.com \n", wantKind: URL, wantURL: "https://example.com"},
		{name: "bare domain with path", input: "example.com/a/b?c=d#e", wantKind: URL, wantURL: "https://example.com/a/b?c=d#e"},
		{name: "loopback with port", input: "127.0.0.1:3000", wantKind: URL, wantURL: "http://127.0.0.1:3000"},
		{name: "localhost with port", input: "localhost:3000", wantKind: URL, wantURL: "http://localhost:3000"},
		{name: "localhost with port and path", input: "localhost:8080/api?x=1", wantKind: URL, wantURL: "http://localhost:8080/api?x=1"},
		{name: "public host with port", input: "example.com:8080/path?q=1#x", wantKind: URL, wantURL: "https://example.com:8080/path?q=1#x"},
		{name: "private lan with port", input: "192.168.1.1:80", wantKind: URL, wantURL: "http://192.168.1.1:80"},
		{name: "ipv6 loopback with port", input: "[::1]:8080", wantKind: URL, wantURL: "http://[::1]:8080"},
		{name: "ipv6 public with port", input: "[2001:db8::1]:443", wantKind: URL, wantURL: "https://[2001:db8::1]:443"},
		{name: "bare localhost", input: "localhost", wantKind: URL, wantURL: "http://localhost"},
		{name: "bare private ipv4", input: "10.0.0.5/admin", wantKind: URL, wantURL: "http://10.0.0.5/admin"},
		{name: "bare public ipv4", input: "8.8.8.8", wantKind: URL, wantURL: "https://8.8.8.8"},
		{name: "bare link-local ipv6", input: "[fe80::1]", wantKind: URL, wantURL: "http://[fe80::1]"},
		{name: "explicit https", input: "https://example.com/x", wantKind: URL, wantURL: "https://example.com/x"},
		{name: "explicit http keeps case", input: "HTTP://Example.com", wantKind: URL, wantURL: "HTTP://Example.com"},
		{name: "mailto", input: "mailto:test@example.com", wantKind: URL, wantURL: "mailto:test@example.com"},
		{name: "arbitrary scheme", input: "foo:bar", wantKind: URL, wantURL: "foo:bar"},
		{name: "tel", input: "tel:+15551234", wantKind: URL, wantURL: "tel:+15551234"},
		{name: "non numeric port is a scheme", input: "localhost:abc", wantKind: URL, wantURL: "localhost:abc"},
		{name: "search terms", input: "some search terms", wantKind: Search, wantURL: ddg + "some%20search%20terms"},
		{name: "single word", input: "golang", wantKind: Search, wantURL: ddg + "golang"},
		{name: "scheme with spaces kept", input: "note: buy milk", wantKind: URL, wantURL: "note: buy milk"},
		{name: "data uri with spaces", input: "data:text/html,<h1>hello world</h1>", wantKind: URL, wantURL: "data:text/html,<h1>hello world</h1>"},
		{name: "mailto with spaces", input: "mailto:a@b.com?subject=Hello World", wantKind: URL, wantURL: "mailto:a@b.com?subject=Hello World"},
		{name: "colon after spaced words", input: "what is: this", wantKind: Search, wantURL: ddg + "what%20is%3A%20this"},
		{name: "leading zero ipv4 is private", input: "0010.0.0.1/admin", wantKind: URL, wantURL: "http://0010.0.0.1/admin"},
		{name: "invalid label", input: "-bad.example", wantKind: Search, wantURL: ddg + "-bad.example"},
		{name: "reserved characters", input: "a&b=c?", wantKind: Search, wantURL: ddg + "a%26b%3Dc%3F"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Input(tc.input, ddg)
			if !ok {
				t.Fatalf("Input(%q) returned no navigation", tc.input)
			}
			if got.Kind != tc.wantKind {
				t.Errorf("Input(%q) kind = %s, want %s", tc.input, got.Kind, tc.wantKind)
			}
			if got.URL != tc.wantURL {
				t.Errorf("Input(%q) url = %q, want %q", tc.input, got.URL, tc.wantURL)
			}
		})
	}
}

func TestInputEmpty(t *testing.T) {
	for _, input := range []string{"", " ", "\t\n", "   "} {
		if got, ok := Input(input, ddg); ok {
			t.Errorf("Input(%q) = %+v, want no navigation", input, got)
		}
	}
}

func TestInputSearchKeepsQuery(t *testing.T) {
	got, ok := Input("  what is go  ", ddg)
	if !ok {
		t.Fatal("expected navigation")
	}
	if got.Query != "what is go" {
		t.Errorf("Query = %q, want %q", got.Query, "what is go")
	}
}

func TestInputDefaultTemplate(t *testing.T) {
	got, _ := Input("hello world", "")
	if !strings.HasPrefix(got.URL, DefaultSearchTemplate) {
		t.Errorf("URL = %q, want prefix %q", got.URL, DefaultSearchTemplate)
	}
}

func TestInputCustomTemplate(t *testing.T) {
	got, _ := Input("café au lait", "https://search.example/?s=")
	want := "https://search.example/?s=caf%C3%A9%20au%20lait"
	if got.URL != want {
		t.Errorf("URL = %q, want %q", got.URL, want)
	}
}

func TestEncodeComponent(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc XYZ 019", "abc%20XYZ%20019"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"a+b/c", "a%2Bb%2Fc"},
		{"100%", "100%25"},
		{"\x00\x7f", "%00%7F"},
	}
	for _, tc := range testCases {
		if got := EncodeComponent(tc.in); got != tc.want {
			t.Errorf("EncodeComponent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func FuzzInput(f *testing.F) {
	for _, seed := range []string{"example.com", "localhost:3000", "[::1]:80", "a b", "foo:bar", "[", "[]:1", "\x00"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		got, ok := Input(raw, ddg)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				t.Fatalf("non-empty input %q produced no navigation", raw)
			}
			return
		}
		if got.URL == "" {
			t.Fatalf("input %q produced an empty URL", raw)
		}
	})
}
