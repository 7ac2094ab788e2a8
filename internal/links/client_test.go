package links

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"link": "https://m10djcompany.com/select/abc123",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "https://m10djcompany.com", slog.Default())
	link, err := c.Generate(context.Background(), Request{
		Email:         "sms-9015550142@m10djcompany.com",
		EventType:     "wedding",
		EventDate:     "2026-06-15",
		ForceNewToken: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if link != "https://m10djcompany.com/select/abc123" {
		t.Errorf("link = %q", link)
	}
	if got.EventType != "wedding" || !got.ForceNewToken {
		t.Errorf("request sent = %+v", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	t.Run("no endpoint", func(t *testing.T) {
		c := NewClient("", "", slog.Default())
		if _, err := c.Generate(context.Background(), Request{EventType: "wedding"}); err == nil {
			t.Error("expected error with no endpoint configured")
		}
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "", slog.Default())
		if _, err := c.Generate(context.Background(), Request{EventType: "wedding"}); err == nil {
			t.Error("expected error on 500")
		}
	})

	t.Run("empty link", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"link": ""})
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "", slog.Default())
		if _, err := c.Generate(context.Background(), Request{EventType: "wedding"}); err == nil {
			t.Error("expected error on empty link")
		}
	})
}

func TestShorten(t *testing.T) {
	c := NewClient("http://issuer", "https://m10djcompany.com", slog.Default())

	if got := c.Shorten("https://m10djcompany.com/select/abc"); got != "select/abc" {
		t.Errorf("shorten = %q", got)
	}
	if got := c.Shorten("https://other.example/select/abc"); got != "https://other.example/select/abc" {
		t.Errorf("foreign link shorten = %q", got)
	}
}

func TestQRPNG(t *testing.T) {
	png, err := QRPNG("https://m10djcompany.com/select/abc123", 0)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("expected PNG magic bytes")
	}
}
