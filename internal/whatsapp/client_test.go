package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"legal_intake_backend/platform/logger"
)

type testConfig struct {
	url string
	key string
}

func (c testConfig) GetWhatsAppURL() string    { return c.url }
func (c testConfig) GetWhatsAppAPIKey() string { return c.key }

func TestSendFormatsRecipient(t *testing.T) {
	var got sendRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(testConfig{url: srv.URL, key: "secret"}, logger.New("development"))
	if err := c.Send(context.Background(), "11999999999", "olá"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if got.PhoneNumber != "5511999999999@s.whatsapp.net" {
		t.Fatalf("phone number = %q", got.PhoneNumber)
	}
	if got.Message != "olá" {
		t.Fatalf("message = %q", got.Message)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header = %q", gotKey)
	}
}

func TestSendBridgeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "session closed", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(testConfig{url: srv.URL}, logger.New("development"))
	if err := c.Send(context.Background(), "11999999999", "olá"); err == nil {
		t.Fatal("expected error from 502 response")
	}
}

func TestNilClientReportsUnconfigured(t *testing.T) {
	c := NewClient(testConfig{}, logger.New("development"))
	if c != nil {
		t.Fatal("empty URL must yield a nil client")
	}
	if err := c.Send(context.Background(), "11999999999", "olá"); err == nil {
		t.Fatal("nil client Send must report unconfigured")
	}
	if err := c.Health(context.Background()); err == nil {
		t.Fatal("nil client Health must report unconfigured")
	}
}

func TestJID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"11999999999", "5511999999999@s.whatsapp.net"},
		{"5511999999999", "5511999999999@s.whatsapp.net"},
		{"5511988887777@s.whatsapp.net", "5511988887777@s.whatsapp.net"},
	}
	for _, tt := range tests {
		if got := JID(tt.in); got != tt.want {
			t.Fatalf("JID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
