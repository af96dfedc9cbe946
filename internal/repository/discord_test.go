package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	xhttp "github.com/tj309c/FLWSTradingLiveUpdates/pkg/http"
)

func testPayload() *models.AlertPayload {
	return &models.AlertPayload{
		Title:       "FLWS LIVE MONITOR: 🟠 MARGIN STRESS (FORCED BUYING)",
		Description: "**Price:** $5.50 (10.00%)",
		Color:       0xE67E22,
		Fields: []models.AlertField{
			{Name: "🎯 Key Levels Watch", Value: "• $6.00 (NUCLEAR): Wait..."},
		},
		Footer:      "Kurrupt Research | POLYGON (Real-Time) | 15:45:12 EST",
		GeneratedAt: time.Now(),
	}
}

func TestDiscordDeliverEmbedShape(t *testing.T) {
	var got discordMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, xhttp.NewClient())
	if err := n.Deliver(context.Background(), testPayload()); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	e := got.Embeds[0]
	if e.Title != "FLWS LIVE MONITOR: 🟠 MARGIN STRESS (FORCED BUYING)" {
		t.Errorf("embed title = %q", e.Title)
	}
	if e.Color != 0xE67E22 {
		t.Errorf("embed color = %#x", e.Color)
	}
	if len(e.Fields) != 1 || e.Fields[0].Name != "🎯 Key Levels Watch" {
		t.Errorf("embed fields = %+v", e.Fields)
	}
	if e.Footer == nil || e.Footer.Text != "Kurrupt Research | POLYGON (Real-Time) | 15:45:12 EST" {
		t.Errorf("embed footer = %+v", e.Footer)
	}
}

func TestDiscordDeliverAcceptsOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, xhttp.NewClient())
	if err := n.Deliver(context.Background(), testPayload()); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
}

func TestDiscordDeliverRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message": "You are being rate limited."}`))
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, xhttp.NewClient())
	err := n.Deliver(context.Background(), testPayload())

	var derr *models.DeliveryError
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T, want *DeliveryError", err)
	}
	if derr.Channel != "discord" || derr.Status != 429 {
		t.Errorf("DeliveryError = %+v", derr)
	}
}

func TestDiscordDeliverTransportError(t *testing.T) {
	n := NewDiscordNotifier("http://127.0.0.1:1", xhttp.NewClient(xhttp.WithTimeout(500*time.Millisecond)))
	err := n.Deliver(context.Background(), testPayload())
	if err == nil {
		t.Fatal("expected transport error")
	}
	var derr *models.DeliveryError
	if errors.As(err, &derr) {
		t.Error("transport failure should not be a DeliveryError")
	}
}
