package discord

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/babbot/internal/location"
	"github.com/nao1215/babbot/internal/meal"
)

// Signature headers Discord sets on every interaction request.
const (
	headerSignature = "X-Signature-Ed25519"
	headerTimestamp = "X-Signature-Timestamp"
	testTimestamp   = "1700000000"
)

func newKey(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return pub, priv
}

// signedRequest builds an interaction request signed with priv.
func signedRequest(t *testing.T, priv ed25519.PrivateKey, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/interactions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	sign(req.Header, priv, body)
	return req
}

func sign(h http.Header, priv ed25519.PrivateKey, body string) {
	sig := ed25519.Sign(priv, []byte(testTimestamp+body))
	h.Set(headerSignature, hex.EncodeToString(sig))
	h.Set(headerTimestamp, testTimestamp)
}

// fakeQuerier answers from a fixed table and records the calls.
type fakeQuerier struct {
	mu    sync.Mutex
	menus map[string]string
	err   error
	calls []string
	times []time.Time
}

func (f *fakeQuerier) Query(_ context.Context, name string, now time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.times = append(f.times, now)
	if f.err != nil {
		return "", f.err
	}
	m, ok := f.menus[name]
	if !ok {
		return "", location.ErrUnknownLocation
	}
	return m, nil
}

func dinnerTime() time.Time {
	return time.Date(2024, time.March, 4, 18, 0, 0, 0, meal.KST)
}

// replyBody mirrors the parts of an interaction response the tests check.
type replyBody struct {
	Type int        `json:"type"`
	Data *replyData `json:"data,omitempty"`
}

type replyData struct {
	Content string `json:"content"`
}

func messageReply(content string) replyBody {
	return replyBody{Type: 4, Data: &replyData{Content: content}}
}

// apiClient sends every Discord request to ts.
func apiClient(ts *httptest.Server) *http.Client {
	u, _ := url.Parse(ts.URL)
	return &http.Client{Transport: &rebaseTransport{from: "discord.com", to: u, next: ts.Client().Transport}}
}

// menuServer serves the menu fixture for any request.
func menuServer(t *testing.T) *httptest.Server {
	t.Helper()
	fixture, err := os.ReadFile("../menu/testdata/menu.html")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(fixture)
	}))
	t.Cleanup(ts.Close)
	return ts
}
