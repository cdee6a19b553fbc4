package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
)

// sentCommand is a command as it arrives at the Discord API.
type sentCommand struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        int    `json:"type"`
}

type capturedRequest struct {
	method string
	path   string
	auth   string
	ctype  string
	agent  string
	body   []sentCommand
}

// discordAPI fakes the Discord REST API. The bulk overwrite endpoint echoes
// the commands back with ids; every request fails with status when non-zero.
func discordAPI(t *testing.T, status int) (*httptest.Server, <-chan capturedRequest) {
	t.Helper()
	seen := make(chan capturedRequest, 4)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sent []sentCommand
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &sent)
		seen <- capturedRequest{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			auth:   r.Header.Get("Authorization"),
			ctype:  r.Header.Get("Content-Type"),
			agent:  r.Header.Get("User-Agent"),
			body:   sent,
		}
		if status != 0 {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"message": "401: Unauthorized", "code": 0}`)
			return
		}

		stored := make([]sentCommand, len(sent))
		for i, c := range sent {
			c.ID = fmt.Sprintf("cmd%d", i)
			stored[i] = c
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stored)
	}))
	t.Cleanup(ts.Close)
	return ts, seen
}

func testCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{Name: "카이마루", Description: "밥", Type: discordgo.ChatApplicationCommand},
		{Name: "교수회관", Description: "바압", Type: discordgo.ChatApplicationCommand},
	}
}

func TestRegistrar_Register(t *testing.T) {
	t.Parallel()

	ts, seen := discordAPI(t, 0)
	r, err := NewRegistrar("secret-token", "app1", "guild1",
		WithAPIBase(ts.URL+"/"), WithRegistrarHTTPClient(ts.Client()))
	if err != nil {
		t.Fatalf("NewRegistrar() error: %v", err)
	}

	stored, err := r.Register(context.Background(), testCommands())
	if err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	req := <-seen
	if req.method != http.MethodPut {
		t.Errorf("method = %s, want PUT", req.method)
	}
	if !strings.HasPrefix(req.path, "/api/v") || !strings.HasSuffix(req.path, "/applications/app1/guilds/guild1/commands") {
		t.Errorf("path = %s", req.path)
	}
	if req.auth != "Bot secret-token" {
		t.Errorf("Authorization = %q", req.auth)
	}
	if req.ctype != "application/json" {
		t.Errorf("Content-Type = %q", req.ctype)
	}
	if req.agent != userAgent {
		t.Errorf("User-Agent = %q", req.agent)
	}
	want := []sentCommand{
		{Name: "카이마루", Description: "밥", Type: 1},
		{Name: "교수회관", Description: "바압", Type: 1},
	}
	if diff := cmp.Diff(want, req.body); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
	if len(stored) != 2 || stored[0].ID != "cmd0" || stored[1].ID != "cmd1" || stored[1].Name != "교수회관" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestRegistrar_APIError(t *testing.T) {
	t.Parallel()

	ts, _ := discordAPI(t, http.StatusUnauthorized)
	r, err := NewRegistrar("bad", "app1", "guild1", WithAPIBase(ts.URL), WithRegistrarHTTPClient(ts.Client()))
	if err != nil {
		t.Fatalf("NewRegistrar() error: %v", err)
	}

	_, err = r.Register(context.Background(), testCommands())
	if !errors.Is(err, ErrDiscordAPI) {
		t.Fatalf("expected ErrDiscordAPI, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || !strings.Contains(apiErr.Body, "401: Unauthorized") {
		t.Errorf("unexpected APIError %+v", apiErr)
	}
	if apiErr.Method != http.MethodPut {
		t.Errorf("Method = %q", apiErr.Method)
	}
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		t.Error("expected the discordgo error to stay reachable")
	}
	if strings.Contains(err.Error(), "Bot bad") {
		t.Error("error must not contain the token")
	}
}

func TestNewRegistrar_InvalidAPIBase(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistrar("t", "a", "g", WithAPIBase("not a url")); err == nil {
		t.Error("expected error for relative api base")
	}
}

func TestRegistrar_CanceledContext(t *testing.T) {
	t.Parallel()

	ts, _ := discordAPI(t, 0)
	r, err := NewRegistrar("t", "a", "g", WithAPIBase(ts.URL), WithRegistrarHTTPClient(ts.Client()))
	if err != nil {
		t.Fatalf("NewRegistrar() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Register(ctx, testCommands()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRebaseTransport(t *testing.T) {
	t.Parallel()

	ts, seen := discordAPI(t, 0)
	s, err := newSession("tok", ts.URL+"/proxy/", ts.Client())
	if err != nil {
		t.Fatalf("newSession() error: %v", err)
	}
	if _, err := s.ApplicationCommandBulkOverwrite("1", "2", nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if req := <-seen; !strings.HasPrefix(req.path, "/proxy/api/") {
		t.Errorf("path = %s, want it under /proxy/", req.path)
	}

	plain, err := newSession("tok", "https://discord.com/", nil)
	if err != nil {
		t.Fatalf("newSession() error: %v", err)
	}
	if _, ok := plain.Client.Transport.(*rebaseTransport); ok {
		t.Error("default origin must not be rebased")
	}
}
