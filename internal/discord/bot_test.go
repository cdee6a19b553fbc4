package discord

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/babbot/internal/config"
	"github.com/nao1215/babbot/internal/meal"
)

func newTestBot(t *testing.T, mutate func(*config.Config)) *Bot {
	t.Helper()
	cfg := config.NewConfig()
	cfg.BaseURL = menuServer(t).URL
	if mutate != nil {
		mutate(cfg)
	}
	b, err := NewBot(cfg, nil, WithClock(meal.Fixed(dinnerTime())))
	if err != nil {
		t.Fatalf("NewBot() error: %v", err)
	}
	return b
}

func summarize(cmds []*discordgo.ApplicationCommand) []sentCommand {
	out := make([]sentCommand, len(cmds))
	for i, c := range cmds {
		out[i] = sentCommand{ID: c.ID, Name: c.Name, Description: c.Description, Type: int(c.Type)}
	}
	return out
}

func TestBot_Commands(t *testing.T) {
	t.Parallel()

	t.Run("built-in halls", func(t *testing.T) {
		t.Parallel()

		b := newTestBot(t, nil)
		want := []sentCommand{
			{Name: "카이마루", Description: "밥", Type: 1},
			{Name: "교수회관", Description: "바압", Type: 1},
		}
		if diff := cmp.Diff(want, summarize(b.Commands())); diff != "" {
			t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("configured halls", func(t *testing.T) {
		t.Parallel()

		b := newTestBot(t, func(c *config.Config) {
			c.File = &config.File{Locations: []config.LocationConfig{{Name: "서측식당", Param: "west", Description: "서측"}}}
		})
		want := []sentCommand{{Name: "서측식당", Description: "서측", Type: 1}}
		if diff := cmp.Diff(want, summarize(b.Commands())); diff != "" {
			t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns copies", func(t *testing.T) {
		t.Parallel()

		b := newTestBot(t, nil)
		b.Commands()[0].Name = "changed"
		if got := b.Commands()[0].Name; got != "카이마루" {
			t.Errorf("Commands() exposed internal state, name = %q", got)
		}
	})

	t.Run("invalid registry", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.File = &config.File{Locations: []config.LocationConfig{{Name: "a", Param: ""}}}
		if _, err := NewBot(cfg, nil); err == nil {
			t.Error("expected error for empty param")
		}
	})
}

func TestBot_Dispatch(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, nil)
	ctx := context.Background()

	if got, want := b.Dispatch(ctx, "카이마루"), "카레라이스샐러드&;드레싱"; got != want {
		t.Errorf("Dispatch(카이마루) = %q, want %q", got, want)
	}
	if got := b.Dispatch(ctx, "hello"); got != NotImplementedReply {
		t.Errorf("Dispatch(hello) = %q", got)
	}
}

func TestBot_DispatchFailure(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, func(c *config.Config) {
		c.File = &config.File{Rules: map[string]string{"dinner": "#missing"}}
	})
	if got := b.Dispatch(context.Background(), "교수회관"); got != FailureReply {
		t.Errorf("Dispatch() = %q, want %q", got, FailureReply)
	}
}

func TestBot_Handler(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, func(c *config.Config) { c.Discord.PublicKey = "zz" })
	if _, err := b.Handler(); !errors.Is(err, config.ErrInvalidPublicKey) {
		t.Errorf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func TestBot_Register(t *testing.T) {
	t.Parallel()

	t.Run("puts built-in commands", func(t *testing.T) {
		t.Parallel()

		api, seen := discordAPI(t, 0)
		b := newTestBot(t, func(c *config.Config) {
			c.Discord.Token = "tok"
			c.Discord.ApplicationID = "1"
			c.Discord.GuildID = "2"
			c.Discord.APIBase = api.URL
		})
		if err := b.Register(context.Background()); err != nil {
			t.Fatalf("Register() error: %v", err)
		}
		req := <-seen
		if !strings.HasSuffix(req.path, "/applications/1/guilds/2/commands") || req.auth != "Bot tok" {
			t.Errorf("unexpected request %+v", req)
		}
		if len(req.body) != 2 {
			t.Errorf("expected two commands, got %+v", req.body)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		b := newTestBot(t, nil)
		if err := b.Register(context.Background()); !errors.Is(err, config.ErrMissingToken) {
			t.Errorf("expected ErrMissingToken, got %v", err)
		}
	})
}

func TestBot_Serve(t *testing.T) {
	t.Parallel()

	pub, priv := newKey(t)
	b := newTestBot(t, func(c *config.Config) { c.Discord.PublicKey = hex.EncodeToString(pub) })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Serve(ctx, ln) }()

	transport := &http.Transport{}
	client := &http.Client{Transport: transport}
	defer transport.CloseIdleConnections()

	body := `{"id":"1","type":2,"data":{"name":"카이마루"}}`
	req, err := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/interactions", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	sign(req.Header, priv, body)

	resp, err := client.Do(req)
	if err != nil {
		cancel()
		<-done
		t.Fatalf("request failed: %v", err)
	}
	var got replyBody
	decodeErr := json.NewDecoder(resp.Body).Decode(&got)
	_ = resp.Body.Close()

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Serve() error: %v", err)
	}

	if decodeErr != nil {
		t.Fatalf("decode: %v", decodeErr)
	}
	if diff := cmp.Diff(messageReply("카레라이스샐러드&;드레싱"), got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestBot_ServeInvalidKey(t *testing.T) {
	t.Parallel()

	b := newTestBot(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	if err := b.Serve(context.Background(), ln); !errors.Is(err, config.ErrInvalidPublicKey) {
		t.Errorf("expected ErrInvalidPublicKey, got %v", err)
	}
}
