package discord

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const userAgent = "DiscordBot (https://github.com/nao1215/babbot, 1.0)"

// newSession creates a discordgo session authenticated as the bot. A nil
// client keeps discordgo's default. When apiBase names an origin other than
// discord.com, every request is sent there instead.
func newSession(token, apiBase string, client *http.Client) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.UserAgent = userAgent
	if client != nil {
		s.Client = client
	}

	base := strings.TrimRight(apiBase, "/")
	if base == "" || base == strings.TrimRight(discordgo.EndpointDiscord, "/") {
		return s, nil
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid discord api base %q", apiBase)
	}
	origin, err := url.Parse(discordgo.EndpointDiscord)
	if err != nil {
		return nil, err
	}

	rebased := *s.Client
	rebased.Transport = &rebaseTransport{from: origin.Host, to: u, next: s.Client.Transport}
	s.Client = &rebased
	return s, nil
}

// rebaseTransport sends requests for host from to the origin and path
// prefix of to.
type rebaseTransport struct {
	from string
	to   *url.URL
	next http.RoundTripper
}

func (t *rebaseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	if req.URL.Host != t.from {
		return next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.URL.Scheme = t.to.Scheme
	r.URL.Host = t.to.Host
	r.URL.Path = strings.TrimRight(t.to.Path, "/") + req.URL.Path
	r.URL.RawPath = ""
	r.Host = ""
	return next.RoundTrip(r)
}
