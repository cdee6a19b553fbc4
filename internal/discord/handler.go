package discord

import (
	"crypto/ed25519"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxInteractionSize caps the request body of an interaction.
const maxInteractionSize = 1 << 20

// Handler serves the interactions endpoint.
type Handler struct {
	dispatcher *Dispatcher
	publicKey  ed25519.PublicKey
	logger     *slog.Logger
	router     chi.Router
}

// NewHandler creates the HTTP handler for interactions signed with key.
//
// Routes:
//   - POST /interactions answers PING and slash commands
//   - GET /healthz reports liveness
func NewHandler(d *Dispatcher, key ed25519.PublicKey, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{dispatcher: d, publicKey: key, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	})
	r.Post("/interactions", h.interactions)
	h.router = r
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) interactions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInteractionSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	if !verify(h.publicKey, r, body) {
		h.logger.Warn("rejected interaction", "error", ErrInvalidSignature, "request_id", middleware.GetReqID(r.Context()))
		writeError(w, http.StatusUnauthorized, ErrInvalidSignature.Error())
		return
	}

	var in discordgo.Interaction
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed interaction")
		return
	}

	switch in.Type {
	case discordgo.InteractionPing:
		writeJSON(w, http.StatusOK, discordgo.InteractionResponse{Type: discordgo.InteractionResponsePong})
	case discordgo.InteractionApplicationCommand:
		data := in.ApplicationCommandData()
		if data.Name == "" {
			writeError(w, http.StatusBadRequest, "missing command name")
			return
		}
		h.logger.Debug("command received", "command", data.Name, "guild", in.GuildID, "interaction", in.ID)
		writeJSON(w, http.StatusOK, messageResponse(h.dispatcher.Dispatch(r.Context(), data.Name)))
	default:
		writeError(w, http.StatusBadRequest, "unsupported interaction type")
	}
}

// messageResponse answers a command with a plain channel message.
func messageResponse(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
