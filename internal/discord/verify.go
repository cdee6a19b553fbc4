package discord

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// ParsePublicKey decodes the hex encoded application public key.
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	if len(key) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(key))
	}
	return ed25519.PublicKey(key), nil
}

// verify reports whether body, already read from r, was signed by key.
// r.Body is reset to body first because discordgo.VerifyInteraction reads it.
func verify(key ed25519.PublicKey, r *http.Request, body []byte) bool {
	r.Body = io.NopCloser(bytes.NewReader(body))
	return discordgo.VerifyInteraction(r, key)
}
