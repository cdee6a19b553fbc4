package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	// DefaultListenAddr is where the interactions endpoint listens.
	DefaultListenAddr = ":8080"

	// DefaultDiscordAPIBase is the origin Discord REST and gateway bootstrap
	// requests are sent to.
	DefaultDiscordAPIBase = "https://discord.com"

	// DefaultEnvFile is the dotenv file read next to the working directory.
	DefaultEnvFile = ".env"
)

// Discord holds the chat gateway settings. They come from the environment
// so that credentials never live in the configuration file.
type Discord struct {
	// Token is the bot token.
	Token string `env:"DISCORD_TOKEN"`

	// ApplicationID is the application the commands belong to.
	ApplicationID string `env:"DISCORD_APPLICATION_ID"`

	// PublicKey verifies interaction request signatures.
	PublicKey string `env:"DISCORD_PUBLIC_KEY"`

	// GuildID is the guild the commands are registered in.
	GuildID string `env:"GUILD_ID"`

	// APIBase replaces https://discord.com for every Discord request.
	APIBase string `env:"DISCORD_API_BASE" envDefault:"https://discord.com"`

	// ListenAddr is the interactions endpoint address.
	ListenAddr string `env:"BABBOT_LISTEN_ADDR" envDefault:":8080"`
}

// NewDiscord returns Discord settings with defaults and no credentials.
func NewDiscord() Discord {
	return Discord{
		APIBase:    DefaultDiscordAPIBase,
		ListenAddr: DefaultListenAddr,
	}
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	return parseEnvFrom(target, environMap())
}

func parseEnvFrom(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func environMap() map[string]string {
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// LoadDiscord reads the Discord settings from the environment. When envFile
// names an existing dotenv file its variables fill in whatever the process
// environment leaves unset. A missing file is not an error.
func LoadDiscord(envFile string) (Discord, error) {
	environ := environMap()
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Discord{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		for k, v := range vars {
			if _, ok := environ[k]; !ok {
				environ[k] = v
			}
		}
	}

	d := NewDiscord()
	if err := parseEnvFrom(&d, environ); err != nil {
		return Discord{}, err
	}
	return d, nil
}

// ValidateServe checks the settings the interactions endpoint needs.
func (d Discord) ValidateServe() error {
	key, err := hex.DecodeString(d.PublicKey)
	if err != nil || len(key) != 32 {
		return ErrInvalidPublicKey
	}
	return nil
}

// ValidateGateway checks the settings the gateway connection needs. The
// application id is optional there because the gateway reports it on connect.
func (d Discord) ValidateGateway() error {
	if d.Token == "" {
		return ErrMissingToken
	}
	return d.validateGuild()
}

// ValidateRegister checks the settings command registration needs.
func (d Discord) ValidateRegister() error {
	if d.Token == "" {
		return ErrMissingToken
	}
	if d.ApplicationID == "" {
		return ErrMissingApplicationID
	}
	return d.validateGuild()
}

func (d Discord) validateGuild() error {
	if d.GuildID == "" {
		return ErrMissingGuildID
	}
	if _, err := strconv.ParseUint(d.GuildID, 10, 64); err != nil {
		return ErrInvalidGuildID
	}
	return nil
}
