package providers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/samber/do/v2"

	"github.com/parleyapp/parley-server/internal/auth"
	"github.com/parleyapp/parley-server/internal/config"
	"github.com/parleyapp/parley-server/internal/logger"
)

// ProvideTokenService provides the PASETO token verifier.
// The symmetric key is shared with the auth service that mints tokens. In
// development a missing key is replaced with a random one so the engine can
// run standalone; tokens then only verify against this process.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	keyHex := cfg.Auth.AccessTokenKey
	if keyHex == "" {
		if cfg.App.Environment != "development" {
			return nil, errors.New("ACCESS_TOKEN_KEY is required outside development")
		}

		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		keyHex = hex.EncodeToString(key)
		cfg.Auth.AccessTokenKey = keyHex

		log.Warn("No access token key configured, generated an ephemeral one",
			"access_token_duration", cfg.Auth.AccessTokenDuration,
		)
	}

	return auth.NewTokenService(keyHex, cfg.Auth.AccessTokenDuration)
}
