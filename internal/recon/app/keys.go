package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/recon/pkg/cryptox"
	"github.com/aussiebroadwan/recon/pkg/jwtx"
)

// InitTokenKeys builds the token signer and the matching verifier.
//
//   - HS256 signs with JWT_SECRET, shared with anything else that verifies
//     recon tokens.
//   - EdDSA signs with an Ed25519 key read from RECON_SIGNING_KEY_FILE. The
//     key is generated on first start, so tokens survive restarts as long as
//     the file does.
func InitTokenKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, jwtx.Verifier, error) {
	switch cfg.Algorithm {
	case "HS256":
		signer, err := jwtx.NewSignerHS256([]byte(cfg.JWTSecret))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("token signing configured", "algorithm", signer.Alg(), "issuer", cfg.Issuer)
		return signer, jwtx.NewVerifierHS256([]byte(cfg.JWTSecret), cfg.Issuer), nil

	case "EdDSA":
		pemKey, err := cryptox.LoadOrGenerateEd25519Key(cfg.SigningKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		signer, err := jwtx.NewSignerEdDSA(pemKey)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("token signing configured",
			"algorithm", signer.Alg(),
			"issuer", cfg.Issuer,
			"key_file", cfg.SigningKeyFile,
		)
		return signer, jwtx.NewVerifierEdDSA(signer.PublicKey(), cfg.Issuer), nil
	}

	return nil, nil, fmt.Errorf("unsupported algorithm %q", cfg.Algorithm)
}
