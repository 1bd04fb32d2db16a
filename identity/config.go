package identity

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

// Config is the provider configuration the server embeds in the page as a
// JSON block. Unknown keys are tolerated; the embedded blob carries fields
// only the provider's own SDK consumes.
type Config struct {
	APIKey     string `json:"apiKey"`
	AuthDomain string `json:"authDomain"`
	ProjectID  string `json:"projectId"`

	// Endpoint overrides the provider REST base URL. Used by tests and
	// emulator deployments; empty selects the public endpoint.
	Endpoint string `json:"endpoint,omitempty"`

	// JWKSURL enables ID-token signature verification when set.
	JWKSURL string `json:"jwksUrl,omitempty"`

	// Issuer is checked against token claims when verification is enabled.
	Issuer string `json:"issuer,omitempty"`
}

// ErrNoConfig is returned when the page does not carry a provider config
// block.
var ErrNoConfig = errors.New("identity configuration not found")

// ParseConfig decodes the embedded configuration block.
func ParseConfig(data []byte) (Config, error) {
	if len(data) == 0 {
		return Config{}, ErrNoConfig
	}
	var cfg Config
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse identity config: %w", err)
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("identity config missing apiKey")
	}
	return cfg, nil
}
