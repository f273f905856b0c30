package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MasterAddr string `envconfig:"MASTER_ADDR"`
	// E2E_DEBUG_JSON allows dumping raw WebSocket frames for troubleshooting
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
