package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	HttpPort uint16 `envconfig:"ONCYCLE_HTTP_SERVER_PORT" default:"8080" required:"true"`

	// Number of 21/7 cycles regenerated after a therapy pause week
	TherapyPauseRegeneratedCycles int `envconfig:"ONCYCLE_THERAPY_PAUSE_REGENERATED_CYCLES" default:"3"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
