package main

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// config carries API server connection settings. Values come from the
// environment; the --server and --insecure flags override them.
type config struct {
	APIAddress    string `envconfig:"API_ADDRESS" default:"http://localhost:3000/api"`
	AllowInsecure bool   `envconfig:"ALLOW_INSECURE"`
}

func getConfig(c *cli.Context) (config, error) {
	config := config{}
	if err := envconfig.Process("crewdesk", &config); err != nil {
		return config, errors.Wrap(
			err,
			"error reading configuration from environment",
		)
	}
	if address := c.String(flagServer); address != "" {
		config.APIAddress = address
	}
	if c.Bool(flagInsecure) {
		config.AllowInsecure = true
	}
	return config, nil
}
