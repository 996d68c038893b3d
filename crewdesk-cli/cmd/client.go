package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/solasystems/crewdesk"
	"github.com/solasystems/crewdesk/auth"
	"github.com/solasystems/crewdesk/storage"
)

func getSessionStore() (*storage.SessionStore, error) {
	secureStore, err := storage.NewFileStore()
	if err != nil {
		return nil, errors.Wrap(err, "error opening credential store")
	}
	return storage.NewSessionStore(secureStore), nil
}

func getClient(c *cli.Context) (crewdesk.Client, error) {
	config, err := getConfig(c)
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	store, err := getSessionStore()
	if err != nil {
		return nil, err
	}
	return crewdesk.NewClient(
		config.APIAddress,
		store,
		config.AllowInsecure,
	), nil
}

func getEngine(c *cli.Context) (*auth.Engine, error) {
	config, err := getConfig(c)
	if err != nil {
		return nil, errors.Wrap(err, "error retrieving configuration")
	}
	store, err := getSessionStore()
	if err != nil {
		return nil, err
	}
	client := crewdesk.NewClient(
		config.APIAddress,
		store,
		config.AllowInsecure,
	)
	return auth.NewEngine(client, store, auth.NoDeviceAuthenticator{}), nil
}
