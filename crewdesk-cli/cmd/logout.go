package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func logout(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("logout requires no arguments")
	}

	engine, err := getEngine(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	// We're ignoring the revocation outcome here because even if the server
	// couldn't revoke the refresh token, local teardown has already happened
	// and the user is logged out for all practical purposes.
	engine.Logout(c.Context)

	fmt.Println("Logout was successful.")

	return nil
}
