package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func userGet(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New("user get requires one argument-- a user ID")
	}
	id := c.Args().Get(0)

	// Command-specific flags
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	user, err := client.Users().Get(c.Context, id)
	if err != nil {
		return err
	}

	return printUser(user, output)
}
