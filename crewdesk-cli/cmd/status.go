package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func status(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("status requires no arguments")
	}

	engine, err := getEngine(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	engine.Initialize(c.Context)

	session := engine.Current()
	if !session.Authenticated {
		fmt.Println("You are not logged in. Use `crewdesk login` to continue.")
		return nil
	}

	fmt.Printf(
		"You are logged in as %s (%s).\n",
		session.User.Email,
		session.User.Role,
	)
	if session.PartialProfile {
		fmt.Println(
			"The profile service could not be reached; some profile details " +
				"are unavailable.",
		)
	}

	return nil
}
