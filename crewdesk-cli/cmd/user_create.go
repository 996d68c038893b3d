package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/solasystems/crewdesk"
)

func userCreate(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("user create requires no arguments")
	}

	// Command-specific flags
	email := c.String(flagEmail)
	fullname := c.String(flagFullname)
	password := c.String(flagPassword)
	gender := c.String(flagGender)
	role := c.String(flagRole)

	if email == "" || fullname == "" || password == "" {
		return errors.New(
			"user create requires --email, --fullname, and --password",
		)
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	user, err := client.Users().Create(
		c.Context,
		crewdesk.CreateUserRequest{
			Email:    email,
			Fullname: fullname,
			Password: password,
			Gender:   strings.ToUpper(gender),
			Role:     crewdesk.Role(strings.ToUpper(role)),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s).\n", user.Email, user.ID)

	return nil
}
