package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/solasystems/crewdesk"
)

func userUpdate(c *cli.Context) error {
	// Args
	if c.Args().Len() != 1 {
		return errors.New("user update requires one argument-- a user ID")
	}
	id := c.Args().Get(0)

	// Command-specific flags
	fullname := c.String(flagFullname)
	gender := c.String(flagGender)
	role := c.String(flagRole)
	password := c.String(flagPassword)

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	// Fields left unset keep their current values.
	current, err := client.Users().Get(c.Context, id)
	if err != nil {
		return err
	}
	if fullname == "" {
		fullname = current.Fullname
	}
	if gender == "" {
		gender = current.Gender
	}
	if role == "" {
		role = string(current.Role)
	}

	user, err := client.Users().Update(
		c.Context,
		id,
		crewdesk.UpdateUserRequest{
			Fullname: fullname,
			Gender:   strings.ToUpper(gender),
			Role:     crewdesk.Role(strings.ToUpper(role)),
			Password: password,
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Updated user %s (%s).\n", user.Email, user.ID)

	return nil
}
