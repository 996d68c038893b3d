package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/solasystems/crewdesk"
)

func profileUpdate(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("profile update requires no arguments")
	}

	// Command-specific flags
	fullname := c.String(flagFullname)
	gender := c.String(flagGender)

	if fullname == "" && gender == "" {
		return errors.New(
			"nothing to update; set --fullname and/or --gender",
		)
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	// Fields left unset keep their current values.
	current, err := client.Users().Profile(c.Context)
	if err != nil {
		return err
	}
	if fullname == "" {
		fullname = current.Fullname
	}
	if gender == "" {
		gender = current.Gender
	}

	user, err := client.Users().UpdateProfile(
		c.Context,
		crewdesk.ProfileUpdate{
			Fullname: fullname,
			Gender:   strings.ToUpper(gender),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("Profile for %s updated.\n", user.Email)

	return nil
}
