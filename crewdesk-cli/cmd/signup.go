package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/solasystems/crewdesk"
)

func signup(c *cli.Context) error {
	email := c.String(flagEmail)
	password := c.String(flagPassword)
	fullname := c.String(flagFullname)
	gender := c.String(flagGender)

	var err error
	reader := bufio.NewReader(os.Stdin)
	for {
		email = strings.TrimSpace(email)
		if email != "" {
			break
		}
		fmt.Print("Email? ")
		if email, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading email from stdin")
		}
	}
	for {
		fullname = strings.TrimSpace(fullname)
		if fullname != "" {
			break
		}
		fmt.Print("Full name? ")
		if fullname, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading full name from stdin")
		}
	}
	for {
		password = strings.TrimSpace(password)
		if password != "" {
			break
		}
		fmt.Print("Password? ")
		if password, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading password from stdin")
		}
	}

	engine, err := getEngine(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	if err := engine.Signup(
		c.Context,
		crewdesk.SignupRequest{
			Email:    email,
			Password: password,
			Fullname: fullname,
			Gender:   strings.ToUpper(strings.TrimSpace(gender)),
		},
	); err != nil {
		return err
	}

	fmt.Println("Signup was successful. Please login to continue.")

	return nil
}
