package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func login(c *cli.Context) error {
	engine, err := getEngine(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	if c.Bool(flagBiometric) {
		if err := engine.BiometricLogin(c.Context); err != nil {
			return err
		}
		fmt.Println("Login was successful.")
		return nil
	}

	email := c.String(flagEmail)
	password := c.String(flagPassword)

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
		password = strings.TrimSpace(password)
		if password != "" {
			break
		}
		fmt.Print("Password? ")
		if password, err = reader.ReadString('\n'); err != nil {
			return errors.Wrap(err, "error reading password from stdin")
		}
	}

	if err := engine.Login(c.Context, email, password); err != nil {
		return err
	}

	session := engine.Current()
	fmt.Printf("\nYou are logged in as %s.\n", session.User.Email)
	return nil
}
