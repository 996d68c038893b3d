package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/solasystems/crewdesk"
)

func profileGet(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("profile get requires no arguments")
	}

	// Command-specific flags
	output := c.String(flagOutput)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	user, err := client.Users().Profile(c.Context)
	if err != nil {
		return err
	}

	return printUser(user, output)
}

// printUser renders a single user in the requested output format.
func printUser(user crewdesk.User, output string) error {
	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "EMAIL", "NAME", "GENDER", "ROLE", "CREATED")
		table.AddRow(
			user.ID,
			user.Email,
			user.Fullname,
			user.Gender,
			user.Role,
			user.CreatedAt,
		)
		fmt.Println(table)

	case "yaml":
		yamlBytes, err := yaml.Marshal(user)
		if err != nil {
			return errors.Wrap(err, "error formatting output from get user operation")
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(user, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output from get user operation")
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
