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

func userList(c *cli.Context) error {
	// Args
	if c.Args().Len() != 0 {
		return errors.New("user list requires no arguments")
	}

	// Command-specific flags
	output := c.String(flagOutput)
	page := c.Int(flagPage)
	limit := c.Int(flagLimit)
	search := c.String(flagSearch)
	role := c.String(flagRole)

	if err := validateOutputFormat(output); err != nil {
		return err
	}

	client, err := getClient(c)
	if err != nil {
		return errors.Wrap(err, "error getting crewdesk client")
	}

	userList, err := client.Users().List(
		c.Context,
		crewdesk.UsersSelector{
			Search: search,
			Role:   crewdesk.Role(strings.ToUpper(role)),
		},
		crewdesk.ListOptions{
			Page:  page,
			Limit: limit,
		},
	)
	if err != nil {
		return err
	}

	if len(userList.Items) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	switch strings.ToLower(output) {
	case "table":
		table := uitable.New()
		table.AddRow("ID", "EMAIL", "NAME", "ROLE", "CREATED")
		for _, user := range userList.Items {
			table.AddRow(
				user.ID,
				user.Email,
				user.Fullname,
				user.Role,
				user.CreatedAt,
			)
		}
		fmt.Println(table)
		fmt.Printf(
			"\nPage %d of %d (%d users total)\n",
			userList.Pagination.CurrentPage,
			userList.Pagination.TotalPages,
			userList.Pagination.TotalItems,
		)

	case "yaml":
		yamlBytes, err := yaml.Marshal(userList)
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list users operation",
			)
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(userList, "", "  ")
		if err != nil {
			return errors.Wrap(
				err,
				"error formatting output from list users operation",
			)
		}
		fmt.Println(string(prettyJSON))
	}

	return nil
}
