package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "crewdesk"
	app.Usage = "Manage your CrewDesk account and team from the command line"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
		&cli.StringFlag{
			Name:    flagServer,
			Aliases: []string{"s"},
			Usage:   "Use the API server at the specified address",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:  "login",
			Usage: "Log in to the API server",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "The email address to log in with",
				},
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage:   "The password to log in with",
				},
				&cli.BoolFlag{
					Name: flagBiometric,
					Usage: "Re-enter the previous session using device " +
						"authentication instead of credentials",
				},
			},
			Action: login,
		},
		{
			Name:   "logout",
			Usage:  "Log out of the API server",
			Action: logout,
		},
		{
			Name:  "signup",
			Usage: "Register a new account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    flagEmail,
					Aliases: []string{"e"},
					Usage:   "The email address for the new account",
				},
				&cli.StringFlag{
					Name:    flagPassword,
					Aliases: []string{"p"},
					Usage:   "The password for the new account",
				},
				&cli.StringFlag{
					Name:  flagFullname,
					Usage: "The new account holder's full name",
				},
				&cli.StringFlag{
					Name:  flagGender,
					Usage: "The new account holder's gender",
				},
			},
			Action: signup,
		},
		{
			Name:   "status",
			Usage:  "Show the current session status",
			Action: status,
		},
		{
			Name:  "profile",
			Usage: "Manage your own profile",
			Subcommands: []*cli.Command{
				{
					Name:  "get",
					Usage: "Get your profile",
					Flags: []cli.Flag{
						cliFlagOutput,
					},
					Action: profileGet,
				},
				{
					Name:  "update",
					Usage: "Update your profile",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  flagFullname,
							Usage: "A new full name",
						},
						&cli.StringFlag{
							Name:  flagGender,
							Usage: "A new gender",
						},
					},
					Action: profileUpdate,
				},
			},
		},
		{
			Name:  "user",
			Usage: "Manage users",
			Subcommands: []*cli.Command{
				{
					Name:  "list",
					Usage: "List users",
					Flags: []cli.Flag{
						cliFlagOutput,
						&cli.IntFlag{
							Name:  flagPage,
							Usage: "Retrieve the specified page of results",
						},
						&cli.IntFlag{
							Name:  flagLimit,
							Usage: "Retrieve at most the specified number of results",
						},
						&cli.StringFlag{
							Name:  flagSearch,
							Usage: "Filter users by name or email",
						},
						&cli.StringFlag{
							Name:  flagRole,
							Usage: "Filter users by role",
						},
					},
					Action: userList,
				},
				{
					Name:      "get",
					Usage:     "Get a user",
					ArgsUsage: "USER_ID",
					Flags: []cli.Flag{
						cliFlagOutput,
					},
					Action: userGet,
				},
				{
					Name:  "create",
					Usage: "Create a new user",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:    flagEmail,
							Aliases: []string{"e"},
							Usage:   "The new user's email address",
						},
						&cli.StringFlag{
							Name:  flagFullname,
							Usage: "The new user's full name",
						},
						&cli.StringFlag{
							Name:    flagPassword,
							Aliases: []string{"p"},
							Usage:   "The new user's password",
						},
						&cli.StringFlag{
							Name:  flagGender,
							Usage: "The new user's gender",
						},
						&cli.StringFlag{
							Name:  flagRole,
							Usage: "The new user's role",
							Value: "USER",
						},
					},
					Action: userCreate,
				},
				{
					Name:      "update",
					Usage:     "Update a user",
					ArgsUsage: "USER_ID",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  flagFullname,
							Usage: "A new full name",
						},
						&cli.StringFlag{
							Name:  flagGender,
							Usage: "A new gender",
						},
						&cli.StringFlag{
							Name:  flagRole,
							Usage: "A new role",
						},
						&cli.StringFlag{
							Name:    flagPassword,
							Aliases: []string{"p"},
							Usage:   "A new password",
						},
					},
					Action: userUpdate,
				},
			},
		},
	}
	fmt.Println()
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
