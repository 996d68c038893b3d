package main

import "github.com/urfave/cli/v2"

const (
	flagBiometric = "biometric"
	flagEmail     = "email"
	flagFullname  = "fullname"
	flagGender    = "gender"
	flagInsecure  = "insecure"
	flagLimit     = "limit"
	flagOutput    = "output"
	flagPage      = "page"
	flagPassword  = "password"
	flagRole      = "role"
	flagSearch    = "search"
	flagServer    = "server"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in another format. Supported formats: table, " +
			"json, yaml",
		Value: "table",
	}
)
