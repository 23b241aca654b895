package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// @title Conference Directory API
// @version 1.0
// @description Browse, filter, join and favorite conferences; owners manage their conferences, speakers and tags.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session JWT.
func main() {
	app := &cli.Command{
		Name:  "confdir",
		Usage: "Conference directory API server",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "confdir:", err)
		os.Exit(1)
	}
}
