package main

import (
	"fmt"
	"os"

	"go-restaurant-pos/internal/app"
	"go-restaurant-pos/internal/cli"
	"go-restaurant-pos/internal/config"
	"go-restaurant-pos/internal/logger"
)

func main() {
	logger.SetOutput(os.Stderr)

	c := cli.NewCLI(cli.Options{
		Open: func() (*app.App, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			logger.SetLevel(cfg.LogLevel)
			return app.New(cfg)
		},
		Output: os.Stdout,
	})

	if err := c.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
