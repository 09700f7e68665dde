package main

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/spetersoncode/a2abatch/a2a"
	"github.com/spetersoncode/a2abatch/internal/config"
	"github.com/spetersoncode/a2abatch/internal/logging"
)

// Version is set during build.
var Version = "dev"

// newApp creates and configures the CLI application.
func newApp() *cli.App {
	return &cli.App{
		Name:    "a2a",
		Usage:   "Send messages to an A2A agent",
		Version: Version,
		Commands: []*cli.Command{
			sendCommand(),
			checkCommand(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{config.EnvConfigFile},
			},
			&cli.StringFlag{
				Name:    "server-url",
				Aliases: []string{"u"},
				Usage:   "Agent endpoint URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Per-request transport timeout",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
			},
		},
	}
}

// setup resolves the configuration for a command. Flags override the
// environment, which overrides the YAML file.
func setup(c *cli.Context) (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}

	if c.IsSet("server-url") {
		cfg.ServerURL = c.String("server-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("continue-on-fail") {
		cfg.ContinueOnFail = c.Bool("continue-on-fail")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.NewWithOutput(c.App.ErrWriter, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func newClient(cfg *config.Config, logger logrus.FieldLogger) *a2a.Client {
	return a2a.NewClient(cfg.ServerURL,
		a2a.WithTimeout(cfg.Timeout),
		a2a.WithLogger(logger),
	)
}
