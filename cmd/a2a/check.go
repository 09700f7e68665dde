package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// checkCommand creates the 'check' command.
func checkCommand() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "Fetch the agent card to verify the endpoint is reachable",
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	card, err := newClient(cfg, logger).CheckConnection(c.Context)
	if err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Agent:    %s\n", card.Name)
	if card.Version != "" {
		fmt.Fprintf(c.App.Writer, "Version:  %s\n", card.Version)
	}
	if card.URL != "" {
		fmt.Fprintf(c.App.Writer, "URL:      %s\n", card.URL)
	}
	if len(card.Skills) > 0 {
		fmt.Fprintf(c.App.Writer, "Skills:   %d\n", len(card.Skills))
	}
	return nil
}
