package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	ab "github.com/spetersoncode/a2abatch"
	"github.com/spetersoncode/a2abatch/batch"
)

// sendCommand creates the 'send' command.
func sendCommand() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Send one message or a batch of messages and print the outputs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Text of a single message",
			},
			&cli.StringFlag{
				Name:  "context-id",
				Usage: "Context ID for --message",
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Batch file as a JSON array or JSON Lines of {\"message\", \"contextId\"} records ('-' for stdin)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the outputs to this file instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "continue-on-fail",
				Usage: "Record failed items as {\"error\": ...} instead of aborting the batch",
			},
		},
		Action: sendAction,
	}
}

func sendAction(c *cli.Context) error {
	items, err := readItems(c)
	if err != nil {
		return err
	}

	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(newClient(cfg, logger),
		batch.WithMode(batch.ModeFor(cfg.ContinueOnFail)),
		batch.WithLogger(logger),
	)

	report, err := runner.Run(c.Context, items)
	if err != nil {
		return err
	}

	return writeOutputs(c, report.Outputs)
}

func readItems(c *cli.Context) ([]ab.Item, error) {
	message, input := c.String("message"), c.String("input")
	switch {
	case c.IsSet("message") && input != "":
		return nil, fmt.Errorf("--message and --input cannot be used together")
	case c.IsSet("message"):
		return []ab.Item{ab.NewItem(message, c.String("context-id"))}, nil
	case input == "":
		return nil, fmt.Errorf("one of --message or --input is required")
	}

	var r io.Reader
	if input == "-" {
		r = c.App.Reader
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	return ab.DecodeItems(r)
}

func writeOutputs(c *cli.Context, outputs []ab.Output) error {
	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode outputs: %w", err)
	}
	data = append(data, '\n')

	if path := c.String("output"); path != "" && path != "-" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	_, err = c.App.Writer.Write(data)
	return err
}
