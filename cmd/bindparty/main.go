package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	configKey   = "config"
	templateKey = "template"
	dataKey     = "data"
	elKey       = "el"
	logLevelKey = "log-level"
	setKey      = "set"
	inputKey    = "input"
	eventKey    = "event"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "bindparty",
		Usage:     "Bind an HTML template to data and print the result",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "render",
				Usage: "Render the bound template after applying writes, inputs and events",
				Flags: append(commonFlags(),
					&cli.StringSliceFlag{
						Name:  setKey,
						Usage: "key=value write applied through the VM, in order",
					},
					&cli.StringSliceFlag{
						Name:  inputKey,
						Usage: "selector=value simulated user input, in order",
					},
					&cli.StringSliceFlag{
						Name:  eventKey,
						Usage: "selector=type event dispatched on the selected node, in order",
					},
				),
				Action: render,
			},
			{
				Name:   "bindings",
				Usage:  "List every binding the template declares",
				Flags:  commonFlags(),
				Action: bindings,
			},
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    configKey,
			Aliases: []string{"c"},
			Usage:   "Project file (YAML)",
		},
		&cli.StringFlag{
			Name:    templateKey,
			Aliases: []string{"t"},
			Usage:   "HTML template, overrides the project file",
		},
		&cli.StringFlag{
			Name:    dataKey,
			Aliases: []string{"d"},
			Usage:   "YAML or JSON data file, overrides the project file",
		},
		&cli.StringFlag{
			Name:  elKey,
			Usage: "Selector of the host element, overrides the project file",
		},
		&cli.StringFlag{
			Name:  logLevelKey,
			Usage: "debug, info, warn or error, overrides the project file",
		},
	}
}
