// cmd/mailboxctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/tamzrod/mmc-mailbox/internal/utils"
)

func main() {
	app := &cli.App{
		Name:  "mailboxctl",
		Usage: "read and write the DMMC-STAMP MMC mailbox",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the mailbox config file",
				Value:   "mailbox.yaml",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging (per-chunk transfer trace)",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "append logs to this file instead of stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				utils.SetLogLevel(logrus.DebugLevel)
			}
			if f := c.String("logfile"); f != "" {
				utils.SetOutFile(f)
			}
			return nil
		},
		Commands: []*cli.Command{
			readCommand(),
			writeCommand(),
			dumpCommand(),
			verifyCommand(),
			watchCommand(),
			poweroffCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
