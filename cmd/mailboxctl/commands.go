// cmd/mailboxctl/commands.go
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"
)

func readCommand() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "read a byte range and print it as a hex dump",
		ArgsUsage: "<offset> <count>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: read <offset> <count>")
			}
			off, err := parseNum(c.Args().Get(0))
			if err != nil {
				return err
			}
			count, err := parseNum(c.Args().Get(1))
			if err != nil {
				return err
			}

			sess, closer, err := openSession(c)
			if err != nil {
				return err
			}
			defer closer()

			buf := make([]byte, count)
			if err := sess.Read(context.Background(), off, buf); err != nil {
				return err
			}
			fmt.Print(hex.Dump(buf))
			return nil
		},
	}
}

func writeCommand() *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "write hex-encoded bytes at an offset",
		ArgsUsage: "<offset> <hexbytes>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: write <offset> <hexbytes>")
			}
			off, err := parseNum(c.Args().Get(0))
			if err != nil {
				return err
			}
			data, err := hex.DecodeString(c.Args().Get(1))
			if err != nil {
				return fmt.Errorf("bad hex payload: %w", err)
			}

			sess, closer, err := openSession(c)
			if err != nil {
				return err
			}
			defer closer()

			if err := sess.Write(context.Background(), off, data); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes at %d\n", len(data), off)
			return nil
		},
	}
}

func dumpCommand() *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "dump the whole mailbox region",
		Action: func(c *cli.Context) error {
			sess, closer, err := openSession(c)
			if err != nil {
				return err
			}
			defer closer()

			buf := make([]byte, sess.RegionSize())
			if err := sess.Read(context.Background(), 0, buf); err != nil {
				return err
			}
			fmt.Print(hex.Dump(buf))
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "probe the device with a one-byte read",
		Action: func(c *cli.Context) error {
			// Session creation already performs the probe read.
			_, closer, err := openSession(c)
			if err != nil {
				return err
			}
			defer closer()

			fmt.Println("mailbox ok")
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "poll a byte range and print it whenever it changes",
		ArgsUsage: "<offset> <count>",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "poll interval",
				Value: time.Second,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: watch <offset> <count>")
			}
			off, err := parseNum(c.Args().Get(0))
			if err != nil {
				return err
			}
			count, err := parseNum(c.Args().Get(1))
			if err != nil {
				return err
			}

			sess, closer, err := openSession(c)
			if err != nil {
				return err
			}
			defer closer()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			ticker := time.NewTicker(c.Duration("interval"))
			defer ticker.Stop()

			var last []byte
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					buf := make([]byte, count)
					if err := sess.Read(ctx, off, buf); err != nil {
						fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
						continue
					}
					if !bytes.Equal(buf, last) {
						fmt.Printf("%s %d@%d changed:\n%s", time.Now().Format(time.RFC3339), count, off, hex.Dump(buf))
						last = buf
					}
				}
			}
		},
	}
}

func poweroffCommand() *cli.Command {
	return &cli.Command{
		Name:  "poweroff",
		Usage: "run the shutdown handshake (never returns on success)",
		Action: func(c *cli.Context) error {
			sess, _, err := openSession(c)
			if err != nil {
				return err
			}

			// Bypasses the transaction engine: single raw status
			// write, settle delay, halt.
			sess.Poweroff()
			return nil
		},
	}
}
