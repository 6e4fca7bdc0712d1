// livectl sends one command to a running livebridged and prints the
// result as JSON.
//
//	livectl send get_session_info
//	livectl send set_track_volume '{"track_index": 0, "volume": 0.8}'
//	livectl commands
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"livebridge/client"
	"livebridge/commands"
	"livebridge/config"
	"livebridge/discovery"
	"livebridge/live"
	"livebridge/router"
)

func main() {
	app := &cli.App{
		Name:  "livectl",
		Usage: "control client for livebridged",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
				EnvVars: []string{"LIVEBRIDGE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "daemon address (overrides config)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "send a command, with optional JSON params",
				ArgsUsage: "NAME [PARAMS_JSON]",
				Action:    send,
			},
			{
				Name:   "commands",
				Usage:  "list every known command name",
				Action: list,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func send(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: livectl send NAME [PARAMS_JSON]")
	}
	name := c.Args().Get(0)

	var params map[string]any
	if raw := c.Args().Get(1); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			return fmt.Errorf("parse params: %w", err)
		}
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	opts := client.Options{
		Addr:        cfg.Addr(),
		MutateDelay: cfg.MutateDelay.Std(),
		MaxBuffer:   cfg.MaxBuffer,
	}
	if c.IsSet("addr") {
		opts.Addr = c.String("addr")
	} else if len(cfg.EtcdEndpoints) > 0 {
		reg, err := discovery.NewEtcdRegistry(cfg.EtcdEndpoints)
		if err != nil {
			return fmt.Errorf("connect etcd: %w", err)
		}
		defer reg.Close()
		opts.Registry = reg
	}

	cl := client.New(opts)
	defer cl.Close()

	result, err := cl.SendCommand(name, params)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func list(c *cli.Context) error {
	table := router.NewTable()
	commands.Register(table, live.NewSong())
	for _, name := range table.Names() {
		if commands.IsMutating(name) {
			fmt.Printf("%s (mutating)\n", name)
		} else {
			fmt.Println(name)
		}
	}
	return nil
}
