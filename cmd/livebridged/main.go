// livebridged runs the bridge daemon: it hosts the in-process session
// model, starts the scheduler loop, and serves the command protocol
// over TCP.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"livebridge/bridge"
	"livebridge/commands"
	"livebridge/config"
	"livebridge/discovery"
	"livebridge/live"
	"livebridge/logging"
	"livebridge/middleware"
	"livebridge/router"
	"livebridge/server"
)

func main() {
	app := &cli.App{
		Name:  "livebridged",
		Usage: "session automation bridge daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
				EnvVars: []string{"LIVEBRIDGE_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "listen port (overrides config)",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("host") {
		cfg.Host = c.String("host")
	}
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	song := live.NewSong()
	looper := live.NewLooper()
	defer looper.Close()

	table := router.NewTable()
	commands.Register(table, song)

	r := router.New(table, bridge.New(looper, cfg.BridgeTimeout.Std(), log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
		}
		r.Use(middleware.RateLimit(cfg.RateLimit, burst))
	}

	srv := server.New(r, server.Options{
		Addr:          cfg.Addr(),
		MaxClients:    cfg.MaxClients,
		ClientTimeout: cfg.ClientTimeout.Std(),
		MaxBuffer:     cfg.MaxBuffer,
		Logger:        log,
	})
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	if len(cfg.EtcdEndpoints) > 0 {
		reg, err := discovery.NewEtcdRegistry(cfg.EtcdEndpoints)
		if err != nil {
			return fmt.Errorf("connect etcd: %w", err)
		}
		defer reg.Close()

		addr := srv.Addr()
		if err := reg.Register(discovery.Instance{Addr: addr}, 10); err != nil {
			return fmt.Errorf("register instance: %w", err)
		}
		defer reg.Deregister(addr)
		log.Info("registered with etcd", zap.Strings("endpoints", cfg.EtcdEndpoints))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("shutting down", zap.String("signal", sig.String()))
	return nil
}
