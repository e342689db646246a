package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tendermint/tendermint/abci/server"
)

const (
	BindKey    = "bind"
	DebugKey   = "debug"
	MetricsKey = "metrics"
)

func startCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		RunE:  startFunc,
	}
	addStartFlags(c.Flags())
	return c
}

func addStartFlags(flags *pflag.FlagSet) {
	flags.String(BindKey, "tcp://localhost:26658", "address server listens on")
	flags.Bool(DebugKey, false, "call stack returned on error")
	flags.String(MetricsKey, "", "address of the prometheus metrics endpoint, for example localhost:9090 (disabled when empty)")
}

func startFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	home, err := flags.GetString(HomeKey)
	if err != nil {
		return err
	}
	addr, err := flags.GetString(BindKey)
	if err != nil {
		return err
	}
	debug, err := flags.GetBool(DebugKey)
	if err != nil {
		return err
	}
	metricsAddr, err := flags.GetString(MetricsKey)
	if err != nil {
		return err
	}
	logger, err := logger(c)
	if err != nil {
		return err
	}

	opts := app.Options{
		Home:   home,
		Logger: logger,
		Debug:  debug,
	}
	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		opts.Metrics = reg

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			logger.Info("Serving metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error("metrics server", "err", err)
			}
		}()
	}

	application, err := app.GenerateApp(opts)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", application)
	if err != nil {
		return errors.Wrapf(errors.ErrNetwork, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrNetwork, "starting server: %s", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	logger.Info("Shutting down", "signal", (<-sig).String())
	return svr.Stop()
}
