// Copyright (c) 2025 The DeFi Yield Farm developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	isatty "github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/api"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/eventdb"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/kv"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/log"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/lvldb"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/metrics"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/state"
	"github.com/MauricioRaulFerreyra/proyecto-defi-yield-farm-modulo-5/tokenfarm"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "tokenfarm",
		Usage:     "DeFi yield farm node",
		Copyright: "2025 The DeFi Yield Farm developers",
		Flags: []cli.Flag{
			dataDirFlag,
			configFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			pprofFlag,
			distributeEveryFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	var handler log.Logger
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.NewLogger(log.JSONHandlerWithLevel(os.Stderr, level))
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"
		handler = log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor))
	}
	log.SetDefault(handler)
}

func openStore(dataDir string) (kv.GetPutCloser, error) {
	if dataDir == "" {
		logger.Info("using in-memory store")
		return lvldb.NewMem()
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, err
	}
	path := filepath.Join(dataDir, "main.db")
	logger.Info("opening main store", "path", path)
	return lvldb.New(path, lvldb.Options{})
}

func openEventDB(dataDir string) (*eventdb.EventDB, error) {
	if dataDir == "" {
		return eventdb.NewMem()
	}
	return eventdb.New(filepath.Join(dataDir, "events.db"))
}

func run(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	cfg, err := loadFarmConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}

	store, err := openStore(ctx.String(dataDirFlag.Name))
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing main store..."); store.Close() }()

	events, err := openEventDB(ctx.String(dataDirFlag.Name))
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing event store..."); events.Close() }()

	st := state.New(store)
	farmAddr, err := cfg.address("farmAddress", cfg.FarmAddress)
	if err != nil {
		return err
	}
	owner, err := cfg.address("owner", cfg.Owner)
	if err != nil {
		return err
	}

	farmInstance := tokenfarm.New(farmAddr, st)
	farmInstance.SetEventSink(events.Sink())

	node, err := newNode(store, st, farmInstance, owner, ctx.Uint64(distributeEveryFlag.Name))
	if err != nil {
		return err
	}
	if err := bootstrap(node, cfg); err != nil {
		return err
	}

	printStartupMessage(farmInstance, node, ctx)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(runCtx)

	group.Go(func() error { return node.Run(groupCtx) })
	group.Go(func() error {
		return serveHTTP(groupCtx, "API", ctx.String(apiAddrFlag.Name), api.New(
			farmInstance,
			events,
			node.Env,
			api.Options{
				AllowedOrigins:  ctx.String(apiCorsFlag.Name),
				PprofOn:         ctx.Bool(pprofFlag.Name),
				EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
				EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
				Locker:          node.Locker(),
			},
		))
	})
	if ctx.Bool(enableMetricsFlag.Name) {
		group.Go(func() error {
			return serveHTTP(groupCtx, "metrics", ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler().ServeHTTP)
		})
	}

	return group.Wait()
}

func serveHTTP(ctx context.Context, name, addr string, handler http.HandlerFunc) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(listener) }()
	logger.Info(name+" server started", "addr", "http://"+listener.Addr().String())

	select {
	case <-ctx.Done():
		logger.Info("stopping " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}

func printStartupMessage(f *tokenfarm.Farm, n *Node, ctx *cli.Context) {
	v, _ := f.Version()
	status, _ := f.Status()
	env := n.Env()
	fmt.Printf(`Starting farm node
    Farm        [ %v ]
    Revision    [ %d ]
    Status      [ %v ]
    Head        [ block %d ]
    API portal  [ http://%v ]
`,
		f.Address(),
		v,
		status,
		env.BlockNumber,
		ctx.String(apiAddrFlag.Name))
}
