// Copyright (c) 2025 The Astar Network developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/astar-network/astar/api"
	"github.com/astar-network/astar/log"
	"github.com/astar-network/astar/metrics"
	"github.com/astar-network/astar/node"
	"github.com/astar-network/astar/txpool"
)

const appName = "Astar"

var logger = log.WithContext("pkg", "astar")

var (
	version   string
	gitCommit string
	gitTag    string
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
		Name:      appName,
		Usage:     "dApp staking dev node",
		Copyright: "2025 Astar Network <https://astar.network/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			metricsAddrFlag,
			enableMetricsFlag,
			verbosityFlag,
			jsonLogsFlag,
			blockIntervalFlag,
			onDemandFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:  "dump-config",
				Usage: "print the effective chain configuration as yaml",
				Flags: []cli.Flag{
					configFlag,
				},
				Action: dumpConfigAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	defer func() { logger.Info("exited") }()

	initLogger(ctx)

	cfg, err := loadChainConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	gene := cfg.genesis()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	db, dataDir, closeDB, err := openDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing chain database..."); closeDB() }()

	pool := txpool.New(txpool.Options{Limit: 10000})
	defer func() { logger.Info("closing tx pool..."); pool.Close() }()

	options := node.DefaultOptions()
	options.BlockInterval = ctx.Duration(blockIntervalFlag.Name)
	options.OnDemand = ctx.Bool(onDemandFlag.Name)

	// pending storage migrations run while opening
	n, err := node.New(exitSignal, db, gene, pool, options)
	if err != nil {
		return err
	}

	apiHandler, apiCloser := api.New(n, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	defer func() { logger.Info("closing subscriptions..."); apiCloser() }()

	apiURL, srvCloser, err := startAPIServer(ctx.String(apiAddrFlag.Name), apiHandler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); srvCloser() }()

	metricsURL := ""
	if ctx.Bool(enableMetricsFlag.Name) {
		url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeFunc() }()
		metricsURL = url
	}

	printStartupMessage(n, gene, dataDir, apiURL, metricsURL)

	return n.Run(exitSignal)
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := loadChainConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	data, err := cfg.marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
