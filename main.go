package main

import (
	"fmt"
	"os"

	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/plugins"
	"github.com/iotaledger/tokenfaucet/plugins/cli"
	"github.com/iotaledger/tokenfaucet/plugins/config"
	"github.com/iotaledger/tokenfaucet/plugins/logger"
)

func main() {
	allPlugins := append(append([]*node.Plugin{}, plugins.Core...), plugins.WebAPI...)
	cli.ConfigureUsage(allPlugins)

	if err := config.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cli.PrintVersion() {
		return
	}

	log, err := logger.NewRootLogger(config.Node())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	faucetNode := node.New(dig.New(), log,
		config.Node().GetStringSlice(node.CfgEnablePlugins),
		config.Node().GetStringSlice(node.CfgDisablePlugins),
		allPlugins...,
	)
	if err = faucetNode.Run(); err != nil {
		log.Fatalf("Failed to start the node: %s", err)
	}
}
