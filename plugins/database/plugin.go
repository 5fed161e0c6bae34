// Package database is a plugin that manages the badger database (e.g. garbage collection).
package database

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/daemon"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/kvstore"
	"go.uber.org/dig"

	"github.com/iotaledger/tokenfaucet/packages/database"
	"github.com/iotaledger/tokenfaucet/packages/node"
	"github.com/iotaledger/tokenfaucet/packages/shutdown"
	"github.com/iotaledger/tokenfaucet/plugins/config"
)

// PluginName is the name of the database plugin.
const PluginName = "Database"

type dependencies struct {
	dig.In

	DB    database.DB
	Store kvstore.KVStore
}

var (
	// Plugin is the plugin instance of the database plugin.
	Plugin *node.Plugin
	deps   = new(dependencies)
)

func init() {
	Plugin = node.NewPlugin(PluginName, deps, node.Enabled, configure, run)

	Plugin.Events.Init.Attach(event.NewClosure(func(ev *node.InitEvent) {
		ev.Plugin.Provide(ev.Container, openDatabase, func(db database.DB) kvstore.KVStore {
			return db.NewStore()
		})
	}))
}

func openDatabase() (database.DB, error) {
	if config.Node().GetBool(CfgDatabaseInMemory) {
		return database.NewMemDB(), nil
	}

	db, err := database.NewDB(config.Node().GetString(CfgDatabaseDir))
	if err != nil {
		return nil, errors.Errorf("unable to open the database, please delete the database folder: %w", err)
	}

	return db, nil
}

func configure(plugin *node.Plugin) {
	if err := database.CheckDatabaseVersion(deps.Store); err != nil {
		if errors.Is(err, database.ErrDBVersionIncompatible) {
			plugin.Fatalf("The database scheme was updated. Please delete the database folder. %s", err)
		}
		plugin.Fatalf("Failed to check database version: %s", err)
	}

	if dirty := config.Node().GetString(CfgDatabaseDirty); dirty != "" {
		val, err := strconv.ParseBool(dirty)
		if err != nil {
			plugin.Warnf("Invalid database.dirty flag: %s", err)
		} else if val {
			must(plugin, MarkDatabaseUnhealthy(deps.Store))
		} else {
			must(plugin, MarkDatabaseHealthy(deps.Store))
		}
	}

	unhealthy, err := IsDatabaseUnhealthy(deps.Store)
	must(plugin, err)
	if unhealthy {
		plugin.Fatal("The database is marked as not properly shutdown/corrupted, please delete the database folder and restart.")
	}

	// run GC up on startup
	runDatabaseGC(plugin)
}

func run(plugin *node.Plugin) {
	// we open the database in the configure, so we must also make sure it's closed here
	if err := daemon.BackgroundWorker(PluginName, func(ctx context.Context) {
		manageDBLifetime(ctx, plugin)
	}, shutdown.PriorityDatabase); err != nil {
		plugin.Fatalf("Failed to start as daemon: %s", err)
	}
}

// manageDBLifetime takes care of managing the lifetime of the database. It marks the database as dirty up on
// startup and unmarks it up on shutdown. Up on shutdown it will run the db GC and then close the database.
func manageDBLifetime(ctx context.Context, plugin *node.Plugin) {
	// we mark the database only as corrupted from within a background worker, which means
	// that we only mark it as dirty, if the node actually started up properly
	must(plugin, MarkDatabaseUnhealthy(deps.Store))

	ticker := time.NewTicker(config.Node().GetDuration(CfgDatabaseGCInterval))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			runDatabaseGC(plugin)
		case <-ctx.Done():
			runDatabaseGC(plugin)
			must(plugin, MarkDatabaseHealthy(deps.Store))
			plugin.Infof("Syncing database to disk...")
			if err := deps.DB.Close(); err != nil {
				plugin.Errorf("Failed to flush the database: %s", err)
			}
			plugin.Infof("Syncing database to disk... done")
			return
		}
	}
}

func runDatabaseGC(plugin *node.Plugin) {
	if !deps.DB.RequiresGC() {
		return
	}
	plugin.Info("Running database garbage collection...")
	s := time.Now()
	if err := deps.DB.GC(); err != nil {
		plugin.Warnf("Database garbage collection failed: %s", err)
		return
	}
	plugin.Infof("Database garbage collection done, took %v...", time.Since(s))
}

func must(plugin *node.Plugin, err error) {
	if err != nil {
		plugin.Panic(err)
	}
}
