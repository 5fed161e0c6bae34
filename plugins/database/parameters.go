package database

import (
	"time"

	flag "github.com/spf13/pflag"
)

const (
	// CfgDatabaseDir defines the directory of the database.
	CfgDatabaseDir = "database.directory"
	// CfgDatabaseInMemory defines whether to use an in-memory database.
	CfgDatabaseInMemory = "database.inMemory"
	// CfgDatabaseDirty defines whether to override the database dirty flag.
	CfgDatabaseDirty = "database.dirty"
	// CfgDatabaseGCInterval defines how often the value log of the database is garbage collected.
	CfgDatabaseGCInterval = "database.gcInterval"
)

func init() {
	flag.String(CfgDatabaseDir, "faucetdb", "path to the database folder")
	flag.Bool(CfgDatabaseInMemory, false, "whether the database is only kept in memory and not persisted")
	flag.String(CfgDatabaseDirty, "", "set the dirty flag of the database")
	flag.Duration(CfgDatabaseGCInterval, 10*time.Minute, "interval of the database garbage collection")
}
