// Package database opens the GORM connection used for release persistence.
//
// SQLite is the default driver and stores everything in a single file, which
// suits a self-hosted tracker. MySQL is supported for shared deployments.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
