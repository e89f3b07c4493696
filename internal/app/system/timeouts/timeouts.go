// internal/app/system/timeouts/timeouts.go

// Package timeouts holds the shared deadlines for database-backed request
// work, so individual call sites don't invent their own.
package timeouts

import "time"

const (
	// Ping bounds health-check pings against Mongo.
	Ping = 2 * time.Second
	// Lookup bounds single-document reads on the request path, such as the
	// per-request session user fetch.
	Lookup = 5 * time.Second
	// Upload bounds a full image upload including the storage backend write.
	Upload = 30 * time.Second
)
