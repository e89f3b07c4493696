// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/glowsite/internal/app/system/content"
	"github.com/dalemusser/glowsite/internal/app/system/mailer"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. It serves as
// the central place to store all database clients and backend connections
// that the application needs.
//
// The Shutdown hook is responsible for closing these connections gracefully
// when the application terminates.
type DBDeps struct {
	// MongoDB client and database
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// FileStorage for uploaded images (gallery, service photos, etc.)
	FileStorage storage.Store

	// Mailer for sending password reset emails
	Mailer *mailer.Mailer

	// Content holds the aggregated site snapshot served to the public site.
	// Created in ConnectDB, initially synced in Startup, kept fresh by the
	// background refresh job.
	Content *content.Aggregator
}
