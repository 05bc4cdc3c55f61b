// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/clubsphere/internal/app/system/auth"
	"github.com/dalemusser/clubsphere/internal/app/system/ratelimit"
	"github.com/dalemusser/clubsphere/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// WAFFLE passes DBDeps by value to every hook, so resources created after
// ConnectDB (the token verifier, background jobs, the rate limiter) hang off
// the shared Runtime pointer where Shutdown can find them.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Runtime *Runtime
}

// Runtime holds process-wide resources started by Startup and BuildHandler.
type Runtime struct {
	Verifier        auth.Verifier
	stopJWKS        func()
	shutdownTracing func(context.Context) error
	runner          *tasks.Runner
	limiter         *ratelimit.Limiter
}
