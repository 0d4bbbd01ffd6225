package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/griddeck/griddeck/pkg/store"
)

// storeOpts holds the backend selection flags shared by commands that
// read or write saved layouts.
type storeOpts struct {
	backend  string // "file", "redis", or "mongo"
	dir      string // file backend directory
	redisURL string // redis backend connection URL
	mongoURI string // mongo backend connection URI
	mongoDB  string // mongo backend database name
}

// register adds the store flags to cmd's persistent flag set.
func (o *storeOpts) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.backend, "store", "file", "store backend: file, redis, or mongo")
	cmd.PersistentFlags().StringVar(&o.dir, "store-dir", "", "file backend directory (default ~/.config/griddeck/layouts)")
	cmd.PersistentFlags().StringVar(&o.redisURL, "redis-url", "redis://localhost:6379/0", "redis backend connection URL")
	cmd.PersistentFlags().StringVar(&o.mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo backend connection URI")
	cmd.PersistentFlags().StringVar(&o.mongoDB, "mongo-db", "", "mongo backend database name (default griddeck)")
}

// open connects the selected backend. Callers own the returned store
// and must Close it.
func (o *storeOpts) open(ctx context.Context) (store.Store, error) {
	switch o.backend {
	case "file":
		return store.NewFileStore(o.dir)
	case "redis":
		return store.NewRedisStore(ctx, o.redisURL)
	case "mongo":
		return store.NewMongoStore(ctx, o.mongoURI, o.mongoDB)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s (available: file, redis, mongo)", o.backend)
	}
}
