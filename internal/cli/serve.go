package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/server"
	"github.com/matzehuels/tagcloud/pkg/store"
)

const (
	defaultAddr        = ":8080"
	backendDialTimeout = 10 * time.Second

	// redisKeyPrefix namespaces entries in a Redis shared with other services.
	redisKeyPrefix = "tagcloud:v1:"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string // listen address
	redis   string // Redis address; empty uses the local file cache
	mongo   string // MongoDB URI; empty keeps clouds in memory
	mongoDB string // MongoDB database name
	noCache bool   // disable caching
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, mongoDB: store.DefaultDatabase}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tag cloud HTTP API",
		Long: `Serve starts an HTTP server that builds tag clouds on request.

  POST /v1/clouds                 build and store a cloud
  GET  /v1/clouds/{id}            fetch a stored cloud as JSON
  GET  /v1/clouds/{id}.{format}   render a stored cloud
  GET  /healthz                   liveness probe`,
		Example: `  tagcloud serve
  tagcloud serve --addr :9090 --redis localhost:6379 --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd.Flags(), c.config.Serve.flagValues()); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the shared cache")
	cmd.Flags().StringVar(&opts.mongo, "mongo", "", "MongoDB URI for stored clouds (default in memory)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "MongoDB database")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cch, cacheDesc, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	var keyer cache.Keyer
	if _, ok := cch.(*cache.RedisCache); ok {
		keyer = cache.NewScopedKeyer(nil, redisKeyPrefix)
	}
	runner := pipeline.NewRunner(cch, keyer, c.Logger)
	defer runner.Close()

	st, storeDesc, err := serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	printSuccess("Serving tag clouds")
	printKeyValue("Address", opts.addr)
	printKeyValue("Cache", cacheDesc)
	printKeyValue("Store", storeDesc)

	srv := server.New(server.Config{
		Runner: runner,
		Store:  st,
		Logger: logger,
	})
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks Redis when configured, then the file cache.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, string, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), "disabled", nil
	case opts.redis != "":
		dialCtx, cancel := context.WithTimeout(ctx, backendDialTimeout)
		defer cancel()
		c, err := cache.NewRedisCache(dialCtx, cache.RedisOptions{Addr: opts.redis})
		if err != nil {
			return nil, "", err
		}
		return c, "redis " + opts.redis, nil
	}
	c, err := newCache(false)
	if err != nil {
		return nil, "", err
	}
	if fc, ok := c.(*cache.FileCache); ok {
		return c, fc.Dir(), nil
	}
	return c, "disabled", nil
}

// serveStore picks MongoDB when configured, else an in-memory store.
func serveStore(ctx context.Context, opts serveOpts) (store.Store, string, error) {
	if opts.mongo == "" {
		return store.NewMemoryStore(), "memory", nil
	}
	st, err := store.NewMongoStore(ctx, store.MongoOptions{
		URI:      opts.mongo,
		Database: opts.mongoDB,
		Timeout:  backendDialTimeout,
	})
	if err != nil {
		return nil, "", err
	}
	return st, "mongodb " + opts.mongoDB, nil
}
