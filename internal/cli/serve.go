package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dxdlab/dxd/internal/api"
	"github.com/dxdlab/dxd/pkg/config"
	"github.com/dxdlab/dxd/pkg/store"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		cacheBackend string
		redisAddr    string
		storeKind    string
		mongoURI     string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for submitting and polling solve jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			cfg = applyServeOverrides(cmd, cfg, cacheBackend, redisAddr, storeKind, mongoURI)

			st, err := newRunStore(cmd.Context(), cfg, storeKind)
			if err != nil {
				return err
			}
			defer st.Close(cmd.Context())

			srv := api.New(st, newCache(cfg), cfg, logger)
			logger.Info("serving", "addr", addr, "store", storeKind, "cache_backend", cfg.CacheBackend)

			printInfo("dxd api listening")
			printKeyValue("addr", addr)
			printKeyValue("store", storeKind)
			printKeyValue("cache", cfg.CacheBackend)
			printNextStep("submit a run", fmt.Sprintf("curl -X POST http://localhost%s/runs", addr))
			printNewline()

			return http.ListenAndServe(addr, srv.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cacheBackend, "cache-backend", "", "memo cache backend: file or redis")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address, when --cache-backend redis")
	cmd.Flags().StringVar(&storeKind, "store", "none", "run history backend: mongo or none")
	cmd.Flags().StringVar(&mongoURI, "mongo-uri", "", "mongo connection URI, when --store mongo")

	return cmd
}

func applyServeOverrides(cmd *cobra.Command, cfg config.Config, cacheBackend, redisAddr, storeKind, mongoURI string) config.Config {
	var over config.Overrides
	if cmd.Flags().Changed("cache-backend") {
		switch cacheBackend {
		case config.CacheBackendRedis, config.CacheBackendFile, config.CacheBackendNone:
			backend := cacheBackend
			over.CacheBackend = &backend
		}
	}
	if cmd.Flags().Changed("redis-addr") {
		over.RedisAddr = &redisAddr
	}
	if cmd.Flags().Changed("mongo-uri") {
		over.MongoURI = &mongoURI
	}
	return cfg.Merge(over)
}

func newRunStore(ctx context.Context, cfg config.Config, kind string) (store.Store, error) {
	if kind != "mongo" {
		return store.NewNullStore(), nil
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("--store mongo requires --mongo-uri")
	}
	return store.NewMongoStore(ctx, cfg.MongoURI, "dxd")
}
