package main

import (
	"context"
	"io"
	"net/url"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/graph/store/cdb"
	memgraph "github.com/Ahmed-Sermani/linkrank/graph/store/memory"
	redisgraph "github.com/Ahmed-Sermani/linkrank/graph/store/redis"
	"github.com/Ahmed-Sermani/linkrank/loader"
	"github.com/Ahmed-Sermani/linkrank/ranker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

type recordStore interface {
	graph.Store
	io.Closer
}

// nopCloser adapts the in-memory store to recordStore.
type nopCloser struct {
	*memgraph.InMemoryStore
}

func (nopCloser) Close() error { return nil }

func getRecordStore(ctx context.Context, storeURI string, logger *logrus.Entry) (recordStore, error) {
	if storeURI == "" {
		return nil, xerrors.Errorf("record store URI must be specified with --store-uri")
	}

	uri, err := url.Parse(storeURI)
	if err != nil {
		return nil, xerrors.Errorf("could not parse record store URI: %w", err)
	}

	switch uri.Scheme {
	case "in-memory":
		logger.Info("using in-memory record store")
		return nopCloser{memgraph.NewInMemoryStore()}, nil
	case "postgresql":
		logger.Info("using CDB record store")
		return cdb.NewCockroachDBStore(storeURI)
	case "redis":
		logger.Info("using redis record store")
		return redisgraph.NewRedisStoreFromURL(ctx, storeURI)
	default:
		return nil, xerrors.Errorf("unsupported record store URI scheme: %q", uri.Scheme)
	}
}

func rankerConfig(v *viper.Viper, logger *logrus.Entry) ranker.Config {
	cfg := ranker.DefaultConfig()
	cfg.DampingFactor = v.GetFloat64("damping")
	cfg.Tolerance = v.GetFloat64("tolerance")
	cfg.MaxIterations = v.GetInt("max-iterations")
	cfg.ComputeWorkers = v.GetInt("workers")
	cfg.Graph = graph.BuildConfig{
		Normalize:  normalizer(v),
		SinglePass: v.GetBool("single-pass"),
	}
	cfg.Logger = logger
	return cfg
}

func normalizer(v *viper.Viper) func(string) string {
	if v.GetBool("keep-case") {
		return graph.KeepCase
	}
	return graph.LowerCase
}

func loaderConfig(v *viper.Viper, store graph.Store, logger *logrus.Entry) loader.Config {
	return loader.Config{
		Store:        store,
		Normalize:    normalizer(v),
		ParseWorkers: v.GetInt("load-workers"),
		Logger:       logger,
	}
}
