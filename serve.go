package main

import (
	"os/signal"
	"syscall"
	"time"

	memindexer "github.com/Ahmed-Sermani/linkrank/indexer/store/memory"
	"github.com/Ahmed-Sermani/linkrank/loader"
	"github.com/Ahmed-Sermani/linkrank/service"
	rankersvc "github.com/Ahmed-Sermani/linkrank/service/ranker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

func newServeCmd(v *viper.Viper, logger *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Periodically recompute PageRank scores for the record store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, v, logger)
		},
	}
	cmd.Flags().String("input", "", "An optional CSV file with title,link,count rows to load on start-up")
	cmd.Flags().Duration("update-interval", time.Hour, "The time between subsequent PageRank score updates")
	return cmd
}

func runServe(cmd *cobra.Command, v *viper.Viper, logger *logrus.Entry) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer cancel()

	store, err := getRecordStore(ctx, v.GetString("store-uri"), logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	idx, err := memindexer.NewInMemoryBleveIndexer()
	if err != nil {
		return err
	}
	defer func() { _ = idx.Close() }()

	if path := v.GetString("input"); path != "" {
		in, err := openInput(cmd, path)
		if err != nil {
			return err
		}
		defer func() { _ = in.Close() }()

		cfg := loaderConfig(v, store, logger.WithField("component", "loader"))
		cfg.Indexer = idx
		l, err := loader.NewLoader(cfg)
		if err != nil {
			return err
		}
		if _, err = l.Load(ctx, in); err != nil {
			return xerrors.Errorf("load records: %w", err)
		}
	}

	svc, err := rankersvc.NewService(rankersvc.Config{
		Records:        store,
		Indexer:        idx,
		Ranker:         rankerConfig(v, logger.WithField("service", "ranker")),
		UpdateInterval: v.GetDuration("update-interval"),
		TopK:           v.GetInt("top"),
		Logger:         logger.WithField("service", "ranker"),
	})
	if err != nil {
		return err
	}

	return service.Group{svc}.Run(ctx)
}
