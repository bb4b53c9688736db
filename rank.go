package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/Ahmed-Sermani/linkrank/loader"
	"github.com/Ahmed-Sermani/linkrank/ranker"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

func newRankCmd(v *viper.Viper, logger *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Load a title,link,count CSV file and print the top-ranked articles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRank(cmd, v, logger)
		},
	}
	cmd.Flags().String("input", "-", "The CSV file with title,link,count rows (- for stdin)")
	return cmd
}

func runRank(cmd *cobra.Command, v *viper.Viper, logger *logrus.Entry) error {
	ctx := cmd.Context()

	store, err := getRecordStore(ctx, v.GetString("store-uri"), logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	in, err := openInput(cmd, v.GetString("input"))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	l, err := loader.NewLoader(loaderConfig(v, store, logger.WithField("component", "loader")))
	if err != nil {
		return err
	}
	if _, err = l.Load(ctx, in); err != nil {
		return xerrors.Errorf("load records: %w", err)
	}

	r, err := ranker.NewRanker(rankerConfig(v, logger.WithField("component", "ranker")))
	if err != nil {
		return err
	}
	it, err := store.Records()
	if err != nil {
		return err
	}
	res, err := r.RankIterator(ctx, it)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tSCORE\tTITLE")
	for i, s := range ranker.Top(res.Scores, v.GetInt("top")) {
		fmt.Fprintf(w, "%d\t%.6f\t%s\n", i+1, s.Score, s.Title)
	}
	if !res.Converged {
		fmt.Fprintf(w, "\nnot converged after %d iterations\n", res.Iterations)
	}
	return w.Flush()
}
