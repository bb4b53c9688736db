/*
   Periodically recomputes PageRank scores for the stored link records and
   pushes them to the search index.
*/
package ranker

import (
	"context"
	"io"
	"time"

	"github.com/Ahmed-Sermani/linkrank/graph"
	linkranker "github.com/Ahmed-Sermani/linkrank/ranker"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// RecordSource is implemented by objects that can iterate the stored link
// records.
type RecordSource interface {
	Records() (graph.RecordIterator, error)
}

// ScoreUpdater is implemented by objects that can store the PageRank score
// of an article.
type ScoreUpdater interface {
	UpdateScore(linkID uuid.UUID, score float64) error
}

// Config encapsulates the settings for configuring the ranker service.
type Config struct {
	// The record store that holds the crawled links.
	Records RecordSource

	// The index that receives the computed scores.
	Indexer ScoreUpdater

	// Settings for the PageRank engine.
	Ranker linkranker.Config

	// The time between subsequent score updates.
	UpdateInterval time.Duration

	// The number of top-ranked articles logged after every update. Zero
	// disables the summary.
	TopK int

	// A clock instance for generating time-related events. If not
	// specified, the default wall-clock will be used instead.
	Clock clock.Clock

	// The logger to use. If not defined an output-discarding logger will
	// be used instead.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Records == nil {
		err = multierror.Append(err, xerrors.New("record source has not been provided"))
	}
	if cfg.Indexer == nil {
		err = multierror.Append(err, xerrors.New("score updater has not been provided"))
	}
	if cfg.UpdateInterval <= 0 {
		err = multierror.Append(err, xerrors.New("invalid value for update interval"))
	}
	if cfg.TopK < 0 {
		err = multierror.Append(err, xerrors.New("invalid value for top-k"))
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = logrus.NewEntry(l)
	}
	if cfg.Ranker.Logger == nil {
		cfg.Ranker.Logger = cfg.Logger
	}
	return err
}

// Service implements the PageRank recalculation component.
type Service struct {
	cfg    Config
	ranker *linkranker.Ranker
}

// NewService creates a new ranker service instance with the specified
// config.
func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("ranker service: config validation failed: %w", err)
	}

	r, err := linkranker.NewRanker(cfg.Ranker)
	if err != nil {
		return nil, xerrors.Errorf("ranker service: %w", err)
	}

	return &Service{
		cfg:    cfg,
		ranker: r,
	}, nil
}

// Name implements service.Service
func (svc *Service) Name() string { return "ranker" }

// Run implements service.Service. Scores are recomputed once every
// UpdateInterval until ctx is cancelled. A failed pass is logged and retried
// on the next tick.
func (svc *Service) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-svc.cfg.Clock.After(svc.cfg.UpdateInterval):
			if _, err := svc.UpdateScores(ctx); err != nil {
				svc.cfg.Logger.WithField("err", err).Error("PageRank update pass failed")
			}
		}
	}
}

// UpdateScores performs a full recompute of the PageRank scores and pushes
// them to the indexer. An empty record store is not an error. Runs that are
// interrupted by ctx leave the indexed scores untouched.
func (svc *Service) UpdateScores(ctx context.Context) (*linkranker.Result, error) {
	svc.cfg.Logger.Info("starting PageRank update pass")
	startAt := svc.cfg.Clock.Now()

	it, err := svc.cfg.Records.Records()
	if err != nil {
		return nil, xerrors.Errorf("ranker service: %w", err)
	}

	res, err := svc.ranker.RankIterator(ctx, it)
	switch {
	case xerrors.Is(err, graph.ErrEmptyGraph):
		svc.cfg.Logger.Info("skipping PageRank update pass: no rankable articles")
		return nil, nil
	case ctx.Err() != nil:
		svc.cfg.Logger.Info("PageRank update pass cancelled")
		return nil, nil
	case err != nil:
		return nil, xerrors.Errorf("ranker service: %w", err)
	}

	for _, s := range res.Scores {
		if err := svc.cfg.Indexer.UpdateScore(graph.ArticleID(s.Title), s.Score); err != nil {
			return nil, xerrors.Errorf("ranker service: update score for %q: %w", s.Title, err)
		}
	}

	svc.cfg.Logger.WithFields(logrus.Fields{
		"articles":       len(res.Scores),
		"iterations":     res.Iterations,
		"converged":      res.Converged,
		"pass_time":      svc.cfg.Clock.Now().Sub(startAt).String(),
		"next_update_at": svc.cfg.Clock.Now().Add(svc.cfg.UpdateInterval),
	}).Info("completed PageRank update pass")

	if svc.cfg.TopK == 0 {
		return res, nil
	}
	for i, s := range linkranker.Top(res.Scores, svc.cfg.TopK) {
		svc.cfg.Logger.WithFields(logrus.Fields{
			"rank":  i + 1,
			"title": s.Title,
			"score": s.Score,
		}).Info("top article")
	}
	return res, nil
}
