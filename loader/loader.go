/*
   Loads crawler output into a record store and the search index.
*/
package loader

import (
	"context"
	"io"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/indexer"
	"github.com/Ahmed-Sermani/linkrank/pipeline"
	"github.com/Ahmed-Sermani/linkrank/pipeline/runners"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

//go:generate mockgen -package mocks -destination mocks/mocks.go github.com/Ahmed-Sermani/linkrank/loader RecordStore,DocumentIndexer

// RecordStore is implemented by objects that accumulate raw link records.
type RecordStore interface {
	UpsertRecord(r *graph.Record) error
}

// DocumentIndexer is implemented by objects that can index the articles
// found in the loaded records.
type DocumentIndexer interface {
	Index(doc *indexer.Document) error
}

// Config encapsulates the settings for the Loader.
type Config struct {
	// Store receives every parsed record.
	Store RecordStore

	// Indexer, if set, receives a document for the source article of
	// every record.
	Indexer DocumentIndexer

	// Normalize maps titles to the identities used by the ranker. It must
	// match the normalization applied when the graph is built so that
	// document IDs line up with ranked nodes. Defaults to graph.LowerCase.
	Normalize func(string) string

	// The number of concurrent workers used for parsing rows.
	ParseWorkers int

	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.Store == nil {
		err = multierror.Append(err, xerrors.New("record store has not been provided"))
	}
	if cfg.ParseWorkers <= 0 {
		err = multierror.Append(err, xerrors.New("invalid value for parse workers"))
	}
	if cfg.Normalize == nil {
		cfg.Normalize = graph.LowerCase
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Logger = logrus.NewEntry(l)
	}
	return err
}

// Loader implements a record-loading pipeline consisting of the following
// stages:
//
// - Parse a `title,link,count` row into a graph.Record.
// - Upsert the record into the record store and, in parallel, index the
//   source article so that its score can be searched later.
type Loader struct {
	cfg      Config
	pipeline *pipeline.Pipeline
}

// NewLoader returns a Loader for the provided configuration.
func NewLoader(cfg Config) (*Loader, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("loader config validation failed: %w", err)
	}

	return &Loader{
		cfg:      cfg,
		pipeline: assembleLoaderPipeline(cfg),
	}, nil
}

// Load reads CSV rows from r and sends each one through the loader pipeline
// returning the number of records that were stored. Calls to Load block
// until r is exhausted, an error occurs or the context is cancelled.
// It's safe to be called by concurrent goroutines.
func (l *Loader) Load(ctx context.Context, r io.Reader) (int, error) {
	return l.LoadSource(ctx, newCSVSource(r))
}

// LoadSource is like Load but reads rows from an arbitrary source. The
// payloads emitted by src must be created with NewRowPayload.
func (l *Loader) LoadSource(ctx context.Context, src pipeline.Source) (int, error) {
	sink := new(countingSink)
	err := l.pipeline.Process(ctx, src, sink)
	count := sink.getCount()
	if err != nil {
		return count, err
	}

	l.cfg.Logger.WithField("records", count).Info("finished loading link records")
	return count, nil
}

func assembleLoaderPipeline(cfg Config) *pipeline.Pipeline {
	parse := runners.FixedWorkerPool(newRowParser(), cfg.ParseWorkers)
	write := runners.FIFO(newStoreWriter(cfg.Store))
	if cfg.Indexer != nil {
		write = runners.Broadcast(
			newStoreWriter(cfg.Store),
			newDocIndexer(cfg.Indexer, cfg.Normalize),
		)
	}

	return pipeline.New(parse, write)
}
