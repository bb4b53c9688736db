package ranker

import (
	"io"
	"math"

	"github.com/Ahmed-Sermani/linkrank/graph"
	"github.com/Ahmed-Sermani/linkrank/matrix"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// ErrInvalidParameter is returned when the ranker configuration is
// rejected. It is the same sentinel as matrix.ErrInvalidParameter.
var ErrInvalidParameter = matrix.ErrInvalidParameter

const (
	// DefaultTolerance is the sum of absolute differences between two
	// successive rank vectors below which the iteration is considered
	// converged.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps the number of power iterations.
	DefaultMaxIterations = 100
)

// Config encapsulates the required parameters for creating a new Ranker
// instance. Use DefaultConfig to obtain a valid starting point.
type Config struct {
	// DampingFactor is the probability that a random surfer will click on
	// one of the outgoing links on the page they are currently visiting
	// instead of visiting (teleporting to) a random page in the graph.
	// Must be in the range (0, 1).
	DampingFactor float64

	// At each step of the power iteration the sum of absolute differences
	// (SAD) between the previous and the new rank vector is computed. The
	// iteration stops once SAD drops below Tolerance.
	Tolerance float64

	// MaxIterations bounds the number of power iterations. Running out of
	// iterations is not an error; the result is flagged as not converged.
	MaxIterations int

	// The number of workers that split the rows of the matrix-vector
	// product between them. If not specified, a default value of 1 will be
	// used instead.
	ComputeWorkers int

	// Graph controls how raw records are normalized and filtered.
	Graph graph.BuildConfig

	Logger *logrus.Entry
}

// DefaultConfig returns the classic PageRank settings: a damping factor of
// 0.85, an L1 tolerance of 1e-6 and at most 100 iterations.
func DefaultConfig() Config {
	return Config{
		DampingFactor:  matrix.DefaultDampingFactor,
		Tolerance:      DefaultTolerance,
		MaxIterations:  DefaultMaxIterations,
		ComputeWorkers: 1,
	}
}

// validate checks whether the configuration is valid and sets the default
// values where required.
func (c *Config) validate() error {
	var err error
	if dErr := matrix.ValidateDampingFactor(c.DampingFactor); dErr != nil {
		err = multierror.Append(err, dErr)
	}

	if math.IsNaN(c.Tolerance) || c.Tolerance <= 0 {
		err = multierror.Append(err, xerrors.Errorf("tolerance %v must be positive: %w", c.Tolerance, ErrInvalidParameter))
	}

	if c.MaxIterations <= 0 {
		err = multierror.Append(err, xerrors.Errorf("max iterations %d must be at least 1: %w", c.MaxIterations, ErrInvalidParameter))
	}

	if c.ComputeWorkers <= 0 {
		c.ComputeWorkers = 1
	}

	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		c.Logger = logrus.NewEntry(l)
	}
	if c.Graph.Logger == nil {
		c.Graph.Logger = c.Logger
	}

	return err
}
