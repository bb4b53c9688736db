package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"
)

var (
	appName = "linkrank"
	appSha  = "populated-at-link-time"
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger := rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := newRootCmd(rootLogger, logger).ExecuteContext(context.Background()); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		os.Exit(1)
	}
}

// newRootCmd wires the subcommands. Every flag can also be set from a
// .linkrank config file or a LINKRANK_* environment variable; a .env file in
// the working directory is loaded first.
func newRootCmd(rootLogger *logrus.Logger, logger *logrus.Entry) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Rank articles of a link graph with PageRank",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !xerrors.Is(err, os.ErrNotExist) {
				return xerrors.Errorf("load .env file: %w", err)
			}
			if err := initConfig(cmd, v); err != nil {
				return err
			}

			level, err := logrus.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return xerrors.Errorf("invalid log level: %w", err)
			}
			rootLogger.SetLevel(level)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default .linkrank.yaml in the working or home directory)")
	pf.String("log-level", "info", "The minimum level of log messages (debug, info, warn, error)")
	pf.String("store-uri", "in-memory://", "The URI of the link record store (supported URIs: in-memory://, postgresql://user@host:26257/linkrank?sslmode=disable, redis://host:6379/0)")
	pf.Float64("damping", 0.85, "The PageRank damping factor, in the range (0, 1)")
	pf.Float64("tolerance", 1e-6, "The L1 convergence tolerance of the power iteration")
	pf.Int("max-iterations", 100, "The maximum number of power iterations")
	pf.Int("workers", 1, "The number of workers used for the matrix-vector product")
	pf.Bool("single-pass", false, "Apply the closure filter only once instead of iterating it to a fixed point")
	pf.Bool("keep-case", false, "Do not lower-case article titles before merging them")
	pf.Int("load-workers", 4, "The number of workers used for parsing input rows")
	pf.Int("top", 10, "The number of top-ranked articles to report")

	cmd.AddCommand(
		newRankCmd(v, logger),
		newServeCmd(v, logger),
	)
	return cmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".linkrank")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("LINKRANK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return xerrors.Errorf("bind flags: %w", err)
	}

	// A missing config file is fine; flag defaults apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !xerrors.As(err, &notFound) {
			return xerrors.Errorf("read config: %w", err)
		}
	}
	return nil
}

// openInput returns a reader for path. "-" selects stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("open input: %w", err)
	}
	return f, nil
}
