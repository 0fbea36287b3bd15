package main

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-almanac/internal/logging"
)

type rootFlags struct {
	logLevel string
}

func (f *rootFlags) logger(cmd *cobra.Command) (*logging.SlogLogger, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(f.logLevel))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", f.logLevel)
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})

	return logging.NewSlog(slog.New(handler)), nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "almanac",
		Short:         "Translate seeds through an almanac and find the lowest location",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(newLowestCmd(flags))
	cmd.AddCommand(newStagesCmd())

	return cmd
}
