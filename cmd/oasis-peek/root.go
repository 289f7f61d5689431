package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"

	"oasis/internal/core/refresh"
	"oasis/internal/platform/config/catalog"
	perr "oasis/internal/platform/errors"
	feedsvc "oasis/internal/services/feeds/service"
)

// peek carries what every subcommand needs
type peek struct {
	load    func() (catalog.Catalog, error)
	out     io.Writer
	timeout time.Duration
	compact bool
}

func newRootCmd(load func() (catalog.Catalog, error), out io.Writer) *cobra.Command {
	p := &peek{load: load, out: out}

	cmd := &cobra.Command{
		Use:           "oasis-peek",
		Short:         "Fetch a feed once and print it as JSON",
		Long:          "oasis-peek builds the same feeds the API serves, runs one fetch and prints the resulting view.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().DurationVar(&p.timeout, "timeout", 30*time.Second, "overall fetch deadline")
	cmd.PersistentFlags().BoolVar(&p.compact, "compact", false, "print single-line JSON")

	cmd.AddCommand(p.matchesCmd(), p.newsCmd(), p.titlesCmd(), p.fixturesCmd())
	return cmd
}

// fleet builds the schedulers without starting them
func (p *peek) fleet() (*feedsvc.Fleet, error) {
	cat, err := p.load()
	if err != nil {
		return nil, err
	}
	return feedsvc.New(feedsvc.Options{Catalog: cat}), nil
}

func (p *peek) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), p.timeout)
}

// fetch runs one fetch on s and returns its error, if any
func fetch[T any](ctx context.Context, name string, s *refresh.Scheduler[T]) error {
	if s == nil {
		return perr.Unavailablef("%s feed is disabled, check the sources catalogue", name)
	}
	s.Trigger(ctx)
	return s.Current().Err
}

func (p *peek) print(v any) error {
	enc := json.NewEncoder(p.out)
	if !p.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
