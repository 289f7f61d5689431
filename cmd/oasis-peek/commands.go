package main

import (
	"github.com/spf13/cobra"

	"oasis/internal/adapters/sources/tmdb"
	"oasis/internal/services/api/browse"
	fdom "oasis/internal/services/feeds/domain"

	fxdom "oasis/internal/services/api/fixtures/domain"
	fxsvc "oasis/internal/services/api/fixtures/service"
	mdom "oasis/internal/services/api/matches/domain"
	msvc "oasis/internal/services/api/matches/service"
	nsvc "oasis/internal/services/api/news/service"
	tdom "oasis/internal/services/api/titles/domain"
	tsvc "oasis/internal/services/api/titles/service"
)

func (p *peek) matchesCmd() *cobra.Command {
	var (
		section string
		window  int
		page    int
		grouped bool
	)
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Live scores, one window of a section or every league group",
		Example: `  oasis-peek matches --window 5 --page 1
  oasis-peek matches --section upcoming
  oasis-peek matches --grouped`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := p.fleet()
			if err != nil {
				return err
			}
			ctx, cancel := p.context(cmd)
			defer cancel()
			if err := fetch(ctx, fdom.Matches, f.Matches); err != nil {
				return err
			}

			s := msvc.New(f.Matches, f)
			if grouped {
				v, err := s.Groups(ctx)
				if err != nil {
					return err
				}
				return p.print(v)
			}
			res, err := s.Browse(ctx, mdom.BrowseInput{
				Section: section,
				Input:   browse.Input{Window: window, Page: &page},
			})
			if err != nil {
				return err
			}
			return p.print(res)
		},
	}
	cmd.Flags().StringVar(&section, "section", mdom.SectionAll, "all, live, upcoming or finished")
	cmd.Flags().IntVar(&window, "window", 0, "items per window (0 uses the wide layout)")
	cmd.Flags().IntVar(&page, "page", 0, "zero based page")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "print league groups instead of a window")
	return cmd
}

func (p *peek) newsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Match news and RSS articles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := p.fleet()
			if err != nil {
				return err
			}
			ctx, cancel := p.context(cmd)
			defer cancel()
			if err := fetch(ctx, fdom.News, f.News); err != nil {
				return err
			}
			v, err := nsvc.New(f.News).List(ctx)
			if err != nil {
				return err
			}
			return p.print(v)
		},
	}
}

func (p *peek) titlesCmd() *cobra.Command {
	kinds := []string{tdom.KindGenres}
	for _, sh := range tmdb.Shelves() {
		kinds = append(kinds, string(sh))
	}
	return &cobra.Command{
		Use:       "titles <shelf>",
		Short:     "One TMDB shelf, or the genre showcase",
		Example:   "  oasis-peek titles trending-movies\n  oasis-peek titles genres",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := p.fleet()
			if err != nil {
				return err
			}
			ctx, cancel := p.context(cmd)
			defer cancel()
			if err := fetch(ctx, fdom.Titles, f.Titles); err != nil {
				return err
			}

			s := tsvc.New(f.Titles)
			if args[0] == tdom.KindGenres {
				v, err := s.Genres(ctx)
				if err != nil {
					return err
				}
				return p.print(v)
			}
			v, err := s.Shelf(ctx, args[0])
			if err != nil {
				return err
			}
			return p.print(v)
		},
	}
}

func (p *peek) fixturesCmd() *cobra.Command {
	var list string
	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "football-data fixtures with highlight videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := p.fleet()
			if err != nil {
				return err
			}
			ctx, cancel := p.context(cmd)
			defer cancel()
			if err := fetch(ctx, fdom.Fixtures, f.Fixtures); err != nil {
				return err
			}

			s := fxsvc.New(f.Fixtures)
			if list == "" {
				v, err := s.Board(ctx)
				if err != nil {
					return err
				}
				return p.print(v)
			}
			v, err := s.Browse(ctx, fxdom.BrowseInput{List: list, Input: browse.Input{Window: 50}})
			if err != nil {
				return err
			}
			return p.print(v)
		},
	}
	cmd.Flags().StringVar(&list, "list", "", "print one list: live, upcoming, recent or highlights")
	return cmd
}
