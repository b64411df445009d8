package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"repo-search-api/reposearch"
	"repo-search-api/web"
)

// errSearchFailed marks a search that ended in the Failure state; the message was already printed
var errSearchFailed = errors.New("search failed")

func newApp(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "reposearch",
		Usage:     "Search repositories ranked by popularity",
		Writer:    out,
		ErrWriter: errOut,
		Commands: []*cli.Command{
			searchCommand(out, errOut),
		},
	}
}

func searchCommand(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run one search against a search proxy",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "keywords",
				Aliases:  []string{"k"},
				Usage:    "Search keywords",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Programming language filter",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "Only repositories created on or after this date (YYYY-MM-DD)",
			},
			&cli.IntFlag{
				Name:  "pages",
				Usage: "Result pages of 100 repositories to aggregate (1 to 5)",
			},
			&cli.StringFlag{
				Name:    "proxy",
				Usage:   "Search proxy base URL",
				Value:   reposearch.DefaultBaseURL,
				Sources: cli.EnvVars("REPOSEARCH_PROXY"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Give up after this long",
				Value: web.DefaultRequestTimeout,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			criteria := reposearch.Criteria{
				Keywords:            c.String("keywords"),
				Language:            c.String("language"),
				EarliestCreatedDate: c.String("since"),
				MaxPages:            c.Int("pages"),
			}
			return runSearch(ctx, c.String("proxy"), c.Duration("timeout"), criteria, out, errOut)
		},
	}
}

func runSearch(ctx context.Context, proxy string, timeout time.Duration, criteria reposearch.Criteria, out, errOut io.Writer) error {
	client, err := reposearch.NewClient(reposearch.WithBaseURL(proxy), reposearch.WithTimeout(0))
	if err != nil {
		return fmt.Errorf("invalid proxy: %w", err)
	}

	controller := web.NewController(client, web.WithRequestTimeout(timeout))
	controller.Subscribe(func(s web.State) {
		if _, ok := s.(web.Loading); ok {
			fmt.Fprintln(errOut, styles.dim.Render("Searching "+proxy+" ..."))
		}
	})

	final := controller.Submit(ctx, criteria)
	render(out, final)

	if _, ok := final.(web.Failure); ok {
		return errSearchFailed
	}
	return nil
}
