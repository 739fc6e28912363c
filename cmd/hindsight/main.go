// Copyright 2026 Cobalt Lane Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	openaillm "github.com/tmc/langchaingo/llms/openai"
	"github.com/urfave/cli/v2"

	"github.com/cobaltlane/hindsight"
	"github.com/cobaltlane/hindsight/ai"
	"github.com/cobaltlane/hindsight/answer"
	"github.com/cobaltlane/hindsight/core"
	"github.com/cobaltlane/hindsight/temporal"
)

func main() {
	app := &cli.App{
		Name:  "hindsight",
		Usage: "Retrieval archive for meeting notes and reminders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "archive",
				Usage: "Path to the archive directory (overrides config)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Find the chunks most similar to the query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags:     []cli.Flag{limitFlag()},
			},
			{
				Name:      "meetings",
				Usage:     "Search with meeting records preferred and recent dates boosted",
				ArgsUsage: "<query>",
				Action:    meetingsCommand,
				Flags:     []cli.Flag{limitFlag()},
			},
			{
				Name:      "window",
				Usage:     "Search within the date window named by the query",
				ArgsUsage: "<query with a time phrase>",
				Action:    windowCommand,
				Flags:     []cli.Flag{limitFlag()},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question grounded in the archive",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: []cli.Flag{
					limitFlag(),
					&cli.BoolFlag{
						Name:  "meetings-only",
						Usage: "Bias retrieval toward meeting records",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"k"},
		Usage:   "Maximum number of results",
		Value:   5,
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// openArchive loads the config file and opens the archive it names.
func openArchive(c *cli.Context) (*hindsight.Archive, *fileConfig, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	path := cfg.Archive
	if override := c.String("archive"); override != "" {
		path = override
	}

	archive, err := hindsight.Open(path,
		hindsight.WithEmbeddingConfig(ai.NewConfig(cfg.embeddingOptions()...)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return archive, cfg, nil
}

func queryArg(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", fmt.Errorf("query text is required")
	}
	return query, nil
}

func searchCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	archive, _, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := context.Background()
	searcher, err := archive.NewSearcher(ctx)
	if err != nil {
		return err
	}

	hits, err := searcher.Search(ctx, query, c.Int("limit"))
	if err != nil {
		return err
	}
	printHits(hits)
	return nil
}

func meetingsCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	archive, _, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := context.Background()
	searcher, err := archive.NewSearcher(ctx)
	if err != nil {
		return err
	}

	hits, err := searcher.SearchMeetings(ctx, query, c.Int("limit"))
	if err != nil {
		return err
	}
	printHits(hits)
	return nil
}

func windowCommand(c *cli.Context) error {
	query, err := queryArg(c)
	if err != nil {
		return err
	}

	window, ok := temporal.ResolveWindow(query)
	if !ok {
		return fmt.Errorf("no date reference recognized in %q (try \"last week\" or \"Q3 2025\")", query)
	}

	archive, _, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := context.Background()
	searcher, err := archive.NewSearcher(ctx)
	if err != nil {
		return err
	}

	hits, err := searcher.SearchInDateWindow(ctx, query, window, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Printf("Nothing found between %s and %s.\n",
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
		return nil
	}
	printHits(hits)
	return nil
}

func askCommand(c *cli.Context) error {
	question, err := queryArg(c)
	if err != nil {
		return err
	}

	archive, cfg, err := openArchive(c)
	if err != nil {
		return err
	}
	defer archive.Close()

	ctx := context.Background()
	searcher, err := archive.NewSearcher(ctx)
	if err != nil {
		return err
	}

	var opts []answer.Option
	if cfg.Answer.Model != "" {
		model, err := openaillm.New(openaillm.WithModel(cfg.Answer.Model))
		if err != nil {
			return fmt.Errorf("failed to create answer model: %w", err)
		}
		opts = append(opts, answer.WithModel(model))
	}

	synthesizer, err := answer.NewSynthesizer(searcher, opts...)
	if err != nil {
		return err
	}

	reply, err := synthesizer.Answer(ctx, answer.AnswerRequest{
		Question:           question,
		K:                  c.Int("limit"),
		RestrictToMeetings: c.Bool("meetings-only"),
	})
	if err != nil {
		return err
	}

	fmt.Println(reply)
	return nil
}

func printHits(hits []core.SearchHit) {
	if len(hits) == 0 {
		fmt.Println("No results.")
		return
	}
	for i, hit := range hits {
		fmt.Printf("%d. [%.3f] %s", i+1, hit.Score, hit.Record.Source())
		if hit.Record.Folder != "" {
			fmt.Printf(" (%s)", hit.Record.Folder)
		}
		fmt.Println()

		preview := strings.ReplaceAll(strings.TrimSpace(hit.Record.TextPreview), "\n", " ")
		if len(preview) > 160 {
			preview = preview[:160] + "..."
		}
		fmt.Printf("   %s\n", preview)
	}
}
