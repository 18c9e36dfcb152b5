// Copyright 2025 Poiesic Systems
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
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/querent"
	"github.com/poiesic/querent/config"
	"github.com/poiesic/querent/core"
	"github.com/poiesic/querent/router"
)

func main() {
	// Secrets like QDRANT_API_KEY commonly live in a local .env file.
	godotenv.Load()

	app := &cli.App{
		Name:  "querent",
		Usage: "Semantic retrieval over credit-client profiles",
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
				Usage:   "Path to the configuration file",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search profiles by natural-language query or by PDF/image path",
				ArgsUsage: "<query or file path>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of results to return (0 uses the configured default)",
					},
					&cli.StringSliceFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Explicit filter as key=value; keys ending in _range take gte:N,lte:N bounds",
					},
				},
			},
			{
				Name:      "get",
				Usage:     "Fetch one stored profile by its identifier",
				ArgsUsage: "<id>",
				Action:    getCommand,
			},
			{
				Name:   "list",
				Usage:  "Page through stored profiles",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of profiles per page",
						Value: 20,
					},
					&cli.StringFlag{
						Name:  "offset",
						Usage: "Continuation offset from a previous page",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show collection status and size",
				Action: statsCommand,
			},
			{
				Name:   "init",
				Usage:  "Write a configuration file with default values",
				Action: initCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file",
						Value: "querent.yaml",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	input := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if input == "" {
		return fmt.Errorf("a query or file path is required")
	}

	filters, err := parseFilters(c.StringSlice("filter"))
	if err != nil {
		return err
	}

	services, err := openServices(c)
	if err != nil {
		return err
	}
	defer services.Close()

	topK := c.Int("top-k")
	if topK <= 0 {
		topK = services.Config().TopK
	}

	hits, err := services.Query(ctx, input, router.RouteOptions{
		TopK:    topK,
		Filters: filters,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(hits) == 0 {
		fmt.Println("No results.")
		return nil
	}

	if hits[0].Query.Kind != core.KindText {
		fmt.Printf("Document: %s (%d pages extracted)\n\n",
			hits[0].Query.SourceFilename, hits[0].Query.PagesExtracted)
	}
	for i, hit := range hits {
		fmt.Printf("%d: %s [%.4f]\n", i+1, hit.EntityID, hit.Score)
	}
	return nil
}

func getCommand(c *cli.Context) error {
	ctx := context.Background()

	id := c.Args().First()
	if id == "" {
		return fmt.Errorf("a profile identifier is required")
	}

	services, err := openServices(c)
	if err != nil {
		return err
	}
	defer services.Close()

	hit, err := services.Gateway().Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}

	fmt.Printf("Profile %s\n", hit.EntityID)
	printAttributes(hit.Attributes)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	services, err := openServices(c)
	if err != nil {
		return err
	}
	defer services.Close()

	hits, next, err := services.Gateway().List(ctx, c.Int("limit"), c.String("offset"))
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	for _, hit := range hits {
		fmt.Println(hit.EntityID)
	}
	if next != "" {
		fmt.Printf("\nNext page: --offset %s\n", next)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	services, err := openServices(c)
	if err != nil {
		return err
	}
	defer services.Close()

	stats, err := services.Gateway().Stats(ctx)
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	fmt.Printf("Collection: %s\n", services.Config().Qdrant.Collection)
	fmt.Printf("Status:     %s\n", stats.Status)
	fmt.Printf("Points:     %d\n", stats.PointsCount)
	fmt.Printf("Vectors:    %d-dimensional, %s distance\n", stats.VectorSize, stats.Distance)
	return nil
}

func initCommand(c *cli.Context) error {
	path := c.String("path")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func openServices(c *cli.Context) (*querent.Services, error) {
	var cfg *config.AppConfig
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	services, err := querent.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return services, nil
}

// parseFilters turns repeated key=value flags into retrieval filters.
// Keys ending in _range accept comma-separated gte:/lte: bounds, for
// example AMT_INCOME_TOTAL_range=gte:100000,lte:200000.
func parseFilters(pairs []string) (core.Filters, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(core.Filters, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid filter %q: expected key=value", pair)
		}

		if core.IsRangeKey(key) {
			spec, err := parseRangeSpec(value)
			if err != nil {
				return nil, fmt.Errorf("invalid filter %q: %w", pair, err)
			}
			filters[key] = spec
			continue
		}
		filters[key] = core.Exact(parseScalar(value))
	}
	return filters, nil
}

func parseRangeSpec(value string) (core.FilterSpec, error) {
	var gte, lte *float64
	for _, part := range strings.Split(value, ",") {
		bound, raw, found := strings.Cut(strings.TrimSpace(part), ":")
		if !found {
			return core.FilterSpec{}, fmt.Errorf("expected gte:N or lte:N, got %q", part)
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return core.FilterSpec{}, fmt.Errorf("bound %q is not a number", raw)
		}
		switch bound {
		case "gte":
			gte = &n
		case "lte":
			lte = &n
		default:
			return core.FilterSpec{}, fmt.Errorf("unknown bound %q", bound)
		}
	}
	if gte == nil && lte == nil {
		return core.FilterSpec{}, fmt.Errorf("at least one bound is required")
	}
	return core.Between(gte, lte), nil
}

// parseScalar keeps filter values typed the way Qdrant stores them:
// integers and floats match numeric payload fields, everything else
// stays a string.
func parseScalar(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func printAttributes(attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s: %v\n", k, attrs[k])
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
