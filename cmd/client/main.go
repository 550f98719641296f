// Command client is a terminal stand-in for the game: it drives the same
// Manager the game embeds, against a real service and a real on-disk cache.
// Useful for poking at a deployment and for demonstrating the offline
// fallback behavior.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	leaderboarddomain "github.com/facematch/leaderboard/app/leaderboard/domain"
	"github.com/facematch/leaderboard/config"
	"github.com/facematch/leaderboard/internal/observability"
	"github.com/facematch/leaderboard/pkg/leaderboardclient"
	"github.com/facematch/leaderboard/pkg/leaderboardclient/cache"
)

func main() {
	app := &cli.App{
		Name:  "leaderboard-client",
		Usage: "drives the game-side leaderboard manager from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: "easy",
				Usage: "difficulty mode (easy|hard)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "top",
				Usage: "print the current ranked list",
				Action: func(c *cli.Context) error {
					return withManager(c, func(ctx context.Context, m *leaderboardclient.Manager, mode leaderboarddomain.Mode) error {
						printList(m.GetScores(mode))
						return nil
					})
				},
			},
			{
				Name:      "submit",
				Usage:     "submit a score: submit <name> <score>",
				ArgsUsage: "<name> <score>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 2 {
						return fmt.Errorf("usage: submit <name> <score>")
					}
					var score int
					if _, err := fmt.Sscanf(c.Args().Get(1), "%d", &score); err != nil {
						return fmt.Errorf("score must be an integer: %w", err)
					}
					return withManager(c, func(ctx context.Context, m *leaderboardclient.Manager, mode leaderboarddomain.Mode) error {
						res := m.AddScore(ctx, mode, c.Args().Get(0), score)
						fmt.Printf("served from: %s\n", res.Source)
						printList(res.List)
						return nil
					})
				},
			},
			{
				Name:  "clear",
				Usage: "clear the mode's leaderboard",
				Action: func(c *cli.Context) error {
					return withManager(c, func(ctx context.Context, m *leaderboardclient.Manager, mode leaderboarddomain.Mode) error {
						m.ClearScores(ctx, mode)
						fmt.Println("cleared")
						// Give the detached remote clear a moment before exit.
						time.Sleep(500 * time.Millisecond)
						return nil
					})
				},
			},
			{
				Name:      "check",
				Usage:     "check whether a score would make the board: check <score>",
				ArgsUsage: "<score>",
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 1 {
						return fmt.Errorf("usage: check <score>")
					}
					var score int
					if _, err := fmt.Sscanf(c.Args().Get(0), "%d", &score); err != nil {
						return fmt.Errorf("score must be an integer: %w", err)
					}
					return withManager(c, func(ctx context.Context, m *leaderboardclient.Manager, mode leaderboarddomain.Mode) error {
						fmt.Println(m.IsHighScore(mode, score))
						return nil
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func withManager(c *cli.Context, fn func(ctx context.Context, m *leaderboardclient.Manager, mode leaderboarddomain.Mode) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Client.RemoteURL == "" {
		return fmt.Errorf("client.remote_url is not configured")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	localCache, err := cache.Open(cfg.Client.CachePath)
	if err != nil {
		return fmt.Errorf("failed to open local cache: %w", err)
	}
	defer localCache.Close()

	remote := leaderboardclient.NewHTTPRemote(cfg.Client.RemoteURL, cfg.Client.RequestTimeout)
	metrics := observability.NewClientMetrics(prometheus.NewRegistry())

	m := leaderboardclient.NewManager(remote, localCache, logger, metrics)
	m.Initialize(c.Context)

	return fn(c.Context, m, leaderboarddomain.ParseMode(c.String("mode")))
}

func printList(list leaderboarddomain.RankedList) {
	if len(list) == 0 {
		fmt.Println("(empty)")
		return
	}
	for i, e := range list {
		fmt.Printf("%2d. %-20s %6d  %s\n", i+1, e.Name, e.Score, e.Date.Local().Format("2006-01-02 15:04"))
	}
}
