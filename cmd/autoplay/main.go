// Command autoplay plays 2048 against a running game server through its JSON
// API, so the moves show up live in any browser watching the same session.
//
// Usage:
//
//	autoplay --url http://localhost:8080 --session game
//	autoplay --attempts 5 --target 2048 --delay 50ms
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/game2048/game/engine"
)

// Options control an autoplay run.
type Options struct {
	SessionID string
	Attempts  int
	MaxMoves  int
	Target    int
	Delay     time.Duration
}

// Result summarizes an autoplay run.
type Result struct {
	SessionID string
	Attempts  int
	Moves     int
	MaxTile   int
	Won       bool
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "Play 2048 on a running server with a greedy strategy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("GAME2048_URL")},
			&cli.StringFlag{Name: "session", Value: "game", Usage: "Session to play in; empty creates a new one"},
			&cli.IntFlag{Name: "attempts", Value: 1, Usage: "Games to play before giving up"},
			&cli.IntFlag{Name: "max-moves", Value: 5000, Usage: "Maximum moves per game"},
			&cli.IntFlag{Name: "target", Value: 2048, Usage: "Tile value that counts as a win"},
			&cli.DurationFlag{Name: "delay", Usage: "Pause between moves"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("v") {
				log.SetLevel(log.DebugLevel)
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := NewClient(cmd.String("url"))
			result, err := Play(ctx, client, CornerStrategy{}, Options{
				SessionID: cmd.String("session"),
				Attempts:  cmd.Int("attempts"),
				MaxMoves:  cmd.Int("max-moves"),
				Target:    cmd.Int("target"),
				Delay:     cmd.Duration("delay"),
			})
			if err != nil {
				return err
			}

			if !result.Won {
				return fmt.Errorf("no %d tile after %d attempts (best %d, session %s)",
					cmd.Int("target"), result.Attempts, result.MaxTile, result.SessionID)
			}
			log.Info("🎉 target reached", "session", result.SessionID, "attempt", result.Attempts, "moves", result.Moves, "max", result.MaxTile)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal("autoplay failed", "err", err)
	}
}

// Play resets the session and plays until the target tile appears, the
// board is stuck or the move limit is hit, for up to opts.Attempts games.
func Play(ctx context.Context, client *Client, strategy Strategy, opts Options) (*Result, error) {
	if opts.Attempts <= 0 || opts.MaxMoves <= 0 {
		return nil, fmt.Errorf("attempts and max-moves must be positive")
	}

	if err := attach(ctx, client, opts.SessionID); err != nil {
		return nil, err
	}
	log.Info("playing", "session", client.SessionID())

	result := &Result{SessionID: client.SessionID()}
	for attempt := 1; attempt <= opts.Attempts; attempt++ {
		state, err := client.Reset(ctx)
		if err != nil {
			return nil, err
		}
		result.Attempts = attempt

		board, moves := state.Board, 0
		for moves < opts.MaxMoves {
			if engine.TileValue(engine.MaxTile(board)) >= opts.Target {
				break
			}
			dir, ok := strategy.NextMove(board)
			if !ok {
				break
			}

			moved, err := client.Move(ctx, dir)
			if err != nil {
				return nil, err
			}
			board = moved.GameState.Board
			moves++

			if opts.Delay > 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(opts.Delay):
				}
			}
		}

		maxTile := engine.TileValue(engine.MaxTile(board))
		result.Moves = moves
		if maxTile > result.MaxTile {
			result.MaxTile = maxTile
		}
		log.Info("attempt finished", "attempt", attempt, "moves", moves, "max", maxTile)

		if maxTile >= opts.Target {
			result.Won = true
			return result, nil
		}
	}

	return result, nil
}

func attach(ctx context.Context, client *Client, sessionID string) error {
	if sessionID == "" {
		_, err := client.CreateSession(ctx, "")
		return err
	}

	_, err := client.Resume(ctx, sessionID)
	if err == nil {
		return nil
	}
	log.Warn("⚠️  session not available, creating it", "session", sessionID, "err", err)

	_, err = client.CreateSession(ctx, sessionID)
	return err
}
