// Command simulate plays many games with a random player and prints quick,
// human-readable statistics about the engine: how often the opening tiles
// and spawned tiles are 2s, how long games last and which tiles they reach.
//
// Usage:
//
//	simulate --games 500 --seed 42
//	simulate --games 100 --format yaml
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/game2048/game/engine"
	"gopkg.in/yaml.v3"
)

// Report summarizes a batch of simulated games.
type Report struct {
	Games           int         `yaml:"games"`
	Seed            uint64      `yaml:"seed"`
	OpeningTiles    int         `yaml:"opening_tiles"`
	OpeningTwoRatio float64     `yaml:"opening_two_ratio"`
	Spawns          int         `yaml:"spawns"`
	SpawnTwoRatio   float64     `yaml:"spawn_two_ratio"`
	TotalMoves      int         `yaml:"total_moves"`
	AverageMoves    float64     `yaml:"average_moves"`
	Truncated       int         `yaml:"truncated"`
	MaxTiles        map[int]int `yaml:"max_tiles"`
}

// Options control a simulation run.
type Options struct {
	Games    int
	Seed     uint64
	MaxMoves int
}

func main() {
	cmd := &cli.Command{
		Name:  "simulate",
		Usage: "Play random games and report tile statistics",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "games", Aliases: []string{"n"}, Value: 200, Usage: "Number of games to play"},
			&cli.Uint64Flag{Name: "seed", Value: 1, Usage: "RNG seed (0 = nondeterministic)"},
			&cli.IntFlag{Name: "max-moves", Value: 5000, Usage: "Stop a game after this many moves"},
			&cli.StringFlag{Name: "format", Value: "text", Usage: "Output format: text or yaml"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			report, err := Simulate(Options{
				Games:    cmd.Int("games"),
				Seed:     cmd.Uint64("seed"),
				MaxMoves: cmd.Int("max-moves"),
			})
			if err != nil {
				return err
			}
			return writeReport(os.Stdout, report, cmd.String("format"))
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal("simulation failed", "err", err)
	}
}

// Simulate plays opts.Games games, each making uniformly random moves among
// the directions that change the board until none is left.
func Simulate(opts Options) (*Report, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.MaxMoves <= 0 {
		return nil, fmt.Errorf("max-moves must be positive, got %d", opts.MaxMoves)
	}

	rng := engine.NewRand(opts.Seed)
	report := &Report{
		Games:    opts.Games,
		Seed:     opts.Seed,
		MaxTiles: make(map[int]int),
	}

	openingTwos, spawnTwos := 0, 0
	for i := 0; i < opts.Games; i++ {
		game := engine.NewEngine(rng)

		for _, v := range game.Board() {
			if v == 0 {
				continue
			}
			report.OpeningTiles++
			if v == 1 {
				openingTwos++
			}
		}

		moves := 0
		for {
			possible := game.GetPossibleMoves()
			if len(possible) == 0 {
				break
			}
			if moves >= opts.MaxMoves {
				report.Truncated++
				break
			}

			outcome, err := game.Move(possible[rng.IntN(len(possible))])
			if err != nil {
				return nil, err
			}
			moves++
			if outcome.Spawned != nil {
				report.Spawns++
				if outcome.Spawned.Value == 1 {
					spawnTwos++
				}
			}
		}

		report.TotalMoves += moves
		report.MaxTiles[engine.TileValue(engine.MaxTile(game.Board()))]++
		log.Debug("game finished", "game", i+1, "moves", moves, "max", engine.TileValue(engine.MaxTile(game.Board())))
	}

	report.OpeningTwoRatio = ratio(openingTwos, report.OpeningTiles)
	report.SpawnTwoRatio = ratio(spawnTwos, report.Spawns)
	report.AverageMoves = ratio(report.TotalMoves, report.Games)
	return report, nil
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func writeReport(w io.Writer, report *Report, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		printReport(w, report)
		return nil
	default:
		return fmt.Errorf("unknown format %q (use text or yaml)", format)
	}
}

func printReport(w io.Writer, report *Report) {
	fmt.Fprintf(w, "=== %d games (seed %d) ===\n", report.Games, report.Seed)
	fmt.Fprintf(w, "Opening tiles: %d, 2s: %.1f%% (expected 90%%)\n", report.OpeningTiles, report.OpeningTwoRatio*100)
	fmt.Fprintf(w, "Spawned tiles: %d, 2s: %.1f%% (expected 90%%)\n", report.Spawns, report.SpawnTwoRatio*100)
	fmt.Fprintf(w, "Moves: %d total, %.1f per game\n", report.TotalMoves, report.AverageMoves)
	if report.Truncated > 0 {
		fmt.Fprintf(w, "⚠️  %d games hit the move limit\n", report.Truncated)
	}

	tiles := make([]int, 0, len(report.MaxTiles))
	for tile := range report.MaxTiles {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))

	fmt.Fprintf(w, "Max tile reached:\n")
	for _, tile := range tiles {
		count := report.MaxTiles[tile]
		fmt.Fprintf(w, "  %6d: %4d (%.1f%%)\n", tile, count, ratio(count, report.Games)*100)
	}
}
