// Command validate checks the server's YAML configuration files. For each
// file it reports:
//   - YAML syntax errors and unknown keys
//   - values the server refuses to start with (ports, timeouts, session TTL)
//   - a missing static directory or index.html
//   - a cleanup interval longer than the session TTL
//
// It exits non-zero when any file is invalid.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/game2048/game/config"
	"gopkg.in/yaml.v3"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Notes are informational.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
	Notes  []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) note(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration file. Relative
// static directories are resolved against baseDir.
func validateConfig(filePath, baseDir string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	// Unknown keys are typos the regular loader silently ignores
	strict := config.Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(strict); err != nil && err != io.EOF {
		result.fail("Invalid YAML: %v", err)
		return result
	}

	cfg, err := config.Parse(data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	staticDir := cfg.Server.StaticDir
	if !filepath.IsAbs(staticDir) {
		staticDir = filepath.Join(baseDir, staticDir)
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		result.fail("static_dir %q is not a directory", cfg.Server.StaticDir)
	} else if _, err := os.Stat(filepath.Join(staticDir, "index.html")); err != nil {
		result.fail("static_dir %q has no index.html", cfg.Server.StaticDir)
	} else {
		result.note("✓ Static files: %s", cfg.Server.StaticDir)
	}

	if cfg.Sessions.CleanupInterval > cfg.Sessions.TTL {
		result.note("⚠️  cleanup_interval %s is longer than ttl %s; sessions outlive their TTL", cfg.Sessions.CleanupInterval, cfg.Sessions.TTL)
	}

	if cfg.Game.Seed == 0 {
		result.note("✓ Seed: nondeterministic")
	} else {
		result.note("✓ Seed: %d (reproducible games)", cfg.Game.Seed)
	}
	result.note("✓ Listen: %s", cfg.Server.Addr())

	return result
}

// configFiles lists the YAML files in dir
func configFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

// report prints the results and returns whether every file is valid
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, note := range result.Notes {
			fmt.Fprintln(w, "  "+note)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Fprintln(w, "✅ All configurations are valid!")
	} else {
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func main() {
	cmd := &cli.Command{
		Name:      "validate",
		Usage:     "Validate game server configuration files",
		ArgsUsage: "[file ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "configs", Usage: "Directory scanned when no files are given"},
			&cli.StringFlag{Name: "base", Value: ".", Usage: "Directory relative static_dir paths resolve against"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				if files, err = configFiles(cmd.String("dir")); err != nil {
					return fmt.Errorf("finding config files: %w", err)
				}
			}
			if len(files) == 0 {
				return fmt.Errorf("no configuration files found in %s", cmd.String("dir"))
			}

			results := make([]ValidationResult, 0, len(files))
			for _, file := range files {
				results = append(results, validateConfig(file, cmd.String("base")))
			}
			if !report(os.Stdout, results) {
				return cli.Exit("", 1)
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		log.Fatal("validation failed", "err", err)
	}
}
