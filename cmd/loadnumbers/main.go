// Command loadnumbers seeds the number pool database with valid puzzle
// targets. It reads one target per line from a text file (blank lines and
// lines starting with # are skipped) and inserts them into the SQLite pool
// the server draws from.
//
// Usage:
//
//	loadnumbers --pool numbers.db numbers.txt
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/vkoval/numrace/game/pool"
)

func main() {
	cmd := &cli.Command{
		Name:      "loadnumbers",
		Usage:     "seed the numrace number pool from a text file",
		ArgsUsage: "<numbers-file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "pool",
				Usage: "path to the pool database",
				Value: "numbers.db",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one numbers file, got %d arguments", cmd.Args().Len())
	}

	file, err := os.Open(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("open numbers file: %w", err)
	}
	defer file.Close()

	store, err := pool.OpenSQLite(cmd.String("pool"))
	if err != nil {
		return err
	}
	defer store.Close()

	inserted := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := store.Add(ctx, line); err != nil {
			return fmt.Errorf("add %q: %w", line, err)
		}
		inserted++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read numbers file: %w", err)
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Inserted %d numbers (%d total in pool)\n", inserted, total)
	return nil
}
