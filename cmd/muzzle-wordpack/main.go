// Command muzzle-wordpack merges wordlist fragments into one list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"muzzle/internal/core/wordlist"
	"muzzle/internal/platform/config"
	"muzzle/internal/platform/logger"
	"muzzle/internal/platform/store"
	wlsvc "muzzle/internal/services/wordlist/service"
)

// findFragments lists .json and .toml files directly under dir, sorted by name
func findFragments(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".toml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no .json or .toml fragments under %s: %w", dir, fs.ErrNotExist)
	}
	return files, nil
}

// assemble merges fragments in file order; the first occurrence of an entry wins
func assemble(dir, name string) (*wordlist.Wordlist, error) {
	files, err := findFragments(dir)
	if err != nil {
		return nil, err
	}
	lists := make([]*wordlist.Wordlist, 0, len(files))
	for _, p := range files {
		wl, err := wordlist.LoadFile(p)
		if err != nil {
			return nil, err
		}
		lists = append(lists, wl)
	}
	out := wordlist.Merge(lists...)
	if name != "" {
		out.Name = name
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// push replaces the stored list
func push(ctx context.Context, wl *wordlist.Wordlist) error {
	cfg := store.ConfigFromEnv("muzzle-wordpack")
	if !cfg.PG.Enabled {
		return errors.New("-pg needs SERVICE_PGSQL_URL")
	}
	cfg.CH.Enabled, cfg.RDS.Enabled = false, false
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Named("store")))
	if err != nil {
		return err
	}
	defer func() { _ = st.Close(context.Background()) }()

	svc := wlsvc.New(st.PG, nil)
	if err := svc.EnsureSchema(ctx); err != nil {
		return err
	}
	return svc.Replace(ctx, wl)
}

func run(args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("muzzle-wordpack", flag.ContinueOnError)
	fset.SetOutput(stderr)
	var (
		dir    = fset.String("dir", "./wordlists", "directory of .json and .toml fragments")
		out    = fset.String("out", "-", "output path or '-' for stdout")
		format = fset.String("format", string(wordlist.FormatJSON), "output encoding: json or toml")
		name   = fset.String("name", "", "name for the merged list; empty keeps the first fragment's")
		pg     = fset.Bool("pg", false, "also replace the list stored in Postgres")
	)
	if err := fset.Parse(args); err != nil {
		return err
	}

	wl, err := assemble(*dir, *name)
	if err != nil {
		return err
	}
	enc, err := wl.Encode(wordlist.Format(*format))
	if err != nil {
		return err
	}

	log := logger.Named("wordpack")
	if *out == "-" {
		if _, err := stdout.Write(enc); err != nil {
			return err
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(*out, enc, 0o644); err != nil {
			return err
		}
		log.Info().Str("path", *out).Int("bytes", len(enc)).Msg("wordlist written")
	}

	if *pg {
		if err := push(context.Background(), wl); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		log.Info().Str("name", wl.Name).Int("entries", wl.Len()).Msg("wordlist stored")
	}
	return nil
}

func main() {
	if err := config.LoadDotenv(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	lo := logger.FromEnv()
	lo.Writer = os.Stderr
	lo.Service = "muzzle-wordpack"
	logger.Init(lo)

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
