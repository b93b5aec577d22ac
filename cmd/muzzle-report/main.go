// Command muzzle-report filters text files and writes the reviewer log
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"muzzle/internal/core/filter"
	"muzzle/internal/core/report"
	"muzzle/internal/core/wordlist"
	"muzzle/internal/platform/logger"
)

type options struct {
	split    string
	out      string
	name     string
	stdout   bool
	wordlist string
	mask     string
	inputs   []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("muzzle-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.split, "split", "whole", "how inputs become entries: whole, lines or paragraphs")
	fs.StringVar(&o.out, "out", report.DefaultDir, "output directory")
	fs.StringVar(&o.name, "name", report.DefaultName, "output file name")
	fs.BoolVar(&o.stdout, "stdout", false, "write the report to stdout instead of a file")
	fs.StringVar(&o.wordlist, "wordlist", "", "wordlist file (.json or .toml); empty uses the embedded list")
	fs.StringVar(&o.mask, "mask", filter.DefaultMask, "replacement token")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.inputs = fs.Args()
	return o, nil
}

// collect reads every input (stdin when none or "-") and splits it per mode
func collect(o options, stdin io.Reader) ([]string, error) {
	mode, err := report.ParseSplitMode(o.split)
	if err != nil {
		return nil, err
	}
	paths := o.inputs
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var texts []string
	for _, p := range paths {
		var b []byte
		if p == "-" {
			b, err = io.ReadAll(stdin)
		} else {
			b, err = os.ReadFile(p)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		texts = append(texts, report.Split(string(b), mode)...)
	}
	return texts, nil
}

func loadFilter(o options) (*filter.Filter, error) {
	wl, err := wordlist.Load()
	if o.wordlist != "" {
		wl, err = wordlist.LoadFile(o.wordlist)
	}
	if err != nil {
		return nil, err
	}
	return filter.FromWordlist(wl, filter.WithMask(o.mask))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	f, err := loadFilter(o)
	if err != nil {
		return err
	}
	texts, err := collect(o, stdin)
	if err != nil {
		return err
	}

	log := logger.Named("report")
	if o.stdout {
		sum, err := report.Write(stdout, f, texts)
		if err != nil {
			return err
		}
		log.Info().Int("written", sum.Written).Int("skipped", sum.Skipped).Int("profane", sum.Profane).Msg("report done")
		return nil
	}
	path, sum, err := report.Save(o.out, o.name, f, texts)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Int("written", sum.Written).Int("skipped", sum.Skipped).Int("profane", sum.Profane).Msg("report saved")
	_, _ = fmt.Fprintln(stdout, path)
	return nil
}

func main() {
	logger.Init(logger.Options{Level: "info", Format: "console", Service: "muzzle-report", Writer: os.Stderr})
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
