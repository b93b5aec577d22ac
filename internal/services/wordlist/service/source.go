package service

import (
	"context"
	"fmt"

	"muzzle/internal/core/filter"
	"muzzle/internal/core/wordlist"
	"muzzle/internal/platform/config"
)

// Source names where the API wordlist comes from
type Source string

// Sources
const (
	SourceEmbedded Source = "embedded"
	SourceFile     Source = "file"
	SourcePG       Source = "pg"
)

// SourceOptions picks and locates the wordlist
type SourceOptions struct {
	Source Source
	Path   string
	Mask   string
}

// SourceFromConfig reads MUZZLE_FILTER_SOURCE, MUZZLE_FILTER_WORDLIST and MUZZLE_FILTER_MASK
func SourceFromConfig(cfg config.Conf) SourceOptions {
	c := cfg.Prefix("MUZZLE_FILTER_")
	return SourceOptions{
		Source: Source(c.MayEnum("SOURCE", string(SourceEmbedded),
			string(SourceEmbedded), string(SourceFile), string(SourcePG))),
		Path: c.MayString("WORDLIST", ""),
		Mask: c.MayString("MASK", filter.DefaultMask),
	}
}

// Loader reads a stored list
type Loader interface {
	Load(ctx context.Context) (*wordlist.Wordlist, error)
}

// LoadWordlist resolves the list for o. stored is only used for SourcePG
func LoadWordlist(ctx context.Context, o SourceOptions, stored Loader) (*wordlist.Wordlist, error) {
	switch o.Source {
	case SourceEmbedded, "":
		return wordlist.Load()
	case SourceFile:
		if o.Path == "" {
			return nil, fmt.Errorf("wordlist: source file needs a path")
		}
		return wordlist.LoadFile(o.Path)
	case SourcePG:
		if stored == nil {
			return nil, fmt.Errorf("wordlist: source pg needs postgres")
		}
		return stored.Load(ctx)
	default:
		return nil, fmt.Errorf("wordlist: unknown source %q", o.Source)
	}
}

// BuildFilter loads the list for o and compiles it
func BuildFilter(ctx context.Context, o SourceOptions, stored Loader) (*filter.Filter, *wordlist.Wordlist, error) {
	wl, err := LoadWordlist(ctx, o, stored)
	if err != nil {
		return nil, nil, err
	}
	f, err := filter.FromWordlist(wl, filter.WithMask(o.Mask))
	if err != nil {
		return nil, nil, err
	}
	return f, wl, nil
}
