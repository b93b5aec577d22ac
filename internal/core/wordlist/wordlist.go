// Package wordlist loads the ordered word and lookalike lists the filter compiles.
// The default list is embedded; JSON and TOML files can replace or extend it
package wordlist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"muzzle/internal/core/normalize"

	"github.com/BurntSushi/toml"
)

//go:embed words.json
var embedded []byte

// CurrentVersion is the only accepted file version. Zero is read as current
const CurrentVersion = 1

// Format names a wordlist encoding
type Format string

const (
	// FormatJSON is the embedded and default encoding
	FormatJSON Format = "json"
	// FormatTOML is the hand-edited encoding
	FormatTOML Format = "toml"
)

// ErrEmptyEntry is returned when a list contains a blank entry.
// A blank word would compile to a rule that matches everywhere
var ErrEmptyEntry = errors.New("wordlist: empty entry")

// Wordlist is the ordered data the filter is built from.
// Order is significant: rules are applied in list order
type Wordlist struct {
	Version    int      `json:"version" toml:"version"`
	Name       string   `json:"name,omitempty" toml:"name,omitempty"`
	Words      []string `json:"words" toml:"words"`
	Lookalikes []string `json:"lookalikes,omitempty" toml:"lookalikes,omitempty"`
}

// Load returns the embedded default wordlist
func Load() (*Wordlist, error) {
	wl, err := Parse(embedded, FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("wordlist: embedded words.json: %w", err)
	}
	return wl, nil
}

// MustLoad is Load for package init paths and tests
func MustLoad() *Wordlist {
	wl, err := Load()
	if err != nil {
		panic(err)
	}
	return wl
}

// LoadFile reads a wordlist from disk, the format follows the file extension
func LoadFile(path string) (*Wordlist, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", path, err)
	}
	wl, err := Parse(data, f)
	if err != nil {
		return nil, fmt.Errorf("wordlist: %s: %w", filepath.Base(path), err)
	}
	return wl, nil
}

// FormatFromPath maps .json and .toml extensions to a Format
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("wordlist: unsupported file type %q", filepath.Ext(path))
	}
}

// Parse decodes and validates a wordlist. Unknown keys are rejected in both formats
func Parse(data []byte, f Format) (*Wordlist, error) {
	var wl Wordlist
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&wl); err != nil {
			return nil, fmt.Errorf("wordlist: parse json: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &wl)
		if err != nil {
			return nil, fmt.Errorf("wordlist: parse toml: %w", err)
		}
		if un := md.Undecoded(); len(un) > 0 {
			return nil, fmt.Errorf("wordlist: parse toml: unknown key %q", un[0].String())
		}
	default:
		return nil, fmt.Errorf("wordlist: unknown format %q", f)
	}
	if wl.Version == 0 {
		wl.Version = CurrentVersion
	}
	if err := wl.Validate(); err != nil {
		return nil, err
	}
	return &wl, nil
}

// Validate checks the version and rejects blank entries
func (wl *Wordlist) Validate() error {
	if wl.Version != CurrentVersion {
		return fmt.Errorf("wordlist: unsupported version %d (want %d)", wl.Version, CurrentVersion)
	}
	for i, w := range wl.Words {
		if normalize.Trim(w) == "" {
			return fmt.Errorf("%w: words[%d]", ErrEmptyEntry, i)
		}
	}
	for i, p := range wl.Lookalikes {
		if normalize.Trim(p) == "" {
			return fmt.Errorf("%w: lookalikes[%d]", ErrEmptyEntry, i)
		}
	}
	return nil
}

// Len is the number of rules the list compiles to
func (wl *Wordlist) Len() int { return len(wl.Words) + len(wl.Lookalikes) }

// Clone returns a deep copy
func (wl *Wordlist) Clone() *Wordlist {
	return &Wordlist{
		Version:    wl.Version,
		Name:       wl.Name,
		Words:      append([]string(nil), wl.Words...),
		Lookalikes: append([]string(nil), wl.Lookalikes...),
	}
}

// Merge concatenates lists keeping the first occurrence of each entry.
// nil lists are skipped; the result takes the first non-empty name
func Merge(lists ...*Wordlist) *Wordlist {
	out := &Wordlist{Version: CurrentVersion}
	seenW := map[string]struct{}{}
	seenL := map[string]struct{}{}
	for _, wl := range lists {
		if wl == nil {
			continue
		}
		if out.Name == "" {
			out.Name = wl.Name
		}
		for _, w := range wl.Words {
			if _, ok := seenW[w]; ok {
				continue
			}
			seenW[w] = struct{}{}
			out.Words = append(out.Words, w)
		}
		for _, p := range wl.Lookalikes {
			if _, ok := seenL[p]; ok {
				continue
			}
			seenL[p] = struct{}{}
			out.Lookalikes = append(out.Lookalikes, p)
		}
	}
	return out
}

// Encode writes wl in the given format
func (wl *Wordlist) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(wl, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("wordlist: encode json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(wl); err != nil {
			return nil, fmt.Errorf("wordlist: encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("wordlist: unknown format %q", f)
	}
}
