// Package recent remembers the paths entered in the workspace prompts and
// offers them back as completions, most used first.
package recent

import (
	"path/filepath"
	"strings"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/speechmark/speechmark/filesystem"
	"github.com/speechmark/speechmark/where"
	"golang.org/x/exp/slices"
)

// Kind separates video paths from transcript paths.
type Kind string

const (
	Video      Kind = "video"
	Transcript Kind = "transcript"
)

// MaxPaths bounds how many paths are kept per kind.
const MaxPaths = 30

type record struct {
	Rank int    `json:"rank"`
	Path string `json:"path"`
}

var cacher = gache.New[map[Kind]map[string]*record](
	&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	},
)

func load() map[Kind]map[string]*record {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[Kind]map[string]*record)
	}
	return cached
}

// Remember records a use of path, raising its rank.
func Remember(kind Kind, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	path = filepath.Clean(path)

	cached := load()
	records, ok := cached[kind]
	if !ok {
		records = make(map[string]*record)
		cached[kind] = records
	}

	if r, ok := records[path]; ok {
		r.Rank++
	} else {
		records[path] = &record{Rank: 1, Path: path}
	}

	if len(records) > MaxPaths {
		weakest := lo.MinBy(lo.Values(records), func(a, b *record) bool {
			return a.Rank < b.Rank
		})
		delete(records, weakest.Path)
	}

	return cacher.Set(cached)
}

// Paths returns the remembered paths of kind, most used first. Ties keep a
// stable alphabetical order.
func Paths(kind Kind) []string {
	records := lo.Values(load()[kind])

	slices.SortFunc(records, func(a, b *record) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Path, b.Path)
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.Path
	})
}

// Forget drops every remembered path.
func Forget() error {
	return cacher.Set(make(map[Kind]map[string]*record))
}
