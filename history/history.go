// Package history remembers recent annotation sessions so a video can be
// reopened with its transcript at the position where work stopped.
package history

import (
	"errors"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/speechmark/speechmark/filesystem"
	"github.com/speechmark/speechmark/where"
	"golang.org/x/exp/slices"
)

// MaxEntries bounds the registry; the least recently updated sessions are dropped first.
const MaxEntries = 50

// ErrEmptyVideo is returned when saving an entry without a video path.
var ErrEmptyVideo = errors.New("history entry has no video")

// cacher provides a disk-backed registry of sessions keyed by video path.
var cacher = gache.New[map[string]*Entry](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every saved session keyed by video path.
func Get() (map[string]*Entry, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Entry), nil
	}
	return cached, nil
}

// Save records entry, replacing an earlier session for the same video.
func Save(entry Entry) error {
	if entry.Video == "" {
		return ErrEmptyVideo
	}

	saved, err := Get()
	if err != nil {
		return err
	}

	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = time.Now()
	}
	saved[entry.encode()] = &entry

	if len(saved) > MaxEntries {
		for _, stale := range sorted(saved)[MaxEntries:] {
			delete(saved, stale.encode())
		}
	}

	return cacher.Set(saved)
}

// Sorted returns all sessions, most recently updated first.
func Sorted() ([]*Entry, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}
	return sorted(saved), nil
}

func sorted(saved map[string]*Entry) []*Entry {
	entries := lo.Values(saved)
	slices.SortFunc(entries, func(a, b *Entry) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return entries
}

// Latest returns the most recently updated session, if any.
func Latest() (mo.Option[*Entry], error) {
	entries, err := Sorted()
	if err != nil {
		return mo.None[*Entry](), err
	}
	if len(entries) == 0 {
		return mo.None[*Entry](), nil
	}
	return mo.Some(entries[0]), nil
}

// Lookup returns the session saved for video.
func Lookup(video string) (mo.Option[*Entry], error) {
	saved, err := Get()
	if err != nil {
		return mo.None[*Entry](), err
	}
	entry, ok := saved[(&Entry{Video: video}).encode()]
	if !ok {
		return mo.None[*Entry](), nil
	}
	return mo.Some(entry), nil
}

// Find returns the sessions whose video name fuzzily matches query,
// most recently updated first.
func Find(query string) ([]*Entry, error) {
	entries, err := Sorted()
	if err != nil {
		return nil, err
	}
	return lo.Filter(entries, func(e *Entry, _ int) bool {
		return fuzzy.MatchFold(query, e.Name())
	}), nil
}

// Remove deletes the session saved for video.
func Remove(video string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, (&Entry{Video: video}).encode())
	return cacher.Set(saved)
}

// Clear deletes every saved session.
func Clear() error {
	return cacher.Set(make(map[string]*Entry))
}
