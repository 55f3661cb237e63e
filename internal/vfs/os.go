package vfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of file bodies kept by the OS read cache.
const DefaultCacheSize = 256

// OS is an FS rooted at a directory on disk. Reads go through an LRU cache
// because entry and story files are read by more than one stage; writes and
// removals invalidate the affected entries.
type OS struct {
	root  string
	cache *lru.Cache[string, []byte]
}

// NewOS returns an FS rooted at root with a read cache of cacheSize entries.
// A cacheSize <= 0 selects DefaultCacheSize.
func NewOS(root string, cacheSize int) (*OS, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating read cache: %w", err)
	}
	return &OS{root: root, cache: cache}, nil
}

// Root returns the directory the filesystem is rooted at.
func (o *OS) Root() string { return o.root }

func (o *OS) abs(name string) string {
	return filepath.Join(o.root, filepath.FromSlash(Clean(name)))
}

func (o *OS) ListDir(dir string) ([]Entry, error) {
	des, err := os.ReadDir(o.abs(dir))
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(des))
	for _, de := range des {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (o *OS) ReadFile(name string) ([]byte, error) {
	key := Clean(name)
	if data, ok := o.cache.Get(key); ok {
		return data, nil
	}
	data, err := os.ReadFile(o.abs(key))
	if err != nil {
		return nil, err
	}
	o.cache.Add(key, data)
	return data, nil
}

func (o *OS) WriteFile(name string, data []byte) error {
	key := Clean(name)
	p := o.abs(key)
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	o.cache.Remove(key)
	return nil
}

func (o *OS) Exists(name string) bool {
	_, err := os.Stat(o.abs(name))
	return err == nil
}

// RemoveAll deletes name and everything below it.
func (o *OS) RemoveAll(name string) error {
	key := Clean(name)
	for _, k := range o.cache.Keys() {
		if k == key || (len(k) > len(key) && k[:len(key)+1] == key+"/") {
			o.cache.Remove(k)
		}
	}
	return os.RemoveAll(o.abs(key))
}
