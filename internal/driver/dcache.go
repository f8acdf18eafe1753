package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"quill/internal/project"
	"quill/internal/source"
)

// Bump when CheckPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache persists check results keyed by the aggregate content digest of
// a source tree, so an unchanged tree skips the whole pipeline.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CheckPayload is the cached outcome of one check run: the rendered
// diagnostics and the include list, plus the per-file hashes used for
// validation.
type CheckPayload struct {
	Schema uint16

	FilePaths  []string
	FileHashes []project.Digest

	// Rendered is the golden-format diagnostic text; HadErrors preserves
	// the exit status without reparsing it.
	Rendered  string
	HadErrors bool

	Includes []string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "checks", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache atomically. The
// schema version is stamped here; callers never set it.
func (c *DiskCache) Put(key project.Digest, payload *CheckPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = diskCacheSchemaVersion
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(f.Name()) }()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload; a missing entry or a schema
// mismatch is a miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *CheckPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// TreeDigest folds the per-file content hashes of a loaded tree into one
// cache key. Files keep their sorted load order, so equal trees produce
// equal keys.
func TreeDigest(fileSet *source.FileSet) project.Digest {
	var acc project.Digest
	deps := make([]project.Digest, 0, fileSet.Len())
	for i := 0; i < fileSet.Len(); i++ {
		f := fileSet.Get(source.FileID(i))
		deps = append(deps, project.Digest(f.Hash))
	}
	return project.Combine(acc, deps...)
}
