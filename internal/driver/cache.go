package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cstyle/internal/diag"
	"cstyle/internal/source"
)

// Bump when the payload format changes; stale entries then read as misses.
const resultCacheSchemaVersion uint16 = 1

// ResultCache persists per-file diagnostics across runs, keyed by the file
// content hash and the effective rule configuration. Thread-safe.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// cachedDiag stores a diagnostic without its FileID: IDs are assigned per
// run, so spans are rebound to the current file on load.
type cachedDiag struct {
	Code     uint16
	Severity uint8
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
}

type cachePayload struct {
	Schema      uint16
	ContentHash [32]byte
	Config      string
	Diags       []cachedDiag
}

// OpenResultCache initializes a disk cache under the standard user cache
// location.
func OpenResultCache(app string) (*ResultCache, error) {
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
	return &ResultCache{dir: dir}, nil
}

// OpenResultCacheAt initializes a disk cache rooted at an explicit directory.
func OpenResultCacheAt(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) key(f *source.File, fingerprint string) [32]byte {
	h := sha256.New()
	h.Write(f.Hash[:])
	h.Write([]byte(fingerprint))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *ResultCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "results", hex.EncodeToString(key[:])+".mp")
}

// Get loads cached diagnostics for the file under the given configuration
// fingerprint. Any decode or validation failure reads as a miss.
func (c *ResultCache) Get(f *source.File, fingerprint string) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	fh, err := os.Open(c.pathFor(c.key(f, fingerprint)))
	if err != nil {
		return nil, false
	}
	defer fh.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(fh).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != resultCacheSchemaVersion ||
		payload.ContentHash != f.Hash ||
		payload.Config != fingerprint {
		return nil, false
	}

	out := make([]diag.Diagnostic, 0, len(payload.Diags))
	for _, cd := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: f.ID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: f.ID, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		out = append(out, d)
	}
	return out, true
}

// Put serializes the diagnostics and writes them atomically.
func (c *ResultCache) Put(f *source.File, fingerprint string, items []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema:      resultCacheSchemaVersion,
		ContentHash: f.Hash,
		Config:      fingerprint,
		Diags:       make([]cachedDiag, 0, len(items)),
	}
	for _, d := range items {
		cd := cachedDiag{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diags = append(payload.Diags, cd)
	}

	p := c.pathFor(c.key(f, fingerprint))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// DropAll invalidates the whole cache.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
