package dataset

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage reads logical JSON resources out of the dataset tree. Callers
// address resources by their plain name; the implementation transparently
// resolves either the uncompressed or the gzip-compressed encoding of the
// same payload. There are no write operations, the tree is immutable.
type Storage interface {
	// ReadJSON decodes the resource at the given repo-relative path into v.
	ReadJSON(rel string, v any) error

	// ReadJSONLines streams a gzip-compressed line-delimited JSON resource,
	// invoking fn once per non-empty line.
	ReadJSONLines(rel string, fn func(raw []byte) error) error

	// Exists reports whether the resource is present in either encoding.
	Exists(rel string) bool

	// List returns the file names directly under a repo-relative directory.
	List(rel string) ([]string, error)
}

// dirStorage serves a dataset rooted at a local directory.
type dirStorage struct {
	root string
}

// NewDirStorage returns a Storage over the given dataset root directory.
func NewDirStorage(root string) Storage {
	return &dirStorage{root: root}
}

// resolve maps a logical path to the physical file, preferring the exact
// name and falling back to the alternate .json/.json.gz encoding.
func (d *dirStorage) resolve(rel string) (string, bool) {
	p := filepath.Join(d.root, filepath.FromSlash(rel))
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	if strings.HasSuffix(p, ".json") {
		if gz := p + ".gz"; fileExists(gz) {
			return gz, true
		}
	}
	if strings.HasSuffix(p, ".json.gz") {
		if plain := strings.TrimSuffix(p, ".gz"); fileExists(plain) {
			return plain, true
		}
	}
	return p, false
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func (d *dirStorage) open(rel string) (io.ReadCloser, error) {
	p, ok := d.resolve(rel)
	if !ok {
		return nil, fmt.Errorf("resource %s: %w", rel, os.ErrNotExist)
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", rel, err)
	}
	if !strings.HasSuffix(p, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("opening gzip stream %s: %w", rel, err)
	}
	return &gzipReadCloser{zr: zr, f: f}, nil
}

type gzipReadCloser struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipReadCloser) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

func (d *dirStorage) ReadJSON(rel string, v any) error {
	r, err := d.open(rel)
	if err != nil {
		return err
	}
	defer r.Close()
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", rel, err)
	}
	return nil
}

func (d *dirStorage) ReadJSONLines(rel string, fn func(raw []byte) error) error {
	r, err := d.open(rel)
	if err != nil {
		return err
	}
	defer r.Close()

	sc := bufio.NewScanner(r)
	// Entry lines can be long; the default scanner cap is too small.
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn([]byte(line)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", rel, err)
	}
	return nil
}

func (d *dirStorage) Exists(rel string) bool {
	_, ok := d.resolve(rel)
	return ok
}

func (d *dirStorage) List(rel string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", rel, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
