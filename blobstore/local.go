package blobstore

import (
	"context"
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/arffconv/internal/fs"
	"github.com/hupe1980/arffconv/internal/mmap"
)

// LocalOptions configures a LocalStore.
type LocalOptions struct {
	// FileSystem performs all writes and directory listings.
	// Defaults to fs.Default.
	FileSystem fs.FileSystem
	// DirPerm is used when creating missing directories. Defaults to 0755.
	DirPerm os.FileMode
}

// LocalStore implements Store on a local directory.
type LocalStore struct {
	root string
	opts LocalOptions
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// The directory does not need to exist until the first Put.
func NewLocalStore(root string, optFns ...func(o *LocalOptions)) *LocalStore {
	opts := LocalOptions{
		FileSystem: fs.Default,
		DirPerm:    0o755,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &LocalStore{root: root, opts: opts}
}

// Root returns the store's root directory.
func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// Open memory-maps the named file.
func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		return nil, err
	}
	// Entries are decompressed front to back.
	_ = m.Advise(mmap.AccessSequential)
	return &localBlob{m: m}, nil
}

// Put writes data to a temp file next to the target and renames it into
// place, creating missing parent directories first.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) (err error) {
	fsys := s.opts.FileSystem
	target := s.path(name)
	dir := filepath.Dir(target)

	if err := fsys.MkdirAll(dir, s.opts.DirPerm); err != nil {
		return err
	}

	tmp, err := fsys.CreateTemp(dir, filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return fsys.Rename(tmp.Name(), target)
}

// List returns the slash-separated names of all regular files under the root
// starting with prefix. A missing root yields an empty list.
func (s *LocalStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	if err := s.walk(ctx, "", &names); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	filtered := names[:0]
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			filtered = append(filtered, name)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}

func (s *LocalStore) walk(ctx context.Context, rel string, names *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := s.opts.FileSystem.ReadDir(s.path(rel))
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := path.Join(rel, e.Name())
		if e.IsDir() {
			if err := s.walk(ctx, name, names); err != nil {
				return err
			}
			continue
		}
		*names = append(*names, name)
	}
	return nil
}

type localBlob struct {
	m *mmap.Mapping
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	return b.m.ReadAt(p, off)
}

func (b *localBlob) Close() error {
	return b.m.Close()
}

func (b *localBlob) Size() int64 {
	return int64(b.m.Size())
}
