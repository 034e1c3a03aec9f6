package fs

import (
	"io"
	"os"
)

// File is a temporary output file that is renamed into place once complete.
type File interface {
	io.WriteCloser
	Name() string
	Sync() error
}

// FileSystem is the slice of the os package that LocalStore writes and lists
// through. Tests swap it for a FaultyFS.
type FileSystem interface {
	MkdirAll(path string, perm os.FileMode) error
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	ReadDir(name string) ([]os.DirEntry, error)
}

// LocalFS is the FileSystem backed by the operating system.
type LocalFS struct{}

func (LocalFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (LocalFS) CreateTemp(dir, pattern string) (File, error) { return os.CreateTemp(dir, pattern) }

func (LocalFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (LocalFS) Remove(name string) error { return os.Remove(name) }

func (LocalFS) ReadDir(name string) ([]os.DirEntry, error) { return os.ReadDir(name) }

// Default is the FileSystem used when a store is given none.
var Default FileSystem = LocalFS{}
