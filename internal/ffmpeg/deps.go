package ffmpeg

import (
	"os"
	"os/exec"
)

// ---------------------------------------------------------------------------
// Interfaces - local to this package, following Go idiom
// ---------------------------------------------------------------------------

// fileSystem abstracts the filesystem operations used for frame files.
type fileSystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
}

// envProvider abstracts environment and path lookup operations.
type envProvider interface {
	Getenv(key string) string
	LookPath(file string) (string, error)
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to standard library
// ---------------------------------------------------------------------------

// Compile-time interface verification.
var (
	_ fileSystem  = osFileSystem{}
	_ envProvider = osEnvProvider{}
)

type osFileSystem struct{}

func (osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (osFileSystem) ReadFile(name string) ([]byte, error) {
	// #nosec G304 -- frame paths are generated inside our own temp directory
	return os.ReadFile(name)
}

func (osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (osFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

type osEnvProvider struct{}

func (osEnvProvider) Getenv(key string) string {
	return os.Getenv(key)
}

func (osEnvProvider) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
