package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Collect expands paths into the files to rename.
// Files named explicitly are always kept, so unsupported ones can be reported.
// Directories contribute only supported, non-hidden files; subdirectories
// are entered only when recursive is set.
func (l *Loader) Collect(paths []string, recursive bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == p {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				if !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && l.Supports(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
