// Package fsutil provides file system utility functions.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}
	return find(rootPath, func(name string) bool {
		return strings.HasSuffix(name, extension)
	})
}

// FindFilesByName recursively searches the given root path for all files with
// the exact base name, e.g. "package.hcl". It returns a slice of their full paths.
func FindFilesByName(rootPath string, fileName string) ([]string, error) {
	if fileName == "" {
		panic("fileName must not be empty")
	}
	return find(rootPath, func(name string) bool {
		return name == fileName
	})
}

func find(rootPath string, match func(name string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && match(d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}
