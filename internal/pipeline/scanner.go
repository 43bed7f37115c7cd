package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// Name is the base file name, used for report entries.
	Name string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// ScanImages returns the image files under path. A single image file is
// returned as-is; a directory is walked recursively with hidden
// directories skipped.
func ScanImages(path string) ([]Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil, fmt.Errorf("%s is not a recognized image file", path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		return []Source{{AbsPath: abs, Name: info.Name(), Size: info.Size()}}, nil
	}

	var sources []Source
	err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(fi.Name(), ".") && fi.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		sources = append(sources, Source{AbsPath: abs, Name: fi.Name(), Size: fi.Size()})
		return nil
	})
	return sources, err
}
