package services

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageArchive keeps a best-effort on-disk copy of generated QR images,
// keyed by record id. Files follow the record lifecycle: archived on
// create, removed when the record is deleted or swept. Archive failures
// never fail a request.
type ImageArchive struct {
	dir string
}

// NewImageArchive creates the archive rooted at dir, creating the
// directory if needed.
func NewImageArchive(dir string) *ImageArchive {
	if err := os.MkdirAll(dir, 0755); err != nil {
		// Will fail on actual writes; the caller treats those as best effort
		fmt.Printf("Warning: could not create QR archive directory: %v\n", err)
	}
	return &ImageArchive{dir: dir}
}

// Save writes the PNG for a record id.
func (a *ImageArchive) Save(id string, png []byte) error {
	if len(png) == 0 {
		return fmt.Errorf("empty image data")
	}
	path := a.Path(id)
	if err := os.WriteFile(path, png, 0644); err != nil {
		return fmt.Errorf("failed to archive QR image: %w", err)
	}
	return nil
}

// Delete removes the archived image for a record id. A missing file is
// not an error.
func (a *ImageArchive) Delete(id string) error {
	path := a.Path(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete archived QR image: %w", err)
	}
	return nil
}

// Path returns the on-disk location for a record id.
func (a *ImageArchive) Path(id string) string {
	return filepath.Join(a.dir, id+".png")
}

// Count returns how many images are currently archived.
func (a *ImageArchive) Count() int {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".png" {
			count++
		}
	}
	return count
}
