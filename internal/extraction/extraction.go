package extraction

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
)

// isImageFile checks if a file extension is a supported image format.
func isImageFile(ext string) bool {
	images := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".webp": true, ".tiff": true,
	}
	return images[ext]
}

// shouldIgnoreFile checks if a file should be ignored (system files, hidden
// files, macOS resource forks).
func shouldIgnoreFile(filename string) bool {
	if strings.HasPrefix(filename, "._") {
		return true
	}
	if strings.HasPrefix(filename, ".") {
		return true
	}
	if filename == ".DS_Store" || strings.ToLower(filename) == "thumbs.db" {
		return true
	}
	if filename == "" || strings.HasSuffix(filename, "/") {
		return true
	}
	return false
}

// ExtractImages extracts an uploaded archive to a temporary directory and
// returns the paths of the contained image files. Non-image and system
// files are skipped. The caller must remove destDir when done.
func ExtractImages(ctx context.Context, archivePath string) (imagePaths []string, destDir string, err error) {
	destDir, err = os.MkdirTemp("", "extract-*")
	if err != nil {
		return nil, "", err
	}

	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}

	err = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		filename := filepath.Base(path)
		if shouldIgnoreFile(filename) {
			return nil
		}
		if !isImageFile(strings.ToLower(filepath.Ext(filename))) {
			return nil
		}

		reader, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer reader.Close()

		// Preserve the entry's relative path so same-named files in
		// different directories cannot overwrite each other.
		outPath := filepath.Join(destDir, path)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		if _, err := io.Copy(out, reader); err != nil {
			return err
		}
		imagePaths = append(imagePaths, outPath)
		return nil
	})
	if err != nil {
		os.RemoveAll(destDir)
		return nil, "", err
	}
	return imagePaths, destDir, nil
}
