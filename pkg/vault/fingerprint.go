package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// dirFS adapts a directory path for the fs-based scan and fingerprint.
func dirFS(root string) fs.FS {
	return os.DirFS(root)
}

// Fingerprint computes a cheap content identifier for a vault directory.
// It hashes the path, size, and modification time of every Markdown file,
// so edits, additions, and deletions all change the fingerprint without
// reading file contents. Used as the cache key for scanned graphs.
func Fingerprint(root string) (string, error) {
	return FingerprintFS(dirFS(root))
}

// FingerprintFS computes the fingerprint over any fs.FS.
func FingerprintFS(fsys fs.FS) (string, error) {
	h := sha256.New()
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(path.Ext(p), ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "%s\x00%d\x00%d\n", p, info.Size(), info.ModTime().UnixNano())
		return nil
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
