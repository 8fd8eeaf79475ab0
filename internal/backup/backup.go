// Package backup copies the database file aside before writes. A snapshot
// is a safety net for recovering from a failed write, not part of the
// atomic unit itself.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Snapshot copies dbPath into dir as <base>_<tag>_<timestamp><ext>. A
// missing database file is not an error; there is nothing to protect yet.
// Returns the snapshot path, or "" when nothing was copied.
func Snapshot(dbPath, dir, tag string) (string, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}

	base := filepath.Base(dbPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stamp := time.Now().Format("20060102_150405")
	dst := filepath.Join(dir, fmt.Sprintf("%s_%s_%s%s", stem, tag, stamp, ext))

	if err := copyFile(dbPath, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Prune removes the oldest snapshots in dir until at most keep remain.
// keep <= 0 disables pruning.
func Prune(dir string, keep int) error {
	if keep <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading backup dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) <= keep {
		return nil
	}

	// Timestamped names sort oldest first.
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("pruning %s: %w", name, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Sync()
}
