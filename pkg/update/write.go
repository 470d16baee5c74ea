package update

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ajxudir/wsbump/pkg/verbose"
	"github.com/ajxudir/wsbump/pkg/warnings"
)

var (
	readFileFunc  = os.ReadFile
	writeFileFunc = writeFilePreservingPermissions
	statFileFunc  = os.Stat
)

// fileAttrs is the metadata of a manifest that must survive a rewrite.
type fileAttrs struct {
	mode os.FileMode
	uid  int
	gid  int
}

func getFileAttrs(path string) (*fileAttrs, error) {
	info, err := statFileFunc(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	uid, gid := getFileOwnership(info)
	return &fileAttrs{mode: info.Mode().Perm(), uid: uid, gid: gid}, nil
}

func tempSuffix() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return ".wsbump.tmp"
	}
	return "." + hex.EncodeToString(b) + ".tmp"
}

// writeFileAtomic writes content next to path and renames it into place, so
// an interrupted run never leaves a truncated manifest behind.
//
// rename() only needs write access to the directory, so a read-only target
// is rejected up front instead of being silently replaced.
func writeFileAtomic(path string, content []byte, mode os.FileMode) error {
	if info, err := statFileFunc(path); err == nil && info.Mode().Perm()&0o200 == 0 {
		return fmt.Errorf("file is read-only: %s", path)
	}

	tempPath := filepath.Join(filepath.Dir(path), filepath.Base(path)+tempSuffix())
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			warnings.Warnf("Warning: failed to clean up temp file %s: %v\n", tempPath, removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// writeFilePreservingPermissions atomically replaces path, keeping its mode
// and, where the platform allows, its owner. defaultMode applies when path
// does not exist yet.
func writeFilePreservingPermissions(path string, content []byte, defaultMode os.FileMode) error {
	orig, err := getFileAttrs(path)
	mode := defaultMode
	if err == nil {
		mode = orig.mode
	}

	if err := writeFileAtomic(path, content, mode); err != nil {
		return err
	}

	if orig == nil {
		return nil
	}

	if orig.uid >= 0 && orig.gid >= 0 {
		if chownErr := chownFile(path, orig.uid, orig.gid); chownErr != nil {
			// Not fatal: chown needs privileges the user may not have.
			verbose.Printf("Unable to preserve file ownership for %s: %v", path, chownErr)
		}
	}

	after, statErr := getFileAttrs(path)
	if statErr != nil {
		warnings.Warnf("Warning: unable to verify file permissions after write for %s: %v\n", path, statErr)
		return nil
	}
	if after.mode != orig.mode {
		warnings.Warnf("Warning: file permissions changed for %s: %v -> %v\n", path, orig.mode, after.mode)
	}
	if orig.uid >= 0 && orig.gid >= 0 && (after.uid != orig.uid || after.gid != orig.gid) {
		warnings.Warnf("Warning: file ownership changed for %s: %d:%d -> %d:%d\n",
			path, orig.uid, orig.gid, after.uid, after.gid)
	}
	return nil
}
