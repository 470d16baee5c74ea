//go:build unix

package update

import (
	"os"
	"syscall"
)

// getFileOwnership returns the owner of info, or -1, -1 when unavailable.
func getFileOwnership(info os.FileInfo) (uid, gid int) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(stat.Uid), int(stat.Gid)
	}
	return -1, -1
}

// chownFile restores ownership; unknown ids are skipped.
func chownFile(path string, uid, gid int) error {
	if uid < 0 || gid < 0 {
		return nil
	}
	return os.Chown(path, uid, gid)
}
