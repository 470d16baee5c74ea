//go:build !unix

package update

import (
	"os"
)

func getFileOwnership(info os.FileInfo) (uid, gid int) {
	return -1, -1
}

func chownFile(path string, uid, gid int) error {
	return nil
}
