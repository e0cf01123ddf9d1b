package excel

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileIsNotWritable checks if a file is not writable
func FileIsNotWritable(absolutePath string) bool {
	f, err := os.OpenFile(path.Clean(absolutePath), os.O_WRONLY, os.ModePerm)
	if err != nil {
		return true
	}
	defer f.Close()
	return false
}

func normalizePath(p string) string {
	// Normalize the volume name to uppercase
	vol := filepath.VolumeName(p)
	if vol == "" {
		return p
	}
	rest := p[len(vol):]
	return filepath.Clean(strings.ToUpper(vol) + rest)
}
