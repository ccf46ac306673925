// Package utils holds small filesystem helpers shared by the CLI.
package utils

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// OutputPath returns the path of the generated C++ file for the given
// output directory and file stem.
func OutputPath(outDir, stem string) string {
	return filepath.Join(outDir, stem+".cpp")
}

// WriteFileAtomic writes data to path through a uniquely named temp file
// in the same directory followed by a rename, so a reader never observes a
// half-written output and a failed run never leaves a partial file behind.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
