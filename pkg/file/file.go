package file

import "os"

// Exists returns true if the specified file exists.
func Exists(filename string) bool {
	if _, err := os.Stat(filename); err != nil {
		return false
	}
	return true
}
