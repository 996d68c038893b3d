package storage

import (
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/solasystems/crewdesk/pkg/file"
)

// fileStore persists each key as its own file under a private directory in
// the user's home. It stands in for a platform keychain at the SecureStore
// boundary: per-key confidentiality comes from 0600 file modes and a 0700
// directory.
type fileStore struct {
	dir string
}

// NewFileStore returns a SecureStore backed by files under ~/.crewdesk.
func NewFileStore() (SecureStore, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return nil, errors.Wrap(err, "error locating user's home directory")
	}
	return &fileStore{
		dir: path.Join(homeDir, ".crewdesk"),
	}, nil
}

func (f *fileStore) Get(key string) (string, error) {
	filename := path.Join(f.dir, key)
	if !file.Exists(filename) {
		return "", nil
	}
	valueBytes, err := os.ReadFile(filename)
	if err != nil {
		return "", &Error{Op: "get", Key: key, cause: err}
	}
	return string(valueBytes), nil
}

func (f *fileStore) Set(key, value string) error {
	if err := os.MkdirAll(f.dir, 0700); err != nil {
		return &Error{Op: "set", Key: key, cause: err}
	}
	if err := os.WriteFile(
		path.Join(f.dir, key),
		[]byte(value),
		0600,
	); err != nil {
		return &Error{Op: "set", Key: key, cause: err}
	}
	return nil
}

func (f *fileStore) Delete(key string) error {
	if err := os.Remove(path.Join(f.dir, key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &Error{Op: "delete", Key: key, cause: err}
	}
	return nil
}
