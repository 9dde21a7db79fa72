package docstore

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

type localStore struct {
	fs afero.Fs
}

// NewLocalStore stores documents as files under dir, creating it if needed.
func NewLocalStore(dir string) (Store, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "docstore: create %s", dir)
	}
	return NewFsStore(afero.NewBasePathFs(osFs, dir)), nil
}

// NewFsStore stores documents in fs. Keys are slash-separated relative paths.
func NewFsStore(fs afero.Fs) Store {
	return &localStore{fs: fs}
}

func (s *localStore) Driver() string { return "local" }

func cleanKey(key string) (string, error) {
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", errors.Newf("docstore: invalid key %q", key)
		}
	}
	k := path.Clean("/" + key)
	if k == "/" {
		return "", errors.Newf("docstore: invalid key %q", key)
	}
	return k, nil
}

func (s *localStore) Put(_ context.Context, key string, data []byte, _ string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(path.Dir(k), 0o755); err != nil {
		return errors.Wrapf(err, "docstore: create directory for %s", key)
	}
	if err := afero.WriteFile(s.fs, k, data, 0o644); err != nil {
		return errors.Wrapf(err, "docstore: write %s", key)
	}
	return nil
}

func (s *localStore) Get(_ context.Context, key string) ([]byte, error) {
	k, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, k)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "key %s", key)
		}
		return nil, errors.Wrapf(err, "docstore: read %s", key)
	}
	return b, nil
}

func (s *localStore) Exists(_ context.Context, key string) (bool, error) {
	k, err := cleanKey(key)
	if err != nil {
		return false, err
	}
	ok, err := afero.Exists(s.fs, k)
	if err != nil {
		return false, errors.Wrapf(err, "docstore: stat %s", key)
	}
	return ok, nil
}
