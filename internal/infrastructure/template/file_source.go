// Package template loads the invoice template asset.
package template

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/rishabgems/invoice-api/internal/domain/repository"
	"github.com/spf13/afero"
)

type fileSource struct {
	fs   afero.Fs
	path string
}

// NewFileSource reads the template from path on fs each time it is loaded,
// so a replaced template file takes effect without a restart.
func NewFileSource(fs afero.Fs, path string) repository.TemplateSource {
	return &fileSource{fs: fs, path: path}
}

func (s *fileSource) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read template %s", s.path)
	}
	return b, nil
}

func (s *fileSource) Location() string {
	return s.path
}
