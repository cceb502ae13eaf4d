// Package proofstore keeps uploaded proof-of-payment artifacts on disk. It
// runs before the inventory transaction: a failed upload aborts the request
// before any reservation exists, and the core only ever sees the opaque
// location string returned by Save.
package proofstore

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"raffle-tickets/internal/pkg/errs"
)

// URLPrefix is where the HTTP layer serves saved artifacts from.
const URLPrefix = "/uploads"

type Storage struct {
	dir string
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "failed to create upload directory")
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// Save stores the uploaded file under a fresh name and returns its public
// location. The original filename is only consulted for the extension.
func (s *Storage) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", errs.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	name := "proof-" + uuid.NewString() + filepath.Ext(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", errs.Wrap(err, "failed to create proof file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", errs.Wrap(err, "failed to store proof file")
	}

	return path.Join(URLPrefix, name), nil
}
