package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vuongnm/staffdesk/internal/domain"
)

// FieldName is the multipart field carrying the profile picture.
const FieldName = "profilePicture"

// allowedTypes maps accepted declared content types to their canonical
// extensions. Both the declared type and the filename extension must be
// on the list.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Store validates and persists profile pictures under a fixed
// directory, one file per write request.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates the uploads directory if needed.
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, domain.WrapError(domain.KindInternal, "failed to create upload directory", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the directory files are stored in.
func (s *Store) Dir() string { return s.dir }

// Save validates the file and writes it under a random storage key,
// returning the reference path to put on the record. The client's
// filename never reaches the filesystem; only its extension survives,
// and only after it passed the allow list.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType := strings.ToLower(fh.Header.Get("Content-Type"))

	if !allowedTypes[contentType] || !allowedExts[ext] {
		return "", domain.NewError(domain.KindUnsupportedMedia, "only .png, .jpg and .jpeg files are allowed")
	}
	if fh.Size > s.maxSize {
		return "", domain.NewError(domain.KindTooLarge, "profile picture exceeds the 5 MiB limit")
	}

	src, err := fh.Open()
	if err != nil {
		return "", domain.WrapError(domain.KindInternal, "failed to open uploaded file", err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", domain.WrapError(domain.KindInternal, "failed to store uploaded file", err)
	}
	defer dst.Close()

	// The size header is client-declared; cap the copy as well so an
	// oversized body cannot sneak past it.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		os.Remove(dst.Name())
		return "", domain.WrapError(domain.KindInternal, "failed to write uploaded file", err)
	}
	if n > s.maxSize {
		os.Remove(dst.Name())
		return "", domain.NewError(domain.KindTooLarge, "profile picture exceeds the 5 MiB limit")
	}

	return "/uploads/" + name, nil
}
