package files

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/internship-portal/internal/errors"
	"github.com/rs/zerolog/log"
)

type Kind string

const (
	KindResume Kind = "resumes"
	KindIDCard Kind = "id_cards"
)

// MediaPrefix is the URL path uploads are served under
const MediaPrefix = "/media/"

// Store keeps uploaded PDFs on local disk under <root>/media/<kind>/<uuid>.pdf.
// Stored names are relative to the media directory, e.g. "resumes/<uuid>.pdf".
type Store struct {
	mediaDir string
	maxSize  int64
}

func NewStore(root string, maxSize int64) (*Store, error) {
	mediaDir := filepath.Join(root, "media")
	for _, kind := range []Kind{KindResume, KindIDCard} {
		if err := os.MkdirAll(filepath.Join(mediaDir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir: %w", err)
		}
	}
	return &Store{mediaDir: mediaDir, maxSize: maxSize}, nil
}

// Save writes the upload and returns its stored name. Files not named *.pdf or
// larger than the store limit are rejected and nothing is kept on disk.
func (s *Store) Save(kind Kind, originalName string, r io.Reader) (string, error) {
	if !strings.EqualFold(filepath.Ext(originalName), ".pdf") {
		return "", apperrors.Wrapf(apperrors.ErrNotPDF, "%s", originalName)
	}

	name := path.Join(string(kind), uuid.NewString()+".pdf")
	full := filepath.Join(s.mediaDir, filepath.FromSlash(name))

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(r, s.maxSize+1))
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		s.discard(full)
		return "", fmt.Errorf("write upload: %w", copyErr)
	case closeErr != nil:
		s.discard(full)
		return "", fmt.Errorf("close upload: %w", closeErr)
	case n > s.maxSize:
		s.discard(full)
		return "", apperrors.Wrapf(apperrors.ErrFileTooLarge, "max %d bytes", s.maxSize)
	}
	return name, nil
}

// Open returns the stored file for reading. Names that escape the media
// directory are reported as not found.
func (s *Store) Open(name string) (*os.File, error) {
	clean := path.Clean("/" + name)[1:]
	if clean == "" || clean != name {
		return nil, apperrors.ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.mediaDir, filepath.FromSlash(clean)))
	if os.IsNotExist(err) {
		return nil, apperrors.ErrNotFound
	}
	return f, err
}

func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.mediaDir, filepath.FromSlash(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Store) discard(full string) {
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", full).Msg("failed to remove rejected upload")
	}
}

// URL resolves a stored name to an absolute URL; empty names resolve to nil
func URL(baseURL, name string) *string {
	if name == "" {
		return nil
	}
	u := strings.TrimRight(baseURL, "/") + MediaPrefix + name
	return &u
}
