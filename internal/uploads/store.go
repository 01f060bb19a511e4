package uploads

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

type Kind string

const (
	KindCertificationImage Kind = "cert_image"
	KindResume             Kind = "resume"
)

const (
	ResumeFilename = "resume.pdf"

	// random name length in hex characters
	randomNameLen = 16
)

var (
	ErrNoFile         = errors.New("no file selected")
	ErrDisallowedType = errors.New("file type not allowed")
	ErrUnknownKind    = errors.New("unknown upload kind")
	ErrResumeNotFound = errors.New("resume not found")
)

var certImageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// Store persists admin uploads below a root directory:
//
//	<root>/uploads/certs/<random>.<ext>
//	<root>/resume/resume.pdf
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) CertificationDir() string {
	return filepath.Join(s.root, "uploads", "certs")
}

func (s *Store) ResumeDir() string {
	return filepath.Join(s.root, "resume")
}

func (s *Store) ResumePath() string {
	return filepath.Join(s.ResumeDir(), ResumeFilename)
}

// EnsureDirs creates every upload directory. Safe to call repeatedly.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.CertificationDir(), s.ResumeDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return nil
}

// Validate checks a client filename against the rules for kind without touching disk.
func Validate(filename string, kind Kind) error {
	if strings.TrimSpace(filename) == "" {
		return ErrNoFile
	}

	ext := strings.ToLower(filepath.Ext(filename))

	switch kind {
	case KindCertificationImage:
		if _, ok := certImageExtensions[ext]; !ok {
			return fmt.Errorf("%w: %q is not one of png, jpg, jpeg, gif", ErrDisallowedType, ext)
		}
	case KindResume:
		if ext != ".pdf" {
			return fmt.Errorf("%w: resume must be a .pdf", ErrDisallowedType)
		}
	default:
		return ErrUnknownKind
	}

	return nil
}

// Save validates and writes fh, returning the stored filename (not the full path).
// Certification images get a random hex name keeping the lowercased extension;
// the resume is always resume.pdf and replaces the previous one.
func (s *Store) Save(fh *multipart.FileHeader, kind Kind) (string, error) {
	if fh == nil {
		return "", ErrNoFile
	}

	err := Validate(fh.Filename, kind)

	if err != nil {
		return "", err
	}

	src, err := fh.Open()

	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}

	defer src.Close()

	return s.write(src, fh.Filename, kind)
}

func (s *Store) write(src io.Reader, original string, kind Kind) (string, error) {
	var dir, name string

	switch kind {
	case KindCertificationImage:
		random, err := randomHex(randomNameLen / 2)
		if err != nil {
			return "", err
		}
		dir = s.CertificationDir()
		name = random + strings.ToLower(filepath.Ext(original))
	case KindResume:
		dir = s.ResumeDir()
		name = ResumeFilename
	default:
		return "", ErrUnknownKind
	}

	err := os.MkdirAll(dir, 0o755)

	if err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// write to a temp file in the same directory, then rename over the target
	tmp, err := os.CreateTemp(dir, ".upload-*")

	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write upload: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close upload: %w", err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("chmod upload: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("store upload: %w", err)
	}

	return name, nil
}

// RemoveCertificationImage deletes a stored certification image, used when the record insert fails.
func (s *Store) RemoveCertificationImage(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}

	err := os.Remove(filepath.Join(s.CertificationDir(), name))

	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

// Resume returns the stored resume path, or ErrResumeNotFound.
func (s *Store) Resume() (string, error) {
	path := s.ResumePath()

	info, err := os.Stat(path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrResumeNotFound
		}
		return "", err
	}

	if info.IsDir() {
		return "", ErrResumeNotFound
	}

	return path, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)

	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate filename: %w", err)
	}

	return hex.EncodeToString(b), nil
}
