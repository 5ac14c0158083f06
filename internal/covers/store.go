package covers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Dir is the media subdirectory holding cover images. Stored references are
// relative to the media root and always start with it.
const Dir = "covers"

var (
	ErrNotImage   = errors.New("cover is not an image")
	ErrInvalidRef = errors.New("invalid cover reference")

	unsafeStemChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// Store keeps uploaded cover images below a media directory.
type Store struct {
	mediaDir   string
	httpClient *http.Client
}

// NewStore creates the covers directory below mediaDir if needed.
func NewStore(mediaDir string, fetchTimeout time.Duration) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(mediaDir, Dir), 0755); err != nil {
		return nil, fmt.Errorf("create covers dir: %w", err)
	}

	return &Store{
		mediaDir: mediaDir,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
	}, nil
}

// Import copies a cover from a local file or an http(s) URL into the store
// and returns its reference, e.g. "covers/the_hobbit_1a2b3c4d.jpg".
func (s *Store) Import(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", nil
	}

	var (
		body io.ReadCloser
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = s.fetch(ctx, source)
	} else {
		body, err = os.Open(source)
	}
	if err != nil {
		return "", err
	}
	defer body.Close()

	return s.save(coverStem(source), body)
}

// Path resolves a reference to a file path inside the media directory.
func (s *Store) Path(ref string) (string, error) {
	clean := path.Clean(ref)
	if path.IsAbs(clean) || path.Dir(clean) != Dir {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(s.mediaDir, filepath.FromSlash(clean)), nil
}

// Remove deletes a stored cover. Missing files are not an error.
func (s *Store) Remove(ref string) error {
	p, err := s.Path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Orphans lists references of stored covers that are not in referenced.
func (s *Store) Orphans(referenced []string) ([]string, error) {
	keep := make(map[string]struct{}, len(referenced))
	for _, ref := range referenced {
		keep[path.Clean(ref)] = struct{}{}
	}

	entries, err := os.ReadDir(filepath.Join(s.mediaDir, Dir))
	if err != nil {
		return nil, err
	}

	var orphans []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "cover_tmp_") {
			continue
		}
		ref := path.Join(Dir, e.Name())
		if _, ok := keep[ref]; !ok {
			orphans = append(orphans, ref)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}

// MediaDir returns the media root directory.
func (s *Store) MediaDir() string {
	return s.mediaDir
}

func (s *Store) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "BookCollection/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch cover: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// save writes src to a temp file, checks it is an image and renames it to
// <stem>_<hash><ext>.
func (s *Store) save(stem string, src io.Reader) (string, error) {
	dir := filepath.Join(s.mediaDir, Dir)

	// Create temp file in same directory for atomic write
	tmpFile, err := os.CreateTemp(dir, "cover_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tmpFile, hash), src); err != nil {
		return "", err
	}
	tmpFile.Close()

	mtype, err := mimetype.DetectFile(tmpPath)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}

	name := fmt.Sprintf("%s_%s%s", stem, hex.EncodeToString(hash.Sum(nil))[:8], mtype.Extension())
	if err := os.Rename(tmpPath, filepath.Join(dir, name)); err != nil {
		return "", err
	}
	return path.Join(Dir, name), nil
}

// coverStem derives a filesystem-safe name from the last path element of
// source without its extension.
func coverStem(source string) string {
	base := source
	if i := strings.IndexAny(base, "?#"); i >= 0 && strings.Contains(source, "://") {
		base = base[:i]
	}
	base = path.Base(filepath.ToSlash(base))
	base = strings.TrimSuffix(base, path.Ext(base))

	stem := strings.Trim(unsafeStemChars.ReplaceAllString(base, "_"), "._-")
	if len(stem) > 60 {
		stem = stem[:60]
	}
	if stem == "" {
		stem = "cover"
	}
	return strings.ToLower(stem)
}
