package upload

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
)

const (
	DefaultMaxFiles  = 10
	DefaultMaxWidth  = 1200
	DefaultMaxMemory = 32 << 20 // 32MB
)

var (
	ErrTooManyFiles    = errors.New("too many files")
	ErrUnsupportedType = errors.New("unsupported image format, only png, jpg and jpeg are allowed")
	ErrInvalidImage    = errors.New("failed to decode image")
	ErrInvalidForm     = errors.New("invalid multipart form")
)

// Store saves uploaded images to Dir. Images wider than MaxWidth are
// scaled down, keeping the aspect ratio.
type Store struct {
	Dir       string
	MaxFiles  int
	MaxWidth  uint
	MaxMemory int64
	now       func() time.Time
}

func NewStore(dir string) *Store {
	return &Store{
		Dir:       dir,
		MaxFiles:  DefaultMaxFiles,
		MaxWidth:  DefaultMaxWidth,
		MaxMemory: DefaultMaxMemory,
		now:       time.Now,
	}
}

// SaveImages stores every file under field and returns the generated file
// names, "<RFC3339 time>_<original name>". No files is not an error. On
// failure nothing is left on disk.
func (s *Store) SaveImages(r *http.Request, field string) ([]string, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(s.MaxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	}

	headers := r.MultipartForm.File[field]
	if len(headers) > s.MaxFiles {
		return nil, ErrTooManyFiles
	}
	for _, h := range headers {
		if !supported(h.Filename) {
			return nil, ErrUnsupportedType
		}
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	names := make([]string, 0, len(headers))
	for _, h := range headers {
		name := stamp + "_" + cleanName(h.Filename)
		if err := s.save(h, filepath.Join(s.Dir, name)); err != nil {
			s.remove(names)
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) save(h *multipart.FileHeader, dst string) error {
	file, err := h.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(h.Filename))

	var img image.Image
	if ext == ".png" {
		img, err = png.Decode(file)
	} else {
		img, err = jpeg.Decode(file)
	}
	if err != nil {
		return ErrInvalidImage
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if uint(img.Bounds().Dx()) <= s.MaxWidth {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return err
		}
		_, err = io.Copy(out, file)
		return err
	}

	resized := resize.Resize(s.MaxWidth, 0, img, resize.Lanczos3)
	if ext == ".png" {
		return png.Encode(out, resized)
	}
	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}

func (s *Store) remove(names []string) {
	for _, n := range names {
		_ = os.Remove(filepath.Join(s.Dir, n))
	}
}

func supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func cleanName(filename string) string {
	return strings.ReplaceAll(filepath.Base(filename), " ", "_")
}
