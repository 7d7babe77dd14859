package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/myhome/myhome-backend/pkg/logger"
)

var (
	ErrFileTooLarge      = errors.New("file exceeds maximum size")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// LocalStorage writes uploaded property photos to the local disk.
// Oversized images are scaled down before saving so a single listing
// cannot fill the volume with raw camera output.
type LocalStorage struct {
	basePath    string
	maxFileSize int64
	maxWidth    int
	maxHeight   int
}

func NewLocalStorage(basePath string, maxFileSize int64, maxWidth, maxHeight int) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		basePath:    basePath,
		maxFileSize: maxFileSize,
		maxWidth:    maxWidth,
		maxHeight:   maxHeight,
	}, nil
}

// Save stores an uploaded image and returns its public URL path.
func (s *LocalStorage) Save(reader io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedFormat
	}

	// LimitReader로 한도 초과 여부를 한 번에 판정
	data, err := io.ReadAll(io.LimitReader(reader, s.maxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxFileSize {
		return "", ErrFileTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnsupportedFormat
	}

	img = s.fitToBounds(img)

	name := uuid.New().String() + ext
	path := filepath.Join(s.basePath, name)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	switch format {
	case "jpeg":
		err = jpeg.Encode(out, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(out, img)
	case "gif":
		err = gif.Encode(out, img, nil)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	logger.Debug("Image saved to local storage", map[string]interface{}{
		"filename": name,
		"size":     len(data),
		"format":   format,
	})

	return "/uploads/" + name, nil
}

// fitToBounds scales the image down to the configured bounds while
// keeping the aspect ratio. Images already within bounds pass through.
func (s *LocalStorage) fitToBounds(img image.Image) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= s.maxWidth && height <= s.maxHeight {
		return img
	}

	scaleW := float64(s.maxWidth) / float64(width)
	scaleH := float64(s.maxHeight) / float64(height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	newW := int(float64(width) * scale)
	newH := int(float64(height) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Delete removes a stored file by its public URL path. Unknown paths
// are ignored.
func (s *LocalStorage) Delete(fileURL string) error {
	name := filepath.Base(fileURL)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	path := filepath.Join(s.basePath, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
