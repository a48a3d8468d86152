package filemgr

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"rasoi/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var ErrUnsupportedImage = errors.New("unsupported image file")

const thumbWidth = 320

// uploadDir is a var so tests can point it at a temp dir.
var uploadDir = "./static/uploads"

// SaveImage validates and stores an uploaded recipe picture, writes a
// thumbnail next to it, and returns the URI the recipe record references.
// The raw bytes are not held anywhere beyond the files written here.
func SaveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !utils.ValidImageFileType(header) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, header.Header.Get("Content-Type"))
	}

	img, err := imaging.Decode(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if err := utils.EnsureDir(filepath.Join(uploadDir, "thumb")); err != nil {
		return "", err
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	// Store the original bytes untouched; only the thumbnail is re-encoded.
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	// Thumbnail keeps the original's base name so clients can derive it.
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(uploadDir, "thumb", strings.TrimSuffix(name, ext)+".jpg")
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}
