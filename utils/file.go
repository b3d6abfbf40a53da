package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// EnsureUploadDir creates the uploads directory if it doesn't exist
func EnsureUploadDir(dir string) error {
	return os.MkdirAll(dir, os.ModePerm)
}

// SaveUploadedImage validates and stores a multipart image under dir,
// returning the generated filename. The name is a fresh UUID with the
// original extension so uploads never collide or overwrite.
func SaveUploadedImage(fileHeader *multipart.FileHeader, dir string) (string, error) {
	if fileHeader.Size > maxUploadSize {
		return "", fmt.Errorf("file too large: %d bytes", fileHeader.Size)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}
