package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

func SaveFile(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	filename := fmt.Sprintf("%s%s", GenerateRandomString(12), filepath.Ext(header.Filename))
	filePath := fmt.Sprintf("%s/%s", folder, filename)

	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return "", err
	}

	return filename, nil
}

// CreateThumb writes a width-bound thumbnail next to the original,
// named <name>_thumb<ext>.
func CreateThumb(folder, filename string, width int) error {
	src, err := imaging.Open(filepath.Join(folder, filename))
	if err != nil {
		return err
	}

	thumb := imaging.Resize(src, width, 0, imaging.Lanczos)

	ext := filepath.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	return imaging.Save(thumb, filepath.Join(folder, base+"_thumb"+ext))
}
