// Package bundle распаковывает и собирает zip-архивы с исходным кодом.
// Пути внутри архива проверяются на выход за пределы корня архива.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// File один файл внутри архива: относительный путь и содержимое.
type File struct {
	Path string
	Data []byte
}

// Unpack читает zip-архив в память. Каталоги пропускаются,
// записи с абсолютными путями или ".." отклоняются целиком.
func Unpack(archive []byte) ([]File, error) {
	const op = "bundle.Unpack"

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var files []File
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		cleaned := path.Clean(entry.Name)
		if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			return nil, fmt.Errorf("%s: illegal path %q in archive", op, entry.Name)
		}

		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("%s: open %s: %w", op, entry.Name, err)
		}
		data, err := io.ReadAll(rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: read %s: %w", op, entry.Name, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("%s: close %s: %w", op, entry.Name, closeErr)
		}

		files = append(files, File{Path: cleaned, Data: data})
	}
	return files, nil
}

// Pack собирает zip-архив из списка файлов, сохраняя относительные пути.
func Pack(files []File) ([]byte, error) {
	const op = "bundle.Pack"

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: create %s: %w", op, f.Path, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("%s: write %s: %w", op, f.Path, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buf.Bytes(), nil
}
