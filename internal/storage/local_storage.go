package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"filevault/internal/models"

	"github.com/jaevor/go-nanoid"
)

const tempPrefix = ".upload-"

// LocalStorage keeps files directly under basePath. Every access goes through
// an os.Root, so no name can resolve outside of it.
type LocalStorage struct {
	basePath  string
	root      *os.Root
	newTempID func() string
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o750); err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage root: %w", err)
	}

	generateID, err := nanoid.Standard(21)
	if err != nil {
		root.Close()
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}

	return &LocalStorage{basePath: basePath, root: root, newTempID: generateID}, nil
}

func (ls *LocalStorage) Close() error {
	return ls.root.Close()
}

// List returns regular files sorted by name. Directories, dotfiles and
// in-progress uploads are skipped.
func (ls *LocalStorage) List(ctx context.Context) ([]models.FileInfo, error) {
	entries, err := fs.ReadDir(ls.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read storage root: %w", err)
	}

	files := make([]models.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}

		files = append(files, models.FileInfo{Name: entry.Name(), Size: info.Size()})
	}

	return files, nil
}

// Save writes data to a temporary file and renames it over name, so readers
// see either the previous content or the complete new content.
func (ls *LocalStorage) Save(ctx context.Context, name string, data io.Reader) (int64, error) {
	if err := checkName(name); err != nil {
		return 0, err
	}

	tmpName := tempPrefix + ls.newTempID() + ".part"
	file, err := ls.root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(file, data)
	if err == nil {
		err = file.Sync()
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		ls.root.Remove(tmpName)
		return 0, fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := ls.root.Rename(tmpName, name); err != nil {
		ls.root.Remove(tmpName)
		return 0, fmt.Errorf("failed to publish %s: %w", name, err)
	}

	return written, nil
}

func (ls *LocalStorage) Load(ctx context.Context, name string) (*File, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	file, err := ls.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return nil, ErrNotFound
	}

	return &File{ReadCloser: file, Name: name, Size: info.Size()}, nil
}
