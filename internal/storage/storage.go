package storage

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"unicode"

	"filevault/internal/models"

	"golang.org/x/text/unicode/norm"
)

// MaxNameBytes is the longest sanitized name accepted, a common filesystem limit.
const MaxNameBytes = 255

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

// FileStore is a flat storage area addressed by sanitized names only.
type FileStore interface {
	List(ctx context.Context) ([]models.FileInfo, error)
	Save(ctx context.Context, name string, data io.Reader) (int64, error)
	Load(ctx context.Context, name string) (*File, error)
}

// File is an open stored file. Callers must Close it.
type File struct {
	io.ReadCloser
	Name string
	Size int64
}

var (
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	pathSeparator = strings.NewReplacer("/", " ", `\`, " ")

	reservedNames = map[string]bool{
		"CON": true, "PRN": true, "AUX": true, "NUL": true,
		"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
		"COM6": true, "COM7": true, "COM8": true, "COM9": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
		"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
	}
)

// SanitizeName reduces raw to a single flat ASCII name made of letters,
// digits, '_', '.' and '-'. Separators become '_', so "../etc/passwd" turns
// into "etc_passwd". Control bytes, empty results and over-long names are
// rejected with ErrInvalidName. The result never starts with '.', which keeps
// it clear of "..", hidden files and in-progress uploads.
func SanitizeName(raw string) (string, error) {
	for _, r := range raw {
		if unicode.IsControl(r) {
			return "", ErrInvalidName
		}
	}

	name := norm.NFKD.String(raw)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, name)

	name = pathSeparator.Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name == "" {
		return "", ErrInvalidName
	}

	base, _, _ := strings.Cut(name, ".")
	if reservedNames[strings.ToUpper(base)] {
		name = "_" + name
	}

	if len(name) > MaxNameBytes {
		return "", ErrInvalidName
	}

	return name, nil
}

// checkName accepts only names that are already in sanitized form.
func checkName(name string) error {
	safe, err := SanitizeName(name)
	if err != nil || safe != name {
		return ErrInvalidName
	}
	return nil
}
