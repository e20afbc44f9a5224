// Package storage keeps uploaded submission archives.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("invalid file name")

// Store persists archives under flat names produced by ArchiveName.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// PublicPrefix is the URL prefix archives are served under and the prefix
// stored in a submission's file path.
const PublicPrefix = "uploads"

var archiveTypes = map[string]string{
	".zip": "application/zip",
	".rar": "application/vnd.rar",
	".7z":  "application/x-7z-compressed",
}

// IsArchive reports whether filename has an accepted archive extension.
func IsArchive(filename string) bool {
	_, ok := archiveTypes[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// ContentType returns the MIME type for a stored archive name.
func ContentType(name string) string {
	if ct, ok := archiveTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ArchiveName builds the stored name for an upload of original at time now.
func ArchiveName(original string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("file-%d-%s%s", now.UnixMilli(), suffix, strings.ToLower(filepath.Ext(original)))
}

// PublicPath is the path recorded on a submission for a stored name.
func PublicPath(name string) string {
	return PublicPrefix + "/" + name
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
