// Package static embeds static files into the binary and copies them to the
// data directory
package static

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/readtime/internal/osutil"
	"github.com/ayoisaiah/readtime/internal/pathutil"
)

const (
	filesDir = "files"

	// IconFile is the notification icon, relative to the data directory.
	IconFile = "icon.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files into the data directory. Files that
// already exist are left alone.
func Install() error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(p)
			if err != nil {
				return err
			}

			// embedded paths always use forward slashes
			stripped := strings.TrimPrefix(p, filesDir+"/")

			destPath, err := xdg.DataFile(
				filepath.Join(pathutil.Dir(), filepath.FromSlash(stripped)),
			)
			if err != nil {
				return err
			}

			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, 0o644); err != nil {
					return err
				}
			}

			return nil
		},
	)
}

// IconPath returns the installed notification icon, or "" if it is missing.
func IconPath() string {
	p, err := xdg.SearchDataFile(path.Join(pathutil.Dir(), IconFile))
	if err != nil {
		return ""
	}

	return p
}
