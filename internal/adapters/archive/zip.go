// Package archive implements the archiver port on archive/zip.
package archive

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Archiver = (*ZipArchiver)(nil)

// ZipArchiver packs a directory tree into a zip file with sorted entry paths
// so the same staging tree always produces the same archive layout.
type ZipArchiver struct{}

// NewZipArchiver creates a new ZipArchiver.
func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

// Create archives the tree rooted at srcDir into archivePath, overwriting
// any pre-existing file of the same name.
func (a *ZipArchiver) Create(srcDir, archivePath string) error {
	entries, err := collectEntries(srcDir)
	if err != nil {
		return err
	}

	out, err := os.Create(archivePath) //nolint:gosec // path derives from the manifest name
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create archive"), "path", archivePath)
	}
	defer out.Close() //nolint:errcheck // double close on the success path is harmless

	w := zip.NewWriter(out)
	for _, entry := range entries {
		if err := writeEntry(w, srcDir, entry); err != nil {
			_ = w.Close()
			return err
		}
	}
	if err := w.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to finalize archive"), "path", archivePath)
	}
	return out.Close()
}

// Unpack extracts the archive at archivePath into destDir, creating it.
func (a *ZipArchiver) Unpack(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive"), "path", archivePath)
	}
	defer r.Close() //nolint:errcheck // read-only handle

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create destination"), "path", destDir)
	}

	for _, f := range r.File {
		if err := extractFile(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

type archiveEntry struct {
	relPath string
	mode    fs.FileMode
	isDir   bool
}

func collectEntries(srcDir string) ([]archiveEntry, error) {
	var entries []archiveEntry
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, archiveEntry{
			relPath: filepath.ToSlash(rel),
			mode:    info.Mode(),
			isDir:   d.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to walk staging directory"), "dir", srcDir)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].relPath < entries[j].relPath })
	return entries, nil
}

func writeEntry(w *zip.Writer, srcDir string, entry archiveEntry) error {
	header := &zip.FileHeader{
		Name:   entry.relPath,
		Method: zip.Deflate,
	}
	header.SetMode(entry.mode)

	if entry.isDir {
		header.Name += "/"
		header.Method = zip.Store
		_, err := w.CreateHeader(header)
		return err
	}

	dst, err := w.CreateHeader(header)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to add archive entry"), "entry", entry.relPath)
	}
	src, err := os.Open(filepath.Join(srcDir, filepath.FromSlash(entry.relPath))) //nolint:gosec // staging dir contents
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read staged file"), "entry", entry.relPath)
	}
	defer src.Close() //nolint:errcheck // read-only handle

	if _, err := io.Copy(dst, src); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive entry"), "entry", entry.relPath)
	}
	return nil
}

func extractFile(f *zip.File, destDir string) error {
	rel := filepath.FromSlash(f.Name)
	target := filepath.Join(destDir, rel)

	// Reject entries escaping the destination.
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return zerr.With(zerr.New("archive entry escapes destination"), "entry", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, f.Mode().Perm()|0o700)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "entry", f.Name)
	}

	src, err := f.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive entry"), "entry", f.Name)
	}
	defer src.Close() //nolint:errcheck // read-only handle

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode().Perm()) //nolint:gosec // path validated above
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create file"), "entry", f.Name)
	}
	defer dst.Close() //nolint:errcheck // closed explicitly below on success

	if _, err := io.Copy(dst, src); err != nil { //nolint:gosec // sizes bounded by local archive contents
		return zerr.With(zerr.Wrap(err, "failed to extract file"), "entry", f.Name)
	}
	return dst.Close()
}
