package ports

// Archiver packs a directory tree into a single compressed file and back.
//
//go:generate mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// Create archives the tree rooted at srcDir into the file at archivePath,
	// overwriting any pre-existing file of the same name.
	Create(srcDir, archivePath string) error

	// Unpack extracts the archive at archivePath into destDir, creating it.
	Unpack(archivePath, destDir string) error
}
