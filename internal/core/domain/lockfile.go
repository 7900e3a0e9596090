package domain

import (
	"encoding/json"
	"slices"

	"go.trai.ch/zerr"
)

// Lockfile is the machine-generated, fully pinned snapshot of an environment.
// It is created during a snapshot run, persisted into the archive, and
// consumed read-only by checkout; checkout never writes back into it.
type Lockfile struct {
	// Name is the environment name taken from the manifest.
	Name string `json:"name"`

	// Deps maps dependency names to their records. The key is the dependency
	// name as a string for serialization compatibility.
	Deps map[string]DepRecord `json:"deps,omitempty"`

	// Spack is the embedded package-manager lockfile, copied verbatim.
	Spack json.RawMessage `json:"spack,omitempty"`

	// Apt is the folded result of the OS package closure, if one was built.
	Apt *AptBundle `json:"apt,omitempty"`

	// DockerHead, DockerTail and DockerCompose are environment-template
	// blobs stored verbatim so checkout can regenerate the files without
	// access to the original templates.
	DockerHead    string `json:"dockerhead,omitempty"`
	DockerTail    string `json:"dockertail,omitempty"`
	DockerCompose string `json:"docker-compose,omitempty"`
}

// DepRecord describes one dependency inside a lockfile. A record is either a
// copy record (Copy true, no commit data) or a pinned record (Filepath and
// Hash set, Copy false); it must never carry both semantics at once.
type DepRecord struct {
	Filepath string `json:"filepath,omitempty"`
	Hash     string `json:"hash,omitempty"`
	URL      string `json:"url,omitempty"`
	Copy     bool   `json:"copy"`
}

// NewCopyRecord returns a record for a dependency embedded verbatim in the archive.
func NewCopyRecord() DepRecord {
	return DepRecord{Copy: true}
}

// NewPinnedRecord returns a record referencing a specific commit.
func NewPinnedRecord(filepath, hash, url string) DepRecord {
	return DepRecord{Filepath: filepath, Hash: hash, URL: url}
}

// Validate rejects records that mix copy and pinned semantics.
func (r DepRecord) Validate() error {
	if r.Copy {
		if r.Hash != "" || r.Filepath != "" {
			return zerr.With(zerr.New("copy record must not carry commit data"), "hash", r.Hash)
		}
		return nil
	}
	if r.Filepath == "" {
		return zerr.New("pinned record missing filepath")
	}
	if r.Hash == "" {
		return zerr.With(zerr.New("pinned record missing commit hash"), "filepath", r.Filepath)
	}
	return nil
}

// AptBundle records where the repacked package artifacts live and which
// packages could not be repacked. The failure list is surfaced to the
// operator so missing packages can be supplied by hand.
type AptBundle struct {
	// Folder is the artifact directory inside the archive.
	Folder string `json:"folder"`

	// Errors lists the packages that could not be repacked.
	Errors []RepackFailure `json:"errors"`

	// Checksums maps artifact filenames to their xxhash64 digests.
	Checksums map[string]string `json:"checksums,omitempty"`
}

// RepackFailure is a (package, error-text) pair. It serializes as a
// two-element array to keep the lockfile format stable.
type RepackFailure struct {
	Package string
	Reason  string
}

// MarshalJSON implements json.Marshaler.
func (f RepackFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{f.Package, f.Reason})
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *RepackFailure) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return zerr.Wrap(err, "malformed repack failure entry")
	}
	f.Package, f.Reason = pair[0], pair[1]
	return nil
}

// DepNames returns the dependency names in deterministic (sorted) order.
func (l *Lockfile) DepNames() []string {
	names := make([]string, 0, len(l.Deps))
	for name := range l.Deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
