package domain

// Well-known names inside an archive. Snapshot writes them into the staging
// directory; checkout finds them after unpacking.
const (
	// LockfileName is the serialized lockfile inside the archive.
	LockfileName = "ugle.lock"

	// EmbeddedManifestName is the copy of the original manifest inside the
	// archive. Checkout uses it as a source of alternate dependency paths
	// when trees have moved since the snapshot was taken.
	EmbeddedManifestName = "ugle.yaml"

	// AptFolderName is the artifact directory inside the archive.
	AptFolderName = "apt"

	// SpackLockName is the package-manager lockfile re-emitted at checkout.
	SpackLockName = "spack.lock"

	// InstallScriptName is the installer helper placed in the apt folder.
	InstallScriptName = "install.sh"

	// DockerfileName and ComposeName are the regenerated environment files.
	DockerfileName = "Dockerfile"
	ComposeName    = "docker-compose.yaml"
)
