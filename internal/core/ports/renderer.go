package ports

// EnvTemplates holds the raw environment-template blobs stored in a lockfile.
type EnvTemplates struct {
	DockerHead    string
	DockerTail    string
	DockerCompose string
}

// EnvFiles is the rendered environment-setup output.
type EnvFiles struct {
	Dockerfile    string
	DockerCompose string
}

// EnvRenderer renders environment-setup files from template blobs and the
// final dependency name list.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type EnvRenderer interface {
	// Templates returns the template blobs shipped with the tool, for
	// embedding into a lockfile at snapshot time.
	Templates() EnvTemplates

	// InstallScript returns the installer helper script placed next to the
	// package artifacts.
	InstallScript() []byte

	// Render produces the environment files for the given dependency names,
	// mounted under checkoutDir.
	Render(tmpl EnvTemplates, depNames []string, checkoutDir string) EnvFiles
}
