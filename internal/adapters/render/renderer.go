// Package render produces environment-setup files (container build
// descriptors) from template blobs and the dependency name list.
package render

import (
	_ "embed"
	"path/filepath"
	"strings"

	"go.trai.ch/ugle/internal/core/ports"
)

var (
	//go:embed exports/Dockerfile-head.txt
	dockerHead string

	//go:embed exports/Dockerfile-tail.txt
	dockerTail string

	//go:embed exports/docker-compose.yaml
	dockerCompose string

	//go:embed exports/install.sh
	installScript []byte
)

var _ ports.EnvRenderer = (*Renderer)(nil)

// Renderer implements ports.EnvRenderer from templates shipped with the tool.
// The blobs are stored verbatim in the lockfile at snapshot time so checkout
// renders with the templates that were current when the snapshot was taken.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Templates returns the blobs shipped with this build of the tool.
func (r *Renderer) Templates() ports.EnvTemplates {
	return ports.EnvTemplates{
		DockerHead:    dockerHead,
		DockerTail:    dockerTail,
		DockerCompose: dockerCompose,
	}
}

// InstallScript returns the installer helper placed next to the package
// artifacts.
func (r *Renderer) InstallScript() []byte {
	return installScript
}

// Render assembles the Dockerfile and docker-compose file. Each dependency
// becomes a volume mounted under /home/Code inside the container.
func (r *Renderer) Render(tmpl ports.EnvTemplates, depNames []string, checkoutDir string) ports.EnvFiles {
	if len(depNames) == 0 {
		return ports.EnvFiles{
			Dockerfile:    tmpl.DockerHead + tmpl.DockerTail,
			DockerCompose: tmpl.DockerCompose,
		}
	}

	volumes := make([]string, 0, len(depNames))
	mounts := []string{"    volumes:"}
	for _, name := range depNames {
		path := filepath.Join(checkoutDir, name)
		volumes = append(volumes, "VOLUME /home/Code/"+name)
		mounts = append(mounts, "      - "+path+":/home/Code/"+name)
	}

	return ports.EnvFiles{
		Dockerfile:    tmpl.DockerHead + strings.Join(volumes, "\n") + tmpl.DockerTail,
		DockerCompose: tmpl.DockerCompose + strings.Join(mounts, "\n") + "\n",
	}
}
