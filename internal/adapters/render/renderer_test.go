package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/adapters/render"
	"go.trai.ch/ugle/internal/core/ports"
)

func TestRenderer_Templates(t *testing.T) {
	tmpl := render.NewRenderer().Templates()
	assert.NotEmpty(t, tmpl.DockerHead)
	assert.NotEmpty(t, tmpl.DockerTail)
	assert.NotEmpty(t, tmpl.DockerCompose)
}

func TestRenderer_InstallScript(t *testing.T) {
	script := string(render.NewRenderer().InstallScript())
	require.NotEmpty(t, script)
	assert.True(t, strings.HasPrefix(script, "#!"), "install script must start with a shebang")
	assert.Contains(t, script, "deps.txt")
}

func TestRenderer_Render_NoDeps(t *testing.T) {
	tmpl := ports.EnvTemplates{
		DockerHead:    "HEAD\n",
		DockerTail:    "TAIL\n",
		DockerCompose: "services: {}\n",
	}

	files := render.NewRenderer().Render(tmpl, nil, "/checkout")
	assert.Equal(t, "HEAD\nTAIL\n", files.Dockerfile)
	assert.Equal(t, "services: {}\n", files.DockerCompose)
}

func TestRenderer_Render_MountsEveryDep(t *testing.T) {
	tmpl := ports.EnvTemplates{
		DockerHead:    "HEAD\n",
		DockerTail:    "\nTAIL\n",
		DockerCompose: "services:\n  dev:\n    build: .\n",
	}

	files := render.NewRenderer().Render(tmpl, []string{"mylib", "data"}, "/checkout")

	assert.Contains(t, files.Dockerfile, "VOLUME /home/Code/mylib")
	assert.Contains(t, files.Dockerfile, "VOLUME /home/Code/data")
	assert.True(t, strings.HasPrefix(files.Dockerfile, "HEAD\n"))
	assert.True(t, strings.HasSuffix(files.Dockerfile, "TAIL\n"))

	assert.Contains(t, files.DockerCompose, "    volumes:")
	assert.Contains(t, files.DockerCompose, "      - /checkout/mylib:/home/Code/mylib")
	assert.Contains(t, files.DockerCompose, "      - /checkout/data:/home/Code/data")
}
