package git_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ugle/internal/adapters/git"
	"go.trai.ch/ugle/internal/core/domain"
	"go.trai.ch/ugle/internal/core/ports"
	"go.trai.ch/ugle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestClient_CommitExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), ports.Command{
			Name: "git",
			Args: []string{"cat-file", "-e", "deadbeef^{commit}"},
			Dir:  "/repo",
		}).
		Return(ports.RunResult{ExitCode: 0}, nil)

	exists, err := client.CommitExists(context.Background(), "/repo", "deadbeef")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClient_CommitExists_Absent(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	// A non-zero exit means the object is absent, not that git failed.
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{ExitCode: 1, Stderr: "fatal: Not a valid object name"}, nil)

	exists, err := client.CommitExists(context.Background(), "/repo", "deadbeef")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_Head(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), ports.Command{
			Name: "git",
			Args: []string{"rev-parse", "HEAD"},
			Dir:  "/repo",
		}).
		Return(ports.RunResult{Stdout: "deadbeef\n"}, nil)

	hash, err := client.Head(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", hash)
}

func TestClient_RemoteURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	output := "origin\tgit@example.com:lib.git (fetch)\n" +
		"origin\tgit@example.com:lib.git (push)\n" +
		"upstream\tgit@example.com:other.git (push)\n"
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{Stdout: output}, nil)

	url, err := client.RemoteURL(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, "git@example.com:lib.git", url)
}

func TestClient_RemoteURL_NoRemote(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{Stdout: ""}, nil)

	url, err := client.RemoteURL(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestClient_Status_TrackedOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), ports.Command{
			Name: "git",
			Args: []string{"status", "--porcelain", "--untracked-files=no"},
			Dir:  "/repo",
		}).
		Return(ports.RunResult{Stdout: " M main.go\n"}, nil)

	status, err := client.Status(context.Background(), "/repo", true)
	require.NoError(t, err)
	assert.Equal(t, " M main.go\n", status)
}

func TestClient_NonZeroExitIsToolFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{ExitCode: 128, Stderr: "fatal: not a git repository"}, nil)

	_, err := client.Head(context.Background(), "/not-a-repo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrToolFailed))
}

func TestClient_Clone(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), ports.Command{
			Name: "git",
			Args: []string{"clone", "git@example.com:lib.git", "/dest/lib"},
		}).
		Return(ports.RunResult{}, nil)

	require.NoError(t, client.Clone(context.Background(), "git@example.com:lib.git", "/dest/lib"))
}

func TestClient_ResetHard(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockRunner(ctrl)
	client := git.NewClient(runner)

	runner.EXPECT().
		Run(gomock.Any(), ports.Command{
			Name: "git",
			Args: []string{"reset", "--hard", "HEAD"},
			Dir:  "/repo",
		}).
		Return(ports.RunResult{}, nil)

	require.NoError(t, client.ResetHard(context.Background(), "/repo"))
}
