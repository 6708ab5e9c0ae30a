package git

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testTimeout = 30 * time.Second

// testRepo provides a temporary git repository for integration tests.
type testRepo struct {
	Git     *GitCli
	rootDir string
	t       *testing.T
}

// newTestRepo creates an initialized git repository in a temp directory.
func newTestRepo(t *testing.T) *testRepo {
	t.Helper()

	dir := t.TempDir()

	runGit(t, dir, "init", "-b", "main")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	return &testRepo{
		Git:     New(false, dir, testTimeout).(*GitCli),
		rootDir: dir,
		t:       t,
	}
}

// commit creates a new commit and returns the short SHA.
func (r *testRepo) commit(message string) string {
	r.t.Helper()
	filename := filepath.Join(r.rootDir, "file.txt")
	appendToFile(r.t, filename, message+"\n")
	runGit(r.t, r.rootDir, "add", "-A")
	runGit(r.t, r.rootDir, "commit", "-m", message)
	return r.shortSHA("HEAD")
}

// writeFile writes content to a file in the repo without staging it.
func (r *testRepo) writeFile(name, content string) {
	r.t.Helper()
	require.NoError(r.t, os.WriteFile(filepath.Join(r.rootDir, name), []byte(content), 0644))
}

// shortSHA returns the short SHA for a ref.
func (r *testRepo) shortSHA(ref string) string {
	r.t.Helper()
	return strings.TrimSpace(runGit(r.t, r.rootDir, "rev-parse", "--short", ref))
}

// currentBranch returns the checked out branch name.
func (r *testRepo) currentBranch() string {
	r.t.Helper()
	return strings.TrimSpace(runGit(r.t, r.rootDir, "rev-parse", "--abbrev-ref", "HEAD"))
}

// lastCommitMessage returns the full message of the last commit.
func (r *testRepo) lastCommitMessage() string {
	r.t.Helper()
	return runGit(r.t, r.rootDir, "log", "-1", "--format=%B")
}

// addRemote adds a local bare clone as a remote and sets up tracking.
func (r *testRepo) addRemote(name string) string {
	r.t.Helper()
	remoteDir := filepath.Join(r.t.TempDir(), name+".git")
	runGit(r.t, r.rootDir, "clone", "--bare", r.rootDir, remoteDir)
	runGit(r.t, r.rootDir, "remote", "add", name, remoteDir)
	runGit(r.t, r.rootDir, "fetch", name)
	runGit(r.t, r.rootDir, "branch", "--set-upstream-to="+name+"/main", "main")
	return remoteDir
}

// runGit executes a git command and returns stdout.
func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	require.NoError(t, err, "git %v failed: %s", args, stderr.String())
	return stdout.String()
}

// appendToFile appends content to a file, creating it if necessary.
func appendToFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	_, err = f.WriteString(content)
	require.NoError(t, err)
}
