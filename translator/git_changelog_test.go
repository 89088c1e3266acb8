package translator

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysamhadeli/doctrans/translator/models"
	"github.com/meysamhadeli/doctrans/utils"
)

func TestParseNameStatus(t *testing.T) {
	output := "M\x00_documentation/en/sms/intro.md\x00" +
		"A\x00_use_cases/en/new.md\x00" +
		"\nM\x00_documentation/en/sms/intro.md\x00" +
		"C75\x00_tutorials/en/old.md\x00_tutorials/en/copy.md\x00" +
		"A\x00_documentation/en/sms/café.md\x00" +
		"A\x00_documentation/en/sms/with space.md\x00" +
		"garbage\x00" +
		"M\x00M\x00"

	records := ParseNameStatus(output)
	assert.Equal(t, []models.ChangeRecord{
		{Path: "_documentation/en/sms/intro.md", Status: models.StatusModified},
		{Path: "_use_cases/en/new.md", Status: models.StatusAdded},
		{Path: "_tutorials/en/copy.md", Status: models.StatusCopied},
		{Path: "_documentation/en/sms/café.md", Status: models.StatusAdded},
		{Path: "_documentation/en/sms/with space.md", Status: models.StatusAdded},
		{Path: "M", Status: models.StatusModified},
	}, records)
}

func TestParseNameStatus_Empty(t *testing.T) {
	assert.Empty(t, ParseNameStatus(""))
	assert.Empty(t, ParseNameStatus("\n\x00\n"))
	assert.Empty(t, ParseNameStatus("M\x00"))
}

var gitTestEnv = []string{
	"GIT_AUTHOR_NAME=doctrans", "GIT_AUTHOR_EMAIL=doctrans@example.com",
	"GIT_COMMITTER_NAME=doctrans", "GIT_COMMITTER_EMAIL=doctrans@example.com",
}

func gitInDir(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-c", "commit.gpgsign=false"}, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), gitTestEnv...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func writeRepoFile(t *testing.T, dir, path, content string) {
	t.Helper()
	full := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// newGitRepo creates a repository on master with one commit
func newGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := filepath.Join(t.TempDir(), "origin")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	gitInDir(t, dir, "init", "-q")
	gitInDir(t, dir, "symbolic-ref", "HEAD", "refs/heads/master")

	writeRepoFile(t, dir, "_documentation/en/sms/intro.md", "# SMS")
	writeRepoFile(t, dir, "_use_cases/en/gone.md", "---\nproducts: [sms]\n---\n")
	writeRepoFile(t, dir, "README.md", "outside content roots")
	gitInDir(t, dir, "add", ".")
	gitInDir(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func changedPaths(records []models.ChangeRecord) []string {
	var paths []string
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	return paths
}

func TestGitChangeLog_ChangedFiles(t *testing.T) {
	dir := newGitRepo(t)
	writeRepoFile(t, dir, "_documentation/en/sms/intro.md", "# SMS v2")
	writeRepoFile(t, dir, "_documentation/en/sms/café.md", "# Café")
	gitInDir(t, dir, "add", ".")
	gitInDir(t, dir, "rm", "-q", "_use_cases/en/gone.md")
	gitInDir(t, dir, "commit", "-q", "-m", "update")

	git := utils.NewGitOperations(dir, 30*time.Second)
	require.NoError(t, git.CheckGitRepo(context.Background()))

	changeLog := NewGitChangeLog(git, "origin", "master", false)
	records, err := changeLog.ChangedFiles(context.Background(), models.ChangeLogQuery{
		Since: time.Now().Add(-24 * time.Hour),
		Paths: ContentRoots,
	})
	require.NoError(t, err)

	assert.Contains(t, records, models.ChangeRecord{Path: "_documentation/en/sms/intro.md", Status: models.StatusModified})
	assert.Contains(t, records, models.ChangeRecord{Path: "_documentation/en/sms/café.md", Status: models.StatusAdded})
	assert.ElementsMatch(t, []string{
		"_documentation/en/sms/intro.md",
		"_documentation/en/sms/café.md",
		"_use_cases/en/gone.md",
	}, changedPaths(records))

	for _, r := range records {
		_, err := os.Stat(filepath.Join(dir, r.Path))
		if r.Path != "_use_cases/en/gone.md" {
			assert.NoError(t, err, r.Path)
		}
	}
}

func TestGitChangeLog_FetchesCheckedOutBranch(t *testing.T) {
	origin := newGitRepo(t)
	clone := filepath.Join(filepath.Dir(origin), "clone")
	gitInDir(t, filepath.Dir(origin), "clone", "-q", origin, clone)

	writeRepoFile(t, origin, "_tutorials/en/new-task.md", "# New task")
	gitInDir(t, origin, "add", ".")
	gitInDir(t, origin, "commit", "-q", "-m", "remote change")

	git := utils.NewGitOperations(clone, 30*time.Second)
	changeLog := NewGitChangeLog(git, "origin", "master", true)
	records, err := changeLog.ChangedFiles(context.Background(), models.ChangeLogQuery{
		Since: time.Now().Add(-24 * time.Hour),
		Paths: ContentRoots,
	})
	require.NoError(t, err)
	assert.Contains(t, changedPaths(records), "_tutorials/en/new-task.md")

	// the checked out branch is left alone
	_, err = os.Stat(filepath.Join(clone, "_tutorials/en/new-task.md"))
	assert.True(t, os.IsNotExist(err))

	local := NewGitChangeLog(git, "origin", "master", false)
	records, err = local.ChangedFiles(context.Background(), models.ChangeLogQuery{
		Since: time.Now().Add(-24 * time.Hour),
		Paths: ContentRoots,
	})
	require.NoError(t, err)
	assert.NotContains(t, changedPaths(records), "_tutorials/en/new-task.md")
}

func TestGitChangeLog_FetchFailure(t *testing.T) {
	dir := newGitRepo(t)

	changeLog := NewGitChangeLog(utils.NewGitOperations(dir, 30*time.Second), "nowhere", "master", true)
	_, err := changeLog.ChangedFiles(context.Background(), models.ChangeLogQuery{Since: time.Now(), Paths: ContentRoots})
	assert.ErrorIs(t, err, ErrChangeLogUnavailable)
}

func TestGitChangeLog_Unavailable(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	git := utils.NewGitOperations(t.TempDir(), 10*time.Second)
	changeLog := NewGitChangeLog(git, "origin", "master", false)

	_, err := changeLog.ChangedFiles(context.Background(), models.ChangeLogQuery{Since: time.Now(), Paths: ContentRoots})
	assert.ErrorIs(t, err, ErrChangeLogUnavailable)
}
