package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/meysamhadeli/doctrans/translator/models"
	"github.com/meysamhadeli/doctrans/utils"
)

// diffFilter keeps added, copied and modified files; deletions and the
// deleted side of renames never reach the coordinator.
const diffFilter = "ACM"

// GitChangeLog lists changed content files from the git history of a branch
type GitChangeLog struct {
	git    *utils.GitOperations
	remote string
	branch string
	fetch  bool
}

// NewGitChangeLog reads the history of branch. When fetch is set, the
// remote-tracking branch is updated before every query and the log is read
// from it instead of the local branch.
func NewGitChangeLog(git *utils.GitOperations, remote, branch string, fetch bool) *GitChangeLog {
	return &GitChangeLog{git: git, remote: remote, branch: branch, fetch: fetch}
}

// ChangedFiles returns one record per distinct path, in first-seen order.
func (g *GitChangeLog) ChangedFiles(ctx context.Context, query models.ChangeLogQuery) ([]models.ChangeRecord, error) {
	ref := g.branch
	if g.fetch {
		if err := g.git.Fetch(ctx, g.remote, g.branch); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrChangeLogUnavailable, err)
		}
		ref = utils.RemoteTrackingRef(g.remote, g.branch)
	}
	output, err := g.git.LogNameStatus(ctx, ref, query.Since, diffFilter, query.Paths)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChangeLogUnavailable, err)
	}
	return ParseNameStatus(output), nil
}

// ParseNameStatus turns `git log --name-status -z` output into change
// records. Each entry is a status token followed by one path, or two for
// copies and renames, in which case the destination is kept. Newlines git
// places between commits are ignored and a path seen twice keeps its first
// record.
func ParseNameStatus(output string) []models.ChangeRecord {
	var records []models.ChangeRecord
	seen := make(map[string]struct{})
	tokens := strings.Split(output, "\x00")
	for i := 0; i < len(tokens); i++ {
		code := strings.Trim(tokens[i], "\n")
		if !isStatusCode(code) {
			continue
		}
		paths := 1
		if code[0] == 'C' || code[0] == 'R' {
			paths = 2
		}
		if i+paths >= len(tokens) {
			break
		}
		i += paths
		path := strings.Trim(tokens[i], "\n")
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		records = append(records, models.ChangeRecord{Path: path, Status: models.ChangeStatus(code[:1])})
	}
	return records
}

// isStatusCode matches a name-status letter with an optional similarity score
func isStatusCode(s string) bool {
	if s == "" || !strings.ContainsRune("ACDMRTUXB", rune(s[0])) {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
