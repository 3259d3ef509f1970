package workflow

import "context"

// PRLookup is the external PR-metadata collaborator `list --pr` consults.
// No implementation is provided in this package (PR retrieval from a
// hosting service is out of scope); callers that want the column populated
// wire in their own implementation.
type PRLookup interface {
	Lookup(ctx context.Context, branch string) (*PRSummary, error)
}

// List enumerates worktrees (excluding the main worktree) and derives,
// for each, its mux-window and unmerged status. pr is nil when --pr was
// not requested or no lookup collaborator is configured.
func (e *Engine) List(ctx context.Context, pr PRLookup) ([]WorktreeInfo, error) {
	worktrees, err := e.Git.ListWorktrees(ctx)
	if err != nil {
		return nil, err
	}

	repoRoot, err := e.Git.RepoRoot(ctx)
	if err != nil {
		return nil, err
	}

	mainBranch := e.Config.MainBranch
	if mainBranch == "" {
		mainBranch, _ = e.Git.DefaultBranch(ctx)
	}
	prefix := e.Config.WindowPrefixValue()

	var infos []WorktreeInfo
	for _, wt := range worktrees {
		if wt.Path == repoRoot || wt.Branch == "" {
			continue
		}

		info := WorktreeInfo{
			Branch:       wt.Branch,
			Path:         wt.Path,
			HasMuxWindow: e.Mux.WindowExistsByFullName(ctx, prefix+wt.Branch),
		}
		if unmerged, err := e.Git.IsUnmerged(ctx, wt.Branch, mainBranch); err == nil {
			info.HasUnmerged = unmerged
		}
		if pr != nil {
			if summary, err := pr.Lookup(ctx, wt.Branch); err == nil {
				info.PRInfo = summary
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}
