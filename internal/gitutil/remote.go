package gitutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/workmux/internal/logging"
)

// ListRemotes returns the configured remote names.
func (c *Client) ListRemotes(ctx context.Context) ([]string, error) {
	out, err := c.git("remote").Output(ctx)
	if err != nil {
		return nil, fmt.Errorf("list git remotes: %w", err)
	}
	return splitNonEmptyLines(out), nil
}

// RemoteExists reports whether a remote with the given name is configured.
func (c *Client) RemoteExists(ctx context.Context, name string) (bool, error) {
	remotes, err := c.ListRemotes(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range remotes {
		if r == name {
			return true, nil
		}
	}
	return false, nil
}

// FetchRemote runs `git fetch <remote>`.
func (c *Client) FetchRemote(ctx context.Context, remote string) error {
	if err := c.git("fetch", remote).Run(ctx); err != nil {
		return fmt.Errorf("fetch remote %q: %w", remote, err)
	}
	return nil
}

// DeleteRemoteBranch deletes branch on remote via `git push <remote>
// --delete <branch>`.
func (c *Client) DeleteRemoteBranch(ctx context.Context, remote, branch string) error {
	if err := c.git("push", remote, "--delete", branch).Run(ctx); err != nil {
		return fmt.Errorf("delete remote branch %s/%s: %w", remote, branch, err)
	}
	return nil
}

// AddRemote adds a new remote.
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	if err := c.git("remote", "add", name, url).Run(ctx); err != nil {
		return fmt.Errorf("add remote %q: %w", name, err)
	}
	return nil
}

// SetRemoteURL updates an existing remote's URL.
func (c *Client) SetRemoteURL(ctx context.Context, name, url string) error {
	if err := c.git("remote", "set-url", name, url).Run(ctx); err != nil {
		return fmt.Errorf("set URL for remote %q: %w", name, err)
	}
	return nil
}

// GetRemoteURL reads the remote's URL directly from config (not via `git
// remote get-url`, which resolves `insteadOf` rewrites and would break
// owner-parsing against the original host).
func (c *Client) GetRemoteURL(ctx context.Context, remote string) (string, error) {
	out, err := c.git("config", "--get", "remote."+remote+".url").Output(ctx)
	if err != nil {
		return "", fmt.Errorf("get URL for remote %q: %w", remote, err)
	}
	return out, nil
}

// parseOwnerFromGitURL extracts the owner/org path segment from an https,
// http, or ssh-style git remote URL. Returns "" if the URL does not match
// any recognized shape (local paths, file:// URLs).
func parseOwnerFromGitURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		return firstPathSegment(rest)
	}
	if rest, ok := strings.CutPrefix(url, "http://"); ok {
		return firstPathSegment(rest)
	}
	if strings.HasPrefix(url, "git@") {
		parts := strings.SplitN(url, ":", 2)
		if len(parts) != 2 {
			return ""
		}
		segs := strings.Split(parts[1], "/")
		if len(segs) < 2 {
			return ""
		}
		return segs[0]
	}
	return ""
}

func firstPathSegment(hostAndPath string) string {
	parts := strings.Split(hostAndPath, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// parsedRemoteURL captures the pieces needed to rebuild a sibling fork URL.
type parsedRemoteURL struct {
	scheme string // "https", "http", or "ssh"
	host   string
	repo   string // repo name, with trailing ".git" stripped
}

func parseRemoteURL(url string) (parsedRemoteURL, error) {
	switch {
	case strings.HasPrefix(url, "https://"):
		host, repo, ok := hostAndRepo(strings.TrimPrefix(url, "https://"))
		if !ok {
			return parsedRemoteURL{}, fmt.Errorf("cannot parse https remote URL: %s", url)
		}
		return parsedRemoteURL{scheme: "https", host: host, repo: repo}, nil
	case strings.HasPrefix(url, "http://"):
		host, repo, ok := hostAndRepo(strings.TrimPrefix(url, "http://"))
		if !ok {
			return parsedRemoteURL{}, fmt.Errorf("cannot parse http remote URL: %s", url)
		}
		return parsedRemoteURL{scheme: "http", host: host, repo: repo}, nil
	case strings.HasPrefix(url, "git@"):
		rest := strings.TrimPrefix(url, "git@")
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			return parsedRemoteURL{}, fmt.Errorf("cannot parse ssh remote URL: %s", url)
		}
		host := parts[0]
		pathParts := strings.Split(parts[1], "/")
		if len(pathParts) < 2 {
			return parsedRemoteURL{}, fmt.Errorf("cannot parse ssh remote URL path: %s", url)
		}
		repo := strings.TrimSuffix(pathParts[len(pathParts)-1], ".git")
		return parsedRemoteURL{scheme: "ssh", host: host, repo: repo}, nil
	default:
		return parsedRemoteURL{}, fmt.Errorf("unrecognized remote URL scheme: %s", url)
	}
}

func hostAndRepo(rest string) (host, repo string, ok bool) {
	parts := strings.Split(rest, "/")
	if len(parts) < 3 {
		return "", "", false
	}
	host = parts[0]
	repo = strings.TrimSuffix(parts[len(parts)-1], ".git")
	return host, repo, true
}

// GetRepoOwner returns the owner/org segment of the origin remote's URL.
func (c *Client) GetRepoOwner(ctx context.Context) (string, error) {
	url, err := c.GetRemoteURL(ctx, "origin")
	if err != nil {
		return "", err
	}
	owner := parseOwnerFromGitURL(url)
	if owner == "" {
		return "", fmt.Errorf("could not parse repository owner from origin URL: %s", url)
	}
	return owner, nil
}

// EnsureForkRemote ensures a remote exists for forkOwner, returning its
// name. If forkOwner matches the current repo's owner, "origin" is reused
// directly. Otherwise a "fork-<owner>" remote is created or updated with a
// URL derived from origin's, preserving scheme and host.
func (c *Client) EnsureForkRemote(ctx context.Context, forkOwner string) (string, error) {
	if currentOwner, err := c.GetRepoOwner(ctx); err == nil && currentOwner == forkOwner {
		return "origin", nil
	}

	remoteName := "fork-" + forkOwner

	originURL, err := c.GetRemoteURL(ctx, "origin")
	if err != nil {
		return "", err
	}
	parsed, err := parseRemoteURL(originURL)
	if err != nil {
		return "", fmt.Errorf("parse origin URL for fork remote construction: %w", err)
	}

	var forkURL string
	switch parsed.scheme {
	case "https":
		forkURL = fmt.Sprintf("https://%s/%s/%s.git", parsed.host, forkOwner, parsed.repo)
	case "http":
		forkURL = fmt.Sprintf("http://%s/%s/%s.git", parsed.host, forkOwner, parsed.repo)
	default:
		forkURL = fmt.Sprintf("git@%s:%s/%s.git", parsed.host, forkOwner, parsed.repo)
	}

	exists, err := c.RemoteExists(ctx, remoteName)
	if err != nil {
		return "", err
	}
	if exists {
		currentURL, err := c.GetRemoteURL(ctx, remoteName)
		if err != nil {
			return "", err
		}
		if currentURL != forkURL {
			logging.Infof("updating fork remote %s -> %s", remoteName, forkURL)
			if err := c.SetRemoteURL(ctx, remoteName, forkURL); err != nil {
				return "", fmt.Errorf("update remote for fork %q: %w", forkOwner, err)
			}
		}
	} else {
		logging.Infof("adding fork remote %s -> %s", remoteName, forkURL)
		if err := c.AddRemote(ctx, remoteName, forkURL); err != nil {
			return "", fmt.Errorf("add remote for fork %q: %w", forkOwner, err)
		}
	}

	return remoteName, nil
}
