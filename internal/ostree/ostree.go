// SPDX-FileCopyrightText: 2026 Pier Luigi Fiorini <pierluigi.fiorini@gmail.com>
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ostree

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBin is the name of the ostree binary looked up in PATH
const DefaultBin = "ostree"

// ErrRepoNotFound is returned by OpenRepo when the path does not
// contain an OSTree repository
var ErrRepoNotFound = errors.New("ostree repository not found")

// Ref is a branch head of a local repository
type Ref struct {
	// Path is the branch name, such as "stable/x86_64/os"
	Path string

	// Commit is the checksum of the commit the branch points to
	Commit string

	// Metadata holds the commit metadata that could be read back,
	// such as the version
	Metadata map[string]string
}

// ProgressFunc is called while a pull is in flight, every time the
// engine emits a progress line
type ProgressFunc func(fetched, requested, percent int)

// RemoteOptions holds the configuration of a remote
type RemoteOptions struct {
	URL            string
	SSLKeyPath     string
	SSLCertPath    string
	SSLCAPath      string
	SSLValidation  bool
	ProxyURL       string
	GPGValidation  bool
	GPGKeyringPath string
	GPGKeyIDs      []string
}

// Repo represents a local ostree repository driven through the
// ostree command line tool
type Repo struct {
	path string
	bin  string
}

// OpenRepo attempts to open the repo at the given path
func OpenRepo(path string) (*Repo, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	// An initialized repository always carries a config file
	if _, err := os.Stat(filepath.Join(path, "config")); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrRepoNotFound)
		}
		return nil, err
	}

	return &Repo{path: path, bin: DefaultBin}, nil
}

// Init creates an archive repository at the given path
func Init(path string) (*Repo, error) {
	if path == "" {
		return nil, errors.New("empty path")
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}

	repo := &Repo{path: path, bin: DefaultBin}
	if _, err := repo.run(context.Background(), "init", "--repo="+path, "--mode=archive"); err != nil {
		return nil, err
	}

	return repo, nil
}

// Path returns the repository path
func (r *Repo) Path() string {
	return r.path
}

// RemoteAdd adds the remote to the repository, replacing a previous
// remote with the same name. When the options carry GPG keys the
// keyring is imported right after the remote is created.
func (r *Repo) RemoteAdd(id string, opts RemoteOptions) error {
	if _, err := r.run(context.Background(), remoteAddArgs(r.path, id, opts)...); err != nil {
		return err
	}

	if opts.GPGValidation && opts.GPGKeyringPath != "" {
		args := []string{"remote", "gpg-import", "--repo=" + r.path, "--keyring=" + opts.GPGKeyringPath, id}
		args = append(args, opts.GPGKeyIDs...)
		if _, err := r.run(context.Background(), args...); err != nil {
			return err
		}
	}

	return nil
}

// RemoteDelete removes the remote from the repository
func (r *Repo) RemoteDelete(id string) error {
	_, err := r.run(context.Background(), "remote", "delete", "--repo="+r.path, id)
	return err
}

// Pull fetches a single branch from the remote, mirroring the remote
// branch head into a local one. Progress lines emitted by the engine
// are forwarded to progress as they appear. Cancelling the context
// kills the in-flight fetch.
func (r *Repo) Pull(ctx context.Context, remoteID, branch string, progress ProgressFunc) error {
	cmd := exec.CommandContext(ctx, r.bin, "pull", "--repo="+r.path, "--mirror", remoteID, branch)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	scanner := newStatusScanner(stdout)
	for scanner.Scan() {
		if fetched, requested, percent, ok := parseProgress(scanner.Text()); ok && progress != nil {
			progress(fetched, requested, percent)
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ostree pull %s %s: %v: %s", remoteID, branch, err, lastLine(stderr.String()))
	}

	return nil
}

// ListRefs lists all the branch heads of the repository
func (r *Repo) ListRefs() ([]Ref, error) {
	out, err := r.run(context.Background(), "refs", "--repo="+r.path)
	if err != nil {
		return nil, err
	}

	refs := []Ref{}
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}

		commit, err := r.ResolveRev(name)
		if err != nil {
			return nil, err
		}

		refs = append(refs, Ref{Path: name, Commit: commit, Metadata: r.commitMetadata(commit)})
	}

	return refs, nil
}

// ResolveRev returns the revision corresponding to the specified branch
func (r *Repo) ResolveRev(branch string) (string, error) {
	out, err := r.run(context.Background(), "rev-parse", "--repo="+r.path, branch)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// commitMetadata reads back well-known metadata keys of a commit.
// Keys the commit does not carry are left out.
func (r *Repo) commitMetadata(commit string) map[string]string {
	metadata := map[string]string{}
	for _, key := range []string{"version"} {
		out, err := r.run(context.Background(), "show", "--repo="+r.path, "--print-metadata-key="+key, commit)
		if err != nil {
			continue
		}
		metadata[key] = strings.Trim(strings.TrimSpace(out), "'")
	}
	return metadata
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ostree %s: %v: %s", strings.Join(args, " "), err, lastLine(string(out)))
	}
	return string(out), nil
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return lines[len(lines)-1]
}

// remoteAddArgs builds the argument list that configures the remote
// exactly as described by the options
func remoteAddArgs(repoPath, id string, opts RemoteOptions) []string {
	args := []string{"remote", "add", "--repo=" + repoPath, "--force"}

	if !opts.GPGValidation {
		args = append(args, "--no-gpg-verify")
	}
	if opts.SSLKeyPath != "" {
		args = append(args, "--set=tls-client-key-path="+opts.SSLKeyPath)
	}
	if opts.SSLCertPath != "" {
		args = append(args, "--set=tls-client-cert-path="+opts.SSLCertPath)
	}
	if opts.SSLCAPath != "" {
		args = append(args, "--set=tls-ca-path="+opts.SSLCAPath)
	}
	if !opts.SSLValidation {
		args = append(args, "--set=tls-permissive=true")
	}
	if opts.ProxyURL != "" {
		args = append(args, "--set=proxy="+opts.ProxyURL)
	}

	return append(args, id, opts.URL)
}
