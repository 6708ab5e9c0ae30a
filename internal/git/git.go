package git

type Git interface {

	// GetWorktreeRoot returns the absolute path to the root of the git tree.
	// If not in a git repository, returns ("", nil).
	// Returns an error only if the git command itself fails (e.g., git not installed).
	GetWorktreeRoot() (string, error)

	// GetCurrentBranch returns the current branch name.
	// Returns "HEAD" if in detached HEAD state.
	GetCurrentBranch() (string, error)

	// Fetch updates local refs from the named remote.
	// Will mutate the current git state.
	Fetch(remoteName string) error

	// BranchExists checks if a local branch with the given name exists.
	BranchExists(branchName string) (bool, error)

	// Checkout switches the working tree to an existing branch.
	// Will mutate the current git state.
	Checkout(branchName string) error

	// CreateBranch creates a new branch from the current position and
	// checks it out.
	// Will mutate the current git state.
	CreateBranch(branchName string) error

	// Pull integrates the upstream of the current branch.
	// Will mutate the current git state.
	Pull() error

	// ResetHard resets the current branch and working tree to the given ref,
	// discarding any local divergence.
	// Will mutate the current git state.
	ResetHard(ref string) error

	// HasChanges reports whether the working tree differs from the last
	// commit, including untracked files.
	HasChanges() (bool, error)

	// SetConfig sets a repository-local git config value.
	// Will mutate the current git state.
	SetConfig(key, value string) error

	// SetRemote registers the named remote with the given URL, replacing the
	// URL if the remote already exists. Credential userinfo embedded in the
	// URL is redacted from logs.
	// Will mutate the current git state.
	SetRemote(name, url string) error

	// AddAll stages every working tree change, including untracked files.
	// Will mutate the current git state.
	AddAll() error

	// Commit records the staged changes with the given message.
	// The commit carries a Signed-off-by trailer.
	// Will mutate the current git state.
	Commit(message string) error

	// ForcePush pushes the branch to the named remote, overwriting any prior
	// remote state for that branch.
	// Will mutate the current git state.
	ForcePush(remoteName, branchName string) error
}
