package apt

import "context"

// Engine is the contract this tool expects from the package-management
// engine. Implementations own dependency resolution, version selection and
// transaction application; callers only sequence these operations and
// present the results.
type Engine interface {
	// Refresh updates the package list cache (apt-get update).
	Refresh(ctx context.Context) error

	// Names enumerates every package name the engine knows, including
	// purely virtual ones.
	Names(ctx context.Context) ([]string, error)

	// Policy returns the installed/candidate version verdict for a name.
	Policy(ctx context.Context, name string) (*Policy, error)

	// Show returns the full records for a name, newest candidate first.
	Show(ctx context.Context, name string) ([]Record, error)

	// Dump returns a name+description view of every known package, for
	// client-side search filtering.
	Dump(ctx context.Context) ([]Package, error)

	// ListInstalled returns every installed package with its version.
	ListInstalled(ctx context.Context) ([]Package, error)

	// AutoInstalled returns the set of packages marked auto-installed.
	AutoInstalled(ctx context.Context) (map[string]bool, error)

	// Providers returns the concrete packages providing a virtual name.
	Providers(ctx context.Context, name string) ([]string, error)

	// Plan asks the engine to resolve a transaction without applying it
	// and returns the resulting change set. Resolution failures surface
	// as *NotFoundError, *NoCandidateError or *BrokenError.
	Plan(ctx context.Context, tx Transaction) (*Changeset, error)

	// Apply commits a previously planned transaction.
	Apply(ctx context.Context, tx Transaction, opts ApplyOpts) error
}

// ApplyOpts controls how a transaction is committed.
type ApplyOpts struct {
	// AssumeYes answers the engine's own prompts affirmatively. The
	// front-end has already confirmed with the user by the time Apply
	// runs, so this is normally set.
	AssumeYes bool
}
