package gate

import "errors"

// Configuration errors, raised at startup and never recovered.
var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("gate: invalid configuration")

	// ErrMissingAppName indicates app.name is absent.
	ErrMissingAppName = errors.New("gate: app.name is required")

	// ErrMissingRootDir indicates app.root_dir is absent.
	ErrMissingRootDir = errors.New("gate: app.root_dir is required")

	// ErrMissingUserspace indicates the userspace section carries no
	// identity-store connection parameters.
	ErrMissingUserspace = errors.New("gate: userspace configuration is required")
)

// Setup errors, raised when wiring gates into a host.
var (
	// ErrDuplicateKeyword indicates another gate with the same keyword is
	// already attached to the host.
	ErrDuplicateKeyword = errors.New("gate: keyword already attached to host")

	// ErrUnknownKeyword indicates a route requested an identity keyword no
	// attached gate provides.
	ErrUnknownKeyword = errors.New("gate: no gate attached for keyword")
)

var (
	// ErrNoStore indicates the gate has no identity store to delegate to.
	ErrNoStore = errors.New("gate: identity store is required")
)
