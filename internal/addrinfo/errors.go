package addrinfo

import "github.com/pkg/errors"

// Input errors: never retried, returned immediately.
var (
	// ErrNoName is returned when neither node nor service was given.
	ErrNoName = errors.New("addrinfo: no name or service given")
	// ErrFamily is returned when hints request a family this package does
	// not recognize.
	ErrFamily = errors.New("addrinfo: unsupported address family")
	// ErrService is returned when the service string is not a decimal
	// port number in 0..65535.
	ErrService = errors.New("addrinfo: invalid service")
)

// Resolution failure: includes resolver timeout, NXDOMAIN, and
// family-mismatch under the NumericHost hint.
var ErrFail = errors.New("addrinfo: resolution failed")

// ErrMemory stands in for the fixed-size-pool exhaustion the source
// material reports under NumericHost-free embedded targets. Go's
// allocator does not expose an equivalent failure mode for the handful of
// nodes this package ever builds (at most two), so this sentinel is part
// of the exported error taxonomy but is not produced by this
// implementation; a pool-backed port would wire it in at node allocation.
var ErrMemory = errors.New("addrinfo: allocation failed")
