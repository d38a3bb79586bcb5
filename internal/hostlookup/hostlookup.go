// Package hostlookup implements the legacy single-address lookup facade:
// a thin resolver wrapper returning one IPv4 address in a fixed-shape
// Hostent, in both a non-reentrant (shared storage, global error
// variable) and reentrant (caller-supplied scratch sizing) form. This is
// the hostent-compatibility concession internal/auth's Static/dynamic
// split models for credentials — a static, pre-sized shape kept simple on
// purpose rather than generalized.
package hostlookup

import (
	"context"
	"net"
	"sync"

	"github.com/pkg/errors"

	"github.com/gortc/addrinfo/internal/resolver"
)

// Hostent is the fixed-shape legacy result: one address, no aliases.
type Hostent struct {
	Name     string
	Aliases  []string
	AddrType int
	Addrs    []net.IP
}

// AddrType values Hostent.AddrType takes. Only AddrTypeV4 is ever
// produced by this package; the type exists so callers ported from a
// hostent-shaped API see the field they expect.
const (
	AddrTypeV4 = 2 // matches unix.AF_INET
)

// ErrHostNotFound is the legacy HostNotFound condition, surfaced either
// through the non-reentrant global error variable or as the reentrant
// variant's direct return value.
var ErrHostNotFound = errors.New("hostlookup: host not found")

// ErrRange is returned by LookupOneR when the caller-supplied buffer size
// is smaller than RequiredSize(name).
var ErrRange = errors.New("hostlookup: buffer too small")

// hostentOverhead stands in for the fixed-size helper record a C port
// would carry alongside the name copy (next-pointer, address list head,
// alias list head, address-family tag). It has no Go equivalent cost but
// is kept as a constant so RequiredSize has a stable, testable value.
const hostentOverhead = 32

// RequiredSize returns the minimum reentrant scratch-buffer size for
// looking up name: the fixed overhead plus the NUL-terminated name copy.
func RequiredSize(name string) int {
	return hostentOverhead + len(name) + 1
}

var (
	mu      sync.Mutex
	storage Hostent
	// lastError is the shared, global-by-default error variable the
	// design notes call an "interface compatibility concession" for the
	// non-reentrant variant.
	lastError error
)

// ErrorHook, when non-nil, is called instead of updating the package
// global lastError — the per-thread override a multi-threaded host must
// supply per the design notes, e.g. to stash the error in a
// goroutine-local map keyed by goroutine id.
var ErrorHook func(err error)

func setLastError(err error) {
	if ErrorHook != nil {
		ErrorHook(err)
		return
	}
	lastError = err
}

// LastError returns the most recent non-reentrant lookup's error, or nil.
// It reads only the package global; while ErrorHook is installed, lookups
// report to the hook instead and LastError is not updated, so a caller
// using a hook must read errors through it rather than LastError.
func LastError() error {
	mu.Lock()
	defer mu.Unlock()
	return lastError
}

// LookupOne resolves name to a single IPv4 address and returns a pointer
// into process-shared storage. It is not safe to call concurrently from
// multiple goroutines expecting independent results — callers needing
// that must use LookupOneR, or install ErrorHook and still serialize on
// the returned *Hostent's lifetime themselves.
func LookupOne(ctx context.Context, r resolver.Resolver, name string) (*Hostent, error) {
	mu.Lock()
	defer mu.Unlock()
	ip, err := r.Resolve(ctx, name, resolver.V4)
	if err != nil {
		setLastError(ErrHostNotFound)
		return nil, ErrHostNotFound
	}
	storage = Hostent{
		Name:     name,
		AddrType: AddrTypeV4,
		Addrs:    []net.IP{ip},
	}
	setLastError(nil)
	return &storage, nil
}

// LookupOneR is the reentrant variant: it allocates its own result rather
// than touching package-shared storage, gated by a caller-declared
// scratch budget of bufSize bytes so the contract matches a port that
// really does carve the result out of caller memory. bufSize smaller than
// RequiredSize(name) fails with ErrRange before any resolver call is
// made.
func LookupOneR(ctx context.Context, r resolver.Resolver, name string, bufSize int) (*Hostent, error) {
	if bufSize < RequiredSize(name) {
		return nil, ErrRange
	}
	ip, err := r.Resolve(ctx, name, resolver.V4)
	if err != nil {
		return nil, ErrHostNotFound
	}
	return &Hostent{
		Name:     name,
		AddrType: AddrTypeV4,
		Addrs:    []net.IP{ip},
	}, nil
}
