package addrinfo

import (
	"context"
	"net"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gortc/addrinfo/internal/resolvertest"
	"github.com/gortc/addrinfo/internal/rfc6724"
	"github.com/gortc/addrinfo/internal/testutil"
)

type fakeEnumerator struct {
	sources []rfc6724.InterfaceSource
}

func (f fakeEnumerator) ForEachInterface(visit func(rfc6724.InterfaceSource) bool) error {
	for _, s := range f.sources {
		if !visit(s) {
			break
		}
	}
	return nil
}

func dualStackSources() fakeEnumerator {
	return fakeEnumerator{sources: []rfc6724.InterfaceSource{
		{
			PrimaryV4: net.IPv4(10, 1, 2, 4),
			V6:        []net.IP{net.ParseIP("2001:db8:1::2"), net.ParseIP("fe80::1")},
		},
	}}
}

func TestLookup_NoName(t *testing.T) {
	_, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "", "", Hints{})
	if err != ErrNoName {
		t.Errorf("got %v, want ErrNoName", err)
	}
}

func TestLookup_BadFamily(t *testing.T) {
	_, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "host", "", Hints{Family: Family(99)})
	if err != ErrFamily {
		t.Errorf("got %v, want ErrFamily", err)
	}
}

func TestLookup_BadService(t *testing.T) {
	_, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "host", "http", Hints{})
	if errorCause(err) != ErrService {
		t.Errorf("got %v, want wrapped ErrService", err)
	}
}

func TestLookup_ServiceOutOfRange(t *testing.T) {
	_, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "host", "70000", Hints{})
	if errorCause(err) != ErrService {
		t.Errorf("got %v, want wrapped ErrService", err)
	}
}

func TestLookup_NodeTooLong(t *testing.T) {
	long := strings.Repeat("a", maxNodeNameLength+1)
	_, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, long, "", Hints{})
	if errorCause(err) != ErrFail {
		t.Errorf("got %v, want wrapped ErrFail", err)
	}
}

func TestLookup_NumericHost(t *testing.T) {
	chain, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "198.51.100.7", "80", Hints{NumericHost: true})
	if err != nil {
		t.Fatal(err)
	}
	if chain.length() != 1 {
		t.Fatalf("chain length = %d, want 1", chain.length())
	}
	if chain.Family != FamilyV4 {
		t.Errorf("family = %v, want FamilyV4", chain.Family)
	}
}

func TestLookup_NumericHostFamilyMismatch(t *testing.T) {
	_, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "198.51.100.7", "", Hints{NumericHost: true, Family: FamilyV6})
	if errorCause(err) != ErrFail {
		t.Errorf("got %v, want wrapped ErrFail", err)
	}
}

func TestLookup_AbsentNodePassive(t *testing.T) {
	chain, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "", "80", Hints{Passive: true})
	if err != nil {
		t.Fatal(err)
	}
	if !net.IP(chain.SockAddr.V4.Addr[:]).Equal(net.IPv4zero.To4()) {
		t.Errorf("expected 0.0.0.0, got %v", chain.SockAddr.V4.Addr)
	}
}

func TestLookup_AbsentNodeNotPassive(t *testing.T) {
	chain, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "", "80", Hints{})
	if err != nil {
		t.Fatal(err)
	}
	if !net.IP(chain.SockAddr.V4.Addr[:]).Equal(net.IPv4(127, 0, 0, 1).To4()) {
		t.Errorf("expected loopback, got %v", chain.SockAddr.V4.Addr)
	}
}

func TestLookup_DualStackBothFamilies(t *testing.T) {
	fake := resolvertest.Fake{
		V4: net.ParseIP("198.51.100.121"),
		V6: net.ParseIP("2001:db8:1::1"),
	}
	o := Options{Resolver: fake, Enumerator: dualStackSources()}
	chain, err := Lookup(context.Background(), o, "example.test", "", Hints{})
	if err != nil {
		t.Fatal(err)
	}
	if chain.length() != 2 {
		t.Fatalf("chain length = %d, want 2", chain.length())
	}
	// v4-mapped carries a lower default precedence (35) than general v6
	// (40), so once scope/label both tie the v6 destination sorts first.
	if chain.Family != FamilyV6 {
		t.Errorf("first = %v, want FamilyV6", chain.Family)
	}
}

func TestLookup_DualStackOneFamilyFails(t *testing.T) {
	fake := resolvertest.Fake{V4: net.ParseIP("198.51.100.121")}
	o := Options{Resolver: fake, Enumerator: dualStackSources()}
	chain, err := Lookup(context.Background(), o, "example.test", "", Hints{})
	if err != nil {
		t.Fatal(err)
	}
	if chain.length() != 1 {
		t.Fatalf("chain length = %d, want 1", chain.length())
	}
	if chain.Family != FamilyV4 {
		t.Errorf("family = %v, want FamilyV4", chain.Family)
	}
}

func TestLookup_DualStackBothFamiliesFail(t *testing.T) {
	o := Options{Resolver: resolvertest.Fake{}, Enumerator: dualStackSources()}
	_, err := Lookup(context.Background(), o, "example.test", "", Hints{})
	if errorCause(err) != ErrFail {
		t.Errorf("got %v, want wrapped ErrFail", err)
	}
}

func TestLookup_AddrConfigSuppressesMissingFamily(t *testing.T) {
	fake := resolvertest.Fake{
		V4: net.ParseIP("198.51.100.121"),
		V6: net.ParseIP("2001:db8:1::1"),
	}
	v4OnlySources := fakeEnumerator{sources: []rfc6724.InterfaceSource{{PrimaryV4: net.IPv4(10, 1, 2, 4)}}}
	o := Options{Resolver: fake, Enumerator: v4OnlySources}
	chain, err := Lookup(context.Background(), o, "example.test", "", Hints{AddrConfig: true})
	if err != nil {
		t.Fatal(err)
	}
	if chain.length() != 1 {
		t.Fatalf("chain length = %d, want 1", chain.length())
	}
	if chain.Family != FamilyV4 {
		t.Errorf("family = %v, want FamilyV4 (v6 suppressed by AddrConfig)", chain.Family)
	}
}

func TestLookup_DualStackSuccessLogsNoErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	fake := resolvertest.Fake{
		V4: net.ParseIP("198.51.100.121"),
		V6: net.ParseIP("2001:db8:1::1"),
	}
	o := Options{Resolver: fake, Enumerator: dualStackSources(), Log: zap.New(core)}
	if _, err := Lookup(context.Background(), o, "example.test", "", Hints{}); err != nil {
		t.Fatal(err)
	}
	testutil.EnsureNoErrors(t, logs)
}

func TestFree_Idempotent(t *testing.T) {
	var head *Node
	Free(&head) // no-op on already-nil head
	if head != nil {
		t.Error("expected nil head")
	}
	chain, err := Lookup(context.Background(), Options{Resolver: resolvertest.Fake{}}, "198.51.100.7", "", Hints{NumericHost: true})
	if err != nil {
		t.Fatal(err)
	}
	Free(&chain)
	if chain != nil {
		t.Error("expected chain nilled after Free")
	}
	Free(&chain) // second Free must not panic
}

// errorCause unwraps a pkg/errors-wrapped error down to its root cause
// so tests can compare against the exported sentinels.
func errorCause(err error) error {
	type causer interface{ Cause() error }
	for err != nil {
		c, ok := err.(causer)
		if !ok {
			return err
		}
		err = c.Cause()
	}
	return nil
}
