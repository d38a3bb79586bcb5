package resolver_test

import (
	"context"
	"net"
	"testing"

	"github.com/gortc/addrinfo/internal/resolver"
	"github.com/gortc/addrinfo/internal/resolvertest"
)

func TestFakeResolverContract(t *testing.T) {
	r := resolvertest.Fake{V4: net.IPv4(192, 0, 2, 1)}
	ip, err := r.Resolve(context.Background(), "example.test", resolver.V4)
	if err != nil {
		t.Fatal(err)
	}
	if !ip.Equal(net.IPv4(192, 0, 2, 1)) {
		t.Errorf("got %v", ip)
	}
	if _, err := r.Resolve(context.Background(), "example.test", resolver.V6); err != resolver.ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
