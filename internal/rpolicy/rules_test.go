package rpolicy

import (
	"net"
	"testing"

	"github.com/gortc/addrinfo/internal/rfc6724"
)

func TestAllowAll_Allowed(t *testing.T) {
	if AllowAll.Action(net.IPv4(1, 2, 3, 4)) != Allow {
		t.Error("should be allowed")
	}
}

func TestStaticNetRule(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		rule, err := StaticNetRule(Allow, "127.0.0.1/32")
		if err != nil {
			t.Fatal(err)
		}
		for _, tc := range []struct {
			IP     net.IP
			Action Action
		}{
			{net.IPv4(127, 0, 0, 1), Allow},
			{net.IPv4(127, 0, 0, 2), Pass},
		} {
			t.Run(tc.IP.String(), func(t *testing.T) {
				if rule.Action(tc.IP) != tc.Action {
					t.Error("failed")
				}
			})
		}
	})
	t.Run("ParseError", func(t *testing.T) {
		if _, err := StaticNetRule(Allow, "bad"); err == nil {
			t.Error("should error")
		}
	})
}

func TestAllowNetDenyNet(t *testing.T) {
	allow, err := AllowNet("192.168.0.0/24")
	if err != nil {
		t.Fatal(err)
	}
	if allow.Action(net.IPv4(192, 168, 0, 1)) != Allow {
		t.Error("expected allow")
	}
	if allow.Action(net.IPv4(10, 0, 0, 1)) != Pass {
		t.Error("expected pass")
	}

	deny, err := DenyNet("192.168.0.0/24")
	if err != nil {
		t.Fatal(err)
	}
	if deny.Action(net.IPv4(192, 168, 0, 1)) != Deny {
		t.Error("expected deny")
	}
}

func TestList_Action(t *testing.T) {
	allowLoopback, err := AllowNet("127.0.0.1/32")
	if err != nil {
		t.Fatal(err)
	}
	denyPrivate, err := DenyNet("192.168.0.0/24")
	if err != nil {
		t.Fatal(err)
	}
	list := NewList(Deny, allowLoopback, denyPrivate)
	for _, tc := range []struct {
		IP     net.IP
		Action Action
	}{
		{net.IPv4(192, 120, 0, 1), Deny},
		{net.IPv4(192, 168, 0, 1), Deny},
		{net.IPv4(127, 0, 0, 1), Allow},
	} {
		t.Run(tc.IP.String(), func(t *testing.T) {
			if list.Action(tc.IP) != tc.Action {
				t.Error("failed")
			}
		})
	}

	list.SetAction(Allow)
	list.SetRules([]Rule{denyPrivate})
	for _, tc := range []struct {
		IP     net.IP
		Action Action
	}{
		{net.IPv4(192, 120, 0, 1), Allow},
		{net.IPv4(192, 168, 0, 1), Deny},
		{net.IPv4(127, 0, 0, 1), Allow},
	} {
		t.Run("reloaded/"+tc.IP.String(), func(t *testing.T) {
			if list.Action(tc.IP) != tc.Action {
				t.Error("failed")
			}
		})
	}
}

func TestFilter(t *testing.T) {
	denyPrivate, err := DenyNet("10.0.0.0/8")
	if err != nil {
		t.Fatal(err)
	}
	list := NewList(Allow, denyPrivate)
	destinations := []rfc6724.Destination{
		{IP: net.IPv4(198, 51, 100, 1).To4()},
		{IP: net.IPv4(10, 1, 2, 3).To4()},
	}
	kept := Filter(list, destinations)
	if len(kept) != 1 {
		t.Fatalf("kept = %d, want 1", len(kept))
	}
	if !net.IP(kept[0].IP).Equal(net.IPv4(198, 51, 100, 1)) {
		t.Errorf("kept wrong address: %v", kept[0].IP)
	}
}

func TestFilter_EmptyAfterDenyAll(t *testing.T) {
	list := NewList(Deny)
	kept := Filter(list, []rfc6724.Destination{{IP: net.IPv4(198, 51, 100, 1).To4()}})
	if kept == nil {
		t.Error("expected non-nil empty slice")
	}
	if len(kept) != 0 {
		t.Errorf("kept = %d, want 0", len(kept))
	}
}
