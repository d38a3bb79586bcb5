// Package ifaceinfo implements rfc6724.Enumerator against the host's real
// network interfaces, the way github.com/gortc/ice's gather package walks
// net.Interfaces() to build ICE host candidates.
package ifaceinfo

import (
	"net"

	"github.com/pkg/errors"

	"github.com/gortc/addrinfo/internal/rfc6724"
)

// System enumerates addresses via net.Interfaces(). It is the default,
// real-world Enumerator; tests and simulations should supply their own.
type System struct{}

// ForEachInterface implements rfc6724.Enumerator.
func (System) ForEachInterface(visit func(rfc6724.InterfaceSource) bool) error {
	ifaces, err := net.Interfaces()
	if err != nil {
		return errors.Wrap(err, "list interfaces")
	}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			return errors.Wrapf(err, "addresses for interface %s", iface.Name)
		}
		src := fromInterfaceAddrs(addrs)
		if !visit(src) {
			break
		}
	}
	return nil
}

func fromInterfaceAddrs(addrs []net.Addr) rfc6724.InterfaceSource {
	var src rfc6724.InterfaceSource
	for _, a := range addrs {
		ip, _, err := net.ParseCIDR(a.String())
		if err != nil {
			continue
		}
		if ip.IsUnspecified() {
			continue
		}
		if v4 := ip.To4(); v4 != nil {
			if src.PrimaryV4 == nil {
				src.PrimaryV4 = v4
			}
			continue
		}
		src.V6 = append(src.V6, ip)
	}
	return src
}

// Default is the System enumerator, ready to use.
var Default rfc6724.Enumerator = System{}
