package addrinfo

import (
	"golang.org/x/sys/unix"
)

// SockAddr is the tagged union of the two socket-address layouts this
// package produces, bit-exact with the platform ABI each variant names.
// Exactly one of V4/V6 is populated, selected by Family.
type SockAddr struct {
	V4 SockaddrIn
	V6 SockaddrIn6
}

// SockaddrIn mirrors struct sockaddr_in: family tag, port in network byte
// order, 32-bit address in network byte order, and padding to the
// platform's sockaddr size.
type SockaddrIn struct {
	Family uint16
	Port   uint16
	Addr   [4]byte
	Zero   [8]byte
}

// SockaddrIn6 mirrors struct sockaddr_in6: family tag, port in network
// byte order, flow info (always zeroed here), 128-bit address, and scope
// id.
type SockaddrIn6 struct {
	Family   uint16
	Port     uint16
	FlowInfo uint32
	Addr     [16]byte
	ScopeID  uint32
}

// swap16 byte-swaps a 16-bit value. htons and ntohs are both this
// operation (it's its own inverse): building Port swaps a host-order
// port into network order, and PortHost swaps it back for display.
// Mirrors syscall.SockaddrInet4.sockaddr()'s explicit
// p[0]=byte(port>>8); p[1]=byte(port) construction, done here as an
// arithmetic swap since Port is a plain field, not a byte slice.
func swap16(v uint16) uint16 { return v<<8 | v>>8 }

// newSockaddrIn builds a SockaddrIn with port stored in network byte
// order, per the sockaddr_in ABI.
func newSockaddrIn(ip [4]byte, port uint16) SockaddrIn {
	return SockaddrIn{Family: uint16(unix.AF_INET), Port: swap16(port), Addr: ip}
}

// newSockaddrIn6 builds a SockaddrIn6 with port stored in network byte
// order, per the sockaddr_in6 ABI.
func newSockaddrIn6(ip [16]byte, port uint16, scopeID uint32) SockaddrIn6 {
	return SockaddrIn6{
		Family:  uint16(unix.AF_INET6),
		Port:    swap16(port),
		Addr:    ip,
		ScopeID: scopeID,
	}
}

// PortHost returns Port converted back to a host-order integer, for
// callers that want a human-readable port rather than the raw ABI field.
func (s SockaddrIn) PortHost() uint16 { return swap16(s.Port) }

// PortHost returns Port converted back to a host-order integer, for
// callers that want a human-readable port rather than the raw ABI field.
func (s SockaddrIn6) PortHost() uint16 { return swap16(s.Port) }
