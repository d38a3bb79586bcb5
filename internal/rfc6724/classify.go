package rfc6724

var (
	v4MappedLinkLocal = mustParseNet("::ffff:169.254.0.0/112")
	v4MappedLoopback  = mustParseNet("::ffff:127.0.0.0/104")
	siteLocalV6       = mustParseNet("fec0::/10")
)

// ScopeOf returns the RFC 6724 scope of a v6-mapped address. It is total:
// a multicast address yields the 4-bit scope embedded in it (any value in
// 0..0xf, ScopeReserved included), and every other address maps to exactly
// one of ScopeLinkLocal, ScopeSiteLocal or ScopeGlobal.
func ScopeOf(a Addr) Scope {
	ip := a.IP
	if ip.IsMulticast() {
		// IPv6 multicast addresses carry their scope in the low nibble
		// of the second octet (ff0s::/8).
		return Scope(ip[1] & 0x0f)
	}
	if ip.IsLinkLocalUnicast() || ip.IsLoopback() {
		return ScopeLinkLocal
	}
	if v4MappedLinkLocal.Contains(ip) || v4MappedLoopback.Contains(ip) {
		return ScopeLinkLocal
	}
	if siteLocalV6.Contains(ip) {
		return ScopeSiteLocal
	}
	// Ordinary global unicast, ULA and DNS64/NAT64-synthesised addresses
	// are deliberately classified the same: this package never runs the
	// full source-address-selection machinery that would distinguish them.
	return ScopeGlobal
}
