package addrinfo

// Node is one entry in the chain Lookup returns: a socket family/type/
// protocol triple, a filled socket-address record, an optional canonical
// name, and a link to the next node. The caller owns the head; Free
// releases the whole chain in one call and is safe to call on nil or on
// an already-freed (nilled-out) head.
type Node struct {
	Family   Family
	SockType int
	Protocol int
	SockAddr SockAddr
	CanonName string
	Next     *Node
}

// length returns the number of nodes reachable from n, including n.
func (n *Node) length() int {
	count := 0
	for cur := n; cur != nil; cur = cur.Next {
		count++
	}
	return count
}

// Free releases the chain rooted at *head by nilling *head, which drops
// the caller's only reference to every node in it; a second Free call on
// the same pointer is a no-op — the "forbid double-free via nulling"
// posture the design notes call for.
func Free(head **Node) {
	if head == nil || *head == nil {
		return
	}
	*head = nil
}
