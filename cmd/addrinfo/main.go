// Command addrinfo is a demo CLI around the addrinfo/hostlookup packages:
// one-shot resolve and lookup-one subcommands, and a serve subcommand
// exposing /metrics and /reload for longer-running use.
package main

func main() {
	Execute()
}
