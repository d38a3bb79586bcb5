package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gortc/addrinfo/internal/addrinfo"
	"github.com/gortc/addrinfo/internal/ifaceinfo"
	"github.com/gortc/addrinfo/internal/metrics"
	"github.com/gortc/addrinfo/internal/resolver"
	"github.com/gortc/addrinfo/internal/rfc6724"
	"github.com/gortc/addrinfo/internal/rpolicy"
)

func getResolveCmd() *cobra.Command {
	var (
		service    string
		numeric    bool
		passive    bool
		addrConfig bool
		family     string
	)
	cmd := &cobra.Command{
		Use:   "resolve [node]",
		Short: "run a one-shot getaddrinfo-style lookup and print the sorted chain",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, l := loadConfigAndLogger()
			defer func() { _ = l.Sync() }()

			hints := addrinfo.Hints{
				NumericHost: numeric,
				Passive:     passive,
				AddrConfig:  addrConfig,
			}
			switch family {
			case "4":
				hints.Family = addrinfo.FamilyV4
			case "6":
				hints.Family = addrinfo.FamilyV6
			}

			o := addrinfo.Options{
				Resolver:   resolver.New(nil),
				Enumerator: ifaceinfo.Default,
				Policy:     rfc6724.DefaultPolicyTable(),
				Filter:     rpolicy.AllowAll,
				Metrics:    metrics.New(nil),
				Log:        l.Named("addrinfo"),
			}
			chain, err := addrinfo.Lookup(context.Background(), o, args[0], service, hints)
			if err != nil {
				l.Fatal("lookup failed", zap.Error(err))
			}
			for n := chain; n != nil; n = n.Next {
				fmt.Println(describeNode(n))
			}
			addrinfo.Free(&chain)
		},
	}
	cmd.Flags().StringVarP(&service, "service", "s", "", "numeric port")
	cmd.Flags().BoolVar(&numeric, "numeric-host", false, "treat node as a literal address")
	cmd.Flags().BoolVar(&passive, "passive", false, "use any-address instead of loopback for an absent node")
	cmd.Flags().BoolVar(&addrConfig, "addr-config", true, "suppress a family with no local source address")
	cmd.Flags().StringVar(&family, "family", "", "restrict to family: 4, 6, or empty for both")
	return cmd
}

func describeNode(n *addrinfo.Node) string {
	switch n.Family {
	case addrinfo.FamilyV4:
		ip := n.SockAddr.V4.Addr
		return fmt.Sprintf("v4 %d.%d.%d.%d:%d", ip[0], ip[1], ip[2], ip[3], n.SockAddr.V4.PortHost())
	case addrinfo.FamilyV6:
		return fmt.Sprintf("v6 [%x]:%d", n.SockAddr.V6.Addr, n.SockAddr.V6.PortHost())
	default:
		return "unknown"
	}
}
