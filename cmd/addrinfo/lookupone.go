package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gortc/addrinfo/internal/hostlookup"
	"github.com/gortc/addrinfo/internal/resolver"
)

func getLookupOneCmd() *cobra.Command {
	var bufSlack int
	cmd := &cobra.Command{
		Use:   "lookup-one [name]",
		Short: "demo the reentrant single-address legacy lookup",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, l := loadConfigAndLogger()
			defer func() { _ = l.Sync() }()

			name := args[0]
			size := hostlookup.RequiredSize(name) + bufSlack
			r := resolver.New(nil)
			h, err := hostlookup.LookupOneR(context.Background(), r, name, size)
			if err != nil {
				l.Fatal("lookup-one failed", zap.Error(err), zap.Int("buf_size", size))
			}
			fmt.Printf("%s -> %s\n", h.Name, h.Addrs[0])
		},
	}
	cmd.Flags().IntVar(&bufSlack, "buf-slack", 0, "extra bytes above the minimum required scratch buffer size; negative exercises Range")
	return cmd
}
