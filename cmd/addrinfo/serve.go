package main

import (
	"net"
	"net/http"

	"github.com/libp2p/go-reuseport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gortc/addrinfo/internal/config"
	"github.com/gortc/addrinfo/internal/manage"
	"github.com/gortc/addrinfo/internal/metrics"
	"github.com/gortc/addrinfo/internal/reload"
	"github.com/gortc/addrinfo/internal/rpolicy"
)

// listenHTTP listens on addr, using SO_REUSEPORT when reusePort is set
// and the platform supports it, the way ListenUDPAndServe picks between
// reuseport.ListenPacket and net.ListenPacket for the teacher's UDP
// listener — here applied to the HTTP listener since this front end has
// no packet-level protocol of its own to listen on.
func listenHTTP(reusePort bool, addr string) (net.Listener, error) {
	if reusePort && reuseport.Available() {
		return reuseport.Listen("tcp", addr)
	}
	return net.Listen("tcp", addr)
}

// reloadHook wraps a *rpolicy.Table and *rpolicy.List so it can satisfy
// manage.Notifier while re-reading both from the active viper config.
type reloadHook struct {
	v      *viper.Viper
	l      *zap.Logger
	m      *metrics.Metrics
	table  *rpolicy.Table
	filter *rpolicy.List
}

// Notify implements manage.Notifier: the HTTP-triggered reload path.
func (h reloadHook) Notify() error { return h.notify("http") }

// notify re-reads the active config and applies it to the policy table
// and filter rule list, tagging its log lines with source ("http" or
// "sigusr2") so an operator can tell what triggered a given reload.
func (h reloadHook) notify(source string) error {
	if err := h.v.ReadInConfig(); err != nil {
		h.l.Error("failed to re-read config", zap.String("source", source), zap.Error(err))
		h.m.ObserveReload("rejected")
		return err
	}
	var rawTable []rpolicy.TableEntry
	if err := h.v.UnmarshalKey("addrinfo.policy.table", &rawTable); err == nil && len(rawTable) > 0 {
		if reloadErr := h.table.Reload(rawTable); reloadErr != nil {
			h.l.Error("rejected policy table reload, keeping prior table", zap.String("source", source), zap.Error(reloadErr))
			h.m.ObserveReload("rejected")
			return reloadErr
		}
	}
	h.filter.SetAction(filterActionFromString(h.v.GetString(config.KeyFilterDefault)))
	h.m.ObserveReload("ok")
	h.l.Info("reloaded policy table and filter rules", zap.String("source", source))
	return nil
}

func filterActionFromString(s string) rpolicy.Action {
	switch s {
	case "deny":
		return rpolicy.Deny
	default:
		return rpolicy.Allow
	}
}

func getServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve /metrics and /reload over an optionally SO_REUSEPORT HTTP listener",
		Run: func(cmd *cobra.Command, args []string) {
			v, l := loadConfigAndLogger()
			versionGuard(v, l)

			reg := prometheus.NewPedanticRegistry()
			m := metrics.New(prometheus.Labels{})
			if v.GetBool(config.KeyPrometheusActive) {
				if err := reg.Register(m); err != nil {
					l.Fatal("failed to register metrics", zap.Error(err))
				}
			}

			table := rpolicy.NewTable()
			filterList := rpolicy.NewList(filterActionFromString(v.GetString(config.KeyFilterDefault)))
			hook := reloadHook{v: v, l: l.Named("reload"), m: m, table: table, filter: filterList}

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{ErrorLog: zap.NewStdLog(l)}))
			mux.Handle("/reload", manage.NewManager(l.Named("manage"), hook))

			n := reload.NewNotifier()
			go func() {
				for source := range n.C {
					if err := hook.notify(source); err != nil {
						l.Warn("signal-triggered reload failed", zap.String("source", source), zap.Error(err))
					}
				}
			}()

			ln, err := listenHTTP(v.GetBool(config.KeyReusePort), addr)
			if err != nil {
				l.Fatal("failed to listen", zap.String("addr", addr), zap.Error(err))
			}
			defer func() { _ = ln.Close() }()

			l.Info("serving", zap.String("addr", addr))
			if serveErr := http.Serve(ln, mux); serveErr != nil {
				l.Error("http serve failed", zap.Error(serveErr))
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "http listen address")
	return cmd
}
