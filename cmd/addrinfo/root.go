package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gortc/addrinfo/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "addrinfo",
	Short: "addrinfo resolves names to sorted, socket-ready addresses",
}

func loadConfigAndLogger() (*viper.Viper, *zap.Logger) {
	v := viper.GetViper()
	config.Init(v)
	config.Read(v, cfgFile)
	l := config.Logger(v)
	if cfgPath := v.ConfigFileUsed(); cfgPath != "" {
		l.Info("config file used", zap.String("path", cfgPath))
	} else {
		l.Info("default configuration used")
	}
	return v, l
}

// Execute runs the root command.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches ., /etc/addrinfo/, $HOME)")
	rootCmd.AddCommand(getResolveCmd())
	rootCmd.AddCommand(getLookupOneCmd())
	rootCmd.AddCommand(getServeCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func versionGuard(v *viper.Viper, l *zap.Logger) {
	if version := v.GetString("version"); version != "" && strings.Split(version, ".")[0] != "1" {
		l.Fatal("unsupported config file version", zap.String("v", version))
	}
}
