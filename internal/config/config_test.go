package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestInit_Defaults(t *testing.T) {
	v := viper.New()
	Init(v)
	if !v.GetBool(KeyReusePort) {
		t.Error("expected reuseport default true")
	}
	if v.GetString(KeyFilterDefault) != "allow" {
		t.Errorf("got %q, want allow", v.GetString(KeyFilterDefault))
	}
	if !v.GetBool(KeyPrometheusActive) {
		t.Error("expected prometheus default true")
	}
}

func TestRead_FallsBackToDefaultContent(t *testing.T) {
	v := viper.New()
	Init(v)
	// No cfgFile and no addrinfo.{yml,yaml,...} on the search path in this
	// package's own test working directory: Read must fall back to
	// defaultConfigFileContent instead of fataling.
	Read(v, "")
	if !v.GetBool(KeyReusePort) {
		t.Error("expected fallback config to set reuseport")
	}
}

func TestZapConfig_NoFileUsesDefaults(t *testing.T) {
	v := viper.New()
	Init(v)
	cfg, err := ZapConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Encoding != "json" {
		t.Errorf("got encoding %q, want json", cfg.Encoding)
	}
}

func TestZapConfig_DevelopmentFlag(t *testing.T) {
	v := viper.New()
	v.Set(KeyDevelopment, true)
	cfg, err := ZapConfig(v)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Development {
		t.Error("expected development config")
	}
}
