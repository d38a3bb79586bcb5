// Package config bootstraps viper configuration and zap logging for
// cmd/addrinfo, the way internal/cli did for the teacher's own root
// command: a config file searched on a fixed set of paths, defaults set
// before the file is read, and a zap.Config decoded out of the same file
// so logging stays declarative alongside everything else.
package config

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

// defaultConfigFileContent is read in place of a config file when none is
// found on the search path (see Read). It is only parsed in memory; no
// file is written.
const defaultConfigFileContent = `
addrinfo:
  development: false
  policy:
    reuseport: true
  filter:
    action: allow
  prometheus:
    active: true
`

// Viper keys with defaults set by Init.
const (
	KeyDevelopment = "addrinfo.development"
	KeyReusePort   = "addrinfo.policy.reuseport"
	KeyFilterDefault = "addrinfo.filter.action"
	KeyPrometheusActive = "addrinfo.prometheus.active"
)

// Init sets the defaults Execute relies on before the config file (or its
// fallback) is read.
func Init(v *viper.Viper) {
	v.SetDefault(KeyReusePort, true)
	v.SetDefault(KeyFilterDefault, "allow")
	v.SetDefault(KeyPrometheusActive, true)
}

// MustBind exits if err, the result of binding a pflag to a viper key, is
// non-nil, matching the teacher's mustBind: a misconfigured flag binding
// is a programmer error, not a runtime condition to recover from.
func MustBind(err error) {
	if err != nil {
		log.Fatalln("failed to bind:", err)
	}
}

// AddSearchPaths registers the conventional config search locations: the
// working directory, /etc/addrinfo/, and the user's home directory.
func AddSearchPaths(v *viper.Viper) {
	home, err := homedir.Dir()
	if err != nil {
		log.Fatalln("failed to find home directory:", err)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/addrinfo/")
	v.AddConfigPath(home)
}

// Read loads cfgFile if set (parsed by its extension, so HCL/TOML/JSON
// work as well as YAML), else searches AddSearchPaths for "addrinfo" and
// parses what it finds as YAML whatever its extension. When the search
// finds no file, Read falls back to defaultConfigFileContent rather than
// failing, so a first run with no config still starts; an explicit
// cfgFile that cannot be read is fatal.
func Read(v *viper.Viper, cfgFile string) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		AddSearchPaths(v)
		v.SetConfigName("addrinfo")
		v.SetConfigType("yaml")
	}
	err := v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = v.ReadConfig(strings.NewReader(defaultConfigFileContent))
	}
	if err != nil {
		log.Fatalln("failed to read config:", err)
	}
}

// ZapConfig decodes a zap.Config from the addrinfo.log section of the
// active config file, falling back to a development config when
// addrinfo.development is set, and to sane JSON-to-stderr defaults
// otherwise.
func ZapConfig(v *viper.Viper) (zap.Config, error) {
	type cfgWrapper struct {
		Addrinfo struct {
			Log zap.Config `yaml:"log"`
		} `yaml:"addrinfo"`
	}

	d := zap.Config{
		DisableCaller:     true,
		DisableStacktrace: true,
		Level:             zap.NewAtomicLevel(),
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.EpochTimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if v.GetBool(KeyDevelopment) {
		d = zap.NewDevelopmentConfig()
	}
	if v.ConfigFileUsed() == "" {
		return d, nil
	}

	raw := &cfgWrapper{}
	raw.Addrinfo.Log = d
	f, err := os.Open(v.ConfigFileUsed())
	if err != nil {
		return d, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Println("failed to close config file:", closeErr)
		}
	}()
	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return d, err
	}
	return raw.Addrinfo.Log, yaml.Unmarshal(buf, raw)
}

// Logger builds the *zap.Logger described by ZapConfig(v), panicking on a
// malformed config the way the teacher's getLogger does: logging setup
// failing is not a condition any subcommand can usefully continue past.
func Logger(v *viper.Viper) *zap.Logger {
	cfg, err := ZapConfig(v)
	if err != nil {
		panic(fmt.Sprintf("addrinfo: bad log config: %v", err))
	}
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}
