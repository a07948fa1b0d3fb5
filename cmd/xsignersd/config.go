package main

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/iov-one/xsigners/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// config is read from the environment.
type config struct {
	Home         string `env:"XSIGNERS_HOME"`
	LogLevel     string `env:"XSIGNERS_LOG_LEVEL"     envDefault:"info"`
	ReloadAlways bool   `env:"XSIGNERS_RELOAD_ALWAYS" envDefault:"false"`
}

func loadConfig() (config, error) {
	var conf config
	if err := env.Parse(&conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "environment: %s", err)
	}
	if conf.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return conf, errors.Wrap(errors.ErrInput, "XSIGNERS_HOME not set")
		}
		conf.Home = filepath.Join(home, ".xsigners")
	}
	return conf, nil
}

func (c config) dataDir() string { return filepath.Join(c.Home, "data") }
func (c config) keysDir() string { return filepath.Join(c.Home, "keys") }

// logger writes to stderr so that command output stays parsable.
func (c config) logger() (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stderr)), opt), nil
}
