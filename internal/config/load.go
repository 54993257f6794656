// internal/config/load.go
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	yaml "gopkg.in/yaml.v2"
)

// Load resolves a family configuration into dst. Precedence, highest
// first: flags set on the command line, keys from the optional YAML file,
// flag defaults. Flag names and file keys are identical.
func Load(file string, flags *pflag.FlagSet, dst interface{}) error {
	v := viper.New()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", file)
		}
	}
	if err := v.Unmarshal(dst); err != nil {
		return errors.Wrap(err, "parse configuration")
	}
	return nil
}

// WriteSnapshot records the fully resolved configuration as YAML so a
// finished run documents how it was produced.
func WriteSnapshot(path string, doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshal config snapshot")
	}
	return os.WriteFile(path, data, 0o644)
}
