// Package config registers every configuration field and loads them with viper
// from defaults, the config file and STREAMBOX_* environment variables.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/where"
)

// EnvKeyReplacer maps configuration keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads the configuration. A missing config file is not an error.
func Setup() error {
	viper.SetConfigName(constant.Streambox)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Streambox)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}
