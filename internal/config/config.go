// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigJSON names the environment variable holding a JSON config override.
const EnvConfigJSON = "CAMPUSHUB_CONFIG_JSON"

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigFile(path + "main.toml")
	v.SetConfigType("toml")

	if err = v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config override from env")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings needed to open the store and
// fills in defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	switch strings.ToLower(c.DB.GormEngine) {
	case EngineSQLite, EngineMySQL, EnginePostgres:
		c.DB.GormEngine = strings.ToLower(c.DB.GormEngine)
	case "":
		return errors.Wrap(ErrEmptyGormEngine, invalidErrMessage)
	default:
		return errors.Wrap(ErrUnsupportedGormEngine, invalidErrMessage)
	}

	if c.DB.Name == "" {
		return errors.Wrap(ErrEmptyDBName, invalidErrMessage)
	}

	if c.Log.ServiceName == "" {
		c.Log.ServiceName = "campushub"
	}

	if c.Log.AppName == "" {
		c.Log.AppName = "campushub"
	}

	if c.Seed.DataPath == "" {
		c.Seed.DataPath = "./data/"
	}

	return nil
}
