// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigJSON names the environment variable holding a JSON config override.
const EnvConfigJSON = "ARTIFY_CONFIG_JSON"

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
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	setDefaults(v)

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

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.gormengine", EngineSQLite)
	v.SetDefault("db.path", "./database/database.sqlite")

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "artify")
	v.SetDefault("log.servicename", "register-authorization")
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", true)

	v.SetDefault("authorization.modelsnamespace", `App\`)
	v.SetDefault("authorization.permissionscolumn", "permissions")
	v.SetDefault("authorization.rolestable", "roles")
	v.SetDefault("authorization.apppath", "./app")
	v.SetDefault("authorization.configpath", "./config")
	v.SetDefault("authorization.domainmatch", DomainMatchExact)
	v.SetDefault("authorization.usermodel", DefaultUserModel)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
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

// validate checks the settings the generator depends on and fills
// the defaults a JSON override may have blanked.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Authorization.DomainMatch == "" {
		c.Authorization.DomainMatch = DomainMatchExact
	}

	if c.DB.GormEngine == "" {
		c.DB.GormEngine = EngineSQLite
	}

	if c.Authorization.UserModel == "" {
		c.Authorization.UserModel = DefaultUserModel
	}

	if c.Authorization.RolesTable == "" {
		c.Authorization.RolesTable = "roles"
	}

	// namespaces are concatenated with class names
	if c.Authorization.ModelsNamespace != "" && !strings.HasSuffix(c.Authorization.ModelsNamespace, `\`) {
		c.Authorization.ModelsNamespace += `\`
	}

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.Wrapf(ErrInvalidConfig, "%s: %s failed on %q", invalidErrMessage, verrs[0].Namespace(), verrs[0].Tag())
		}

		return errors.Wrap(err, invalidErrMessage)
	}

	if !identifier.MatchString(c.Authorization.PermissionsColumn) {
		return errors.Wrap(ErrInvalidColumn, invalidErrMessage)
	}

	if !identifier.MatchString(c.Authorization.RolesTable) {
		return errors.Wrap(ErrInvalidTable, invalidErrMessage)
	}

	return nil
}
