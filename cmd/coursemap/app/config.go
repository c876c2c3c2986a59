package app

import (
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/coursemap/internal/server"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/constants"
	"github.com/agentstation/coursemap/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "COURSEMAP"

// Config holds the application configuration loaded from config files,
// environment variables, .env files and command-line flags.
type Config struct {
	// Global flags
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`
	NoColor bool   `mapstructure:"no_color"`
	Format  string `mapstructure:"format" validate:"omitempty,oneof=table json yaml"`

	// Config file actually read, if any
	ConfigFile string `mapstructure:"-"`

	// Catalog storage
	DataFile    string `mapstructure:"data_file" validate:"required"`
	LengthWidth int    `mapstructure:"length_width" validate:"oneof=4 8"`

	// HTTP server
	Host     string        `mapstructure:"host" validate:"required"`
	Port     int           `mapstructure:"port" validate:"min=1,max=65535"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"min=0"` // 0 disables the response cache

	// Logging configuration
	LogLevel  string `mapstructure:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"omitempty,oneof=auto json console"`
	LogOutput string `mapstructure:"log_output"`
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. COURSEMAP_* environment variables
//  3. .env and .env.local files
//  4. Config file (path, or .coursemap.yaml in the working or home directory)
//  5. Defaults
func LoadConfig(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(constants.DefaultConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit path must exist; the search locations are optional.
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read "+describe(path), err)
		}
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		DataFile:    v.GetString("data_file"),
		LengthWidth: v.GetInt("length_width"),

		Host:     v.GetString("host"),
		Port:     v.GetInt("port"),
		CacheTTL: v.GetDuration("cache_ttl"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_file", constants.DefaultDataFile)
	v.SetDefault("length_width", int(catalogs.Width64))
	v.SetDefault("host", constants.DefaultHost)
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("cache_ttl", constants.CacheTTL)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

func describe(path string) string {
	if path == "" {
		return constants.DefaultConfigFile + ".yaml"
	}
	return path
}

// UpdateFromFlags copies every flag the user set explicitly. Flags left at
// their defaults never override file or environment values.
func (c *Config) UpdateFromFlags(flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "verbose":
			c.Verbose, _ = flags.GetBool(f.Name)
		case "quiet":
			c.Quiet, _ = flags.GetBool(f.Name)
		case "no-color":
			c.NoColor, _ = flags.GetBool(f.Name)
		case "format":
			c.Format, _ = flags.GetString(f.Name)
		case "log-level":
			c.LogLevel, _ = flags.GetString(f.Name)
		case "data-file":
			c.DataFile, _ = flags.GetString(f.Name)
		case "host":
			c.Host, _ = flags.GetString(f.Name)
		case "port":
			c.Port, _ = flags.GetInt(f.Name)
		case "cache-ttl":
			c.CacheTTL, _ = flags.GetDuration(f.Name)
		}
	})
	c.Format = strings.ToLower(c.Format)
	c.LogLevel = strings.ToLower(c.LogLevel)
}

// Validate checks the configuration and reports every invalid key at once.
func (c *Config) Validate() error {
	validate, trans := newValidator()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return errors.NewConfigError("config", err.Error(), err)
	}
	messages := make([]string, 0, len(fields))
	for _, fe := range fields {
		messages = append(messages, fe.Translate(trans))
	}
	sort.Strings(messages)
	return errors.NewConfigError("config", strings.Join(messages, "; "), err)
}

// Width returns the configured length-prefix width.
func (c *Config) Width() (catalogs.Width, error) {
	return catalogs.ParseWidth(c.LengthWidth)
}

// Server returns the HTTP server configuration.
func (c *Config) Server() server.Config {
	cfg := server.DefaultConfig()
	cfg.Host = c.Host
	cfg.Port = c.Port
	cfg.CacheTTL = c.CacheTTL
	return cfg
}

// newValidator names fields by their config key in error messages.
func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := en.New()
	trans, _ := ut.New(locale, locale).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
	return validate, trans
}

// loadEnvFiles loads environment variables from .env files. Variables that
// are already set are not overwritten, so .env wins over .env.local.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
