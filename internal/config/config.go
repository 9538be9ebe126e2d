package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	G2P      G2PConfig    `mapstructure:"g2p"`
	Dict     DictConfig   `mapstructure:"dict"`
	Server   ServerConfig `mapstructure:"server"`
	LogLevel string       `mapstructure:"log_level" validate:"oneof=debug info warn warning error"`
}

type G2PConfig struct {
	Jyut    bool `mapstructure:"jyut"`
	Sandhi  bool `mapstructure:"sandhi"`
	Strict  bool `mapstructure:"strict"`
	Workers int  `mapstructure:"workers" validate:"min=1,max=256"`
}

type DictConfig struct {
	SegmenterPath string `mapstructure:"segmenter_path"`
	JyutpingPath  string `mapstructure:"jyutping_path"`
	CMUDictPath   string `mapstructure:"cmudict_path"`
	LexiconDir    string `mapstructure:"lexicon_dir"`
	CacheSize     int    `mapstructure:"cache_size" validate:"min=1"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr" validate:"required"`
	Workers         int    `mapstructure:"workers" validate:"min=1,max=1024"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes" validate:"min=1"`
	RequestTimeout  int    `mapstructure:"request_timeout" validate:"min=1"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"min=0"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps each config key to the flag that overrides it.
var flagKeys = map[string]string{
	"g2p.jyut":                "jyut",
	"g2p.sandhi":              "sandhi",
	"g2p.strict":              "strict",
	"g2p.workers":             "g2p-workers",
	"dict.segmenter_path":     "dict-segmenter-path",
	"dict.jyutping_path":      "dict-jyutping-path",
	"dict.cmudict_path":       "dict-cmudict-path",
	"dict.lexicon_dir":        "dict-lexicon-dir",
	"dict.cache_size":         "dict-cache-size",
	"server.listen_addr":      "server-listen-addr",
	"server.workers":          "workers",
	"server.max_text_bytes":   "server-max-text-bytes",
	"server.request_timeout":  "server-request-timeout",
	"server.shutdown_timeout": "server-shutdown-timeout",
	"log_level":               "log-level",
}

func DefaultConfig() Config {
	return Config{
		G2P: G2PConfig{
			Jyut:    false,
			Sandhi:  true,
			Strict:  false,
			Workers: 4,
		},
		Dict: DictConfig{
			CacheSize: 4096,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         8,
			MaxTextBytes:    4096,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Bool("jyut", defaults.G2P.Jyut, "Romanize Chinese as Cantonese jyutping instead of Mandarin pinyin")
	fs.Bool("sandhi", defaults.G2P.Sandhi, "Apply Mandarin tone sandhi")
	fs.Bool("strict", defaults.G2P.Strict, "Decompose pinyin with the strict initial/final tables")
	fs.Int("g2p-workers", defaults.G2P.Workers, "Sentences converted in parallel")
	fs.String("dict-segmenter-path", defaults.Dict.SegmenterPath, "Segmenter dictionary file(s), comma separated (empty: embedded)")
	fs.String("dict-jyutping-path", defaults.Dict.JyutpingPath, "Jyutping character table (empty: embedded)")
	fs.String("dict-cmudict-path", defaults.Dict.CMUDictPath, "CMUdict pronunciation file (empty: embedded)")
	fs.String("dict-lexicon-dir", defaults.Dict.LexiconDir, "Directory of lexicon override files")
	fs.Int("dict-cache-size", defaults.Dict.CacheSize, "Entries kept in the sub-word and English caches")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent conversion requests")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("G2PMIX")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("g2pmix")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and enumerations.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("g2p.jyut", c.G2P.Jyut)
	v.SetDefault("g2p.sandhi", c.G2P.Sandhi)
	v.SetDefault("g2p.strict", c.G2P.Strict)
	v.SetDefault("g2p.workers", c.G2P.Workers)
	v.SetDefault("dict.segmenter_path", c.Dict.SegmenterPath)
	v.SetDefault("dict.jyutping_path", c.Dict.JyutpingPath)
	v.SetDefault("dict.cmudict_path", c.Dict.CMUDictPath)
	v.SetDefault("dict.lexicon_dir", c.Dict.LexiconDir)
	v.SetDefault("dict.cache_size", c.Dict.CacheSize)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags attaches every registered flag to its config key. Flags the
// command does not define are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	return nil
}
