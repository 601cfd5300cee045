package config

import (
	"fmt"
	"log"
	"os"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTPServer struct {
		Port           int `koanf:"port"`
		MaxHeaderBytes int `koanf:"maxHeaderBytes"`
		Timeout        struct {
			Read       time.Duration `koanf:"read"`
			Write      time.Duration `koanf:"write"`
			Idle       time.Duration `koanf:"idle"`
			ReadHeader time.Duration `koanf:"readHeader"`
		} `koanf:"timeout"`
	} `koanf:"server"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	PProf struct {
		Enabled bool   `koanf:"enabled"`
		Addr    string `koanf:"addr"`
	} `koanf:"pprof"`

	Shutdown struct {
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"shutdown"`

	Locale struct {
		Supported []string `koanf:"supported"`
		Default   string   `koanf:"default"`
		Cookie    struct {
			Name   string        `koanf:"name"`
			MaxAge time.Duration `koanf:"maxAge"`
		} `koanf:"cookie"`
		Paths []string `koanf:"paths"`
	} `koanf:"locale"`

	Catalog struct {
		Seed bool `koanf:"seed"`
	} `koanf:"catalog"`

	RateLimit struct {
		Enabled bool          `koanf:"enabled"`
		RPS     float64       `koanf:"rps"`
		Burst   int           `koanf:"burst"`
		IdleTTL time.Duration `koanf:"idleTTL"`
	} `koanf:"ratelimit"`
}

func (c Config) String() string {
	return fmt.Sprintf("server.port=%d, server.maxHeaderBytes=%d, server.timeout.read=%v, server.timeout.write=%v, server.timeout.idle=%v, server.timeout.readHeader=%v, log.level=%s, pprof.enabled=%t, pprof.addr=%s, shutdown.timeout=%v, locale.supported=%v, locale.default=%s, locale.cookie.name=%s, locale.cookie.maxAge=%v, locale.paths=%v, catalog.seed=%t, ratelimit.enabled=%t, ratelimit.rps=%v, ratelimit.burst=%d, ratelimit.idleTTL=%v.",
		c.HTTPServer.Port,
		c.HTTPServer.MaxHeaderBytes,
		c.HTTPServer.Timeout.Read,
		c.HTTPServer.Timeout.Write,
		c.HTTPServer.Timeout.Idle,
		c.HTTPServer.Timeout.ReadHeader,
		c.Log.Level,
		c.PProf.Enabled,
		c.PProf.Addr,
		c.Shutdown.Timeout,
		c.Locale.Supported,
		c.Locale.Default,
		c.Locale.Cookie.Name,
		c.Locale.Cookie.MaxAge,
		c.Locale.Paths,
		c.Catalog.Seed,
		c.RateLimit.Enabled,
		c.RateLimit.RPS,
		c.RateLimit.Burst,
		c.RateLimit.IdleTTL)
}

const (
	envPrefix      = "storefront_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"
)

// defaults is the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       5 * time.Second,
		"server.timeout.write":      10 * time.Second,
		"server.timeout.idle":       120 * time.Second,
		"server.timeout.readHeader": 2 * time.Second,
		"log.level":                 "info",
		"pprof.enabled":             false,
		"pprof.addr":                "localhost:6060",
		"shutdown.timeout":          10 * time.Second,
		"locale.supported":          []string{"en", "zh"},
		"locale.default":            "en",
		"locale.cookie.name":        "NEXT_LOCALE",
		"locale.cookie.maxAge":      30 * 24 * time.Hour,
		"locale.paths":              []string{"/about"},
		"catalog.seed":              true,
		"ratelimit.enabled":         false,
		"ratelimit.rps":             10.0,
		"ratelimit.burst":           20,
		"ratelimit.idleTTL":         5 * time.Minute,
	}
}

// Load reads the configuration from defaults, a YAML file, a .env file and
// environment variables, each layer overriding the previous one.
func Load() (*Config, error) {
	return load(configFile, defaultEnvFile)
}

func load(yamlPath, envPath string) (*Config, error) {
	// Create a new Koanf instance
	var k = koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// 2. Load configuration from yaml file
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config: %v", err)
		}
	}

	// 3. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(envPath); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			envMap[keyTransformer(key)] = value
		}
		// Load the envMap into Koanf
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(strings.ToUpper(envPrefix), ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading env vars: %v", err)
	}

	var cfg Config
	// 5. Unmarshal the configuration into the Config struct
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf(&cfg)); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 6. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// unmarshalConf decodes durations, and comma separated strings from .env or
// the environment into list keys such as locale.supported.
func unmarshalConf(out any) koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				trimSliceHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			Result:           out,
			WeaklyTypedInput: true,
		},
	}
}

// trimSliceHookFunc trims blanks around list items so "en, zh" reads as [en zh].
func trimSliceHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		items, ok := data.([]string)
		if !ok || to.Kind() != reflect.Slice {
			return data, nil
		}
		trimmed := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				trimmed = append(trimmed, item)
			}
		}
		return trimmed, nil
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks if the configuration values are valid
func (c Config) Validate() error {
	if c.HTTPServer.Port <= 0 || c.HTTPServer.Port > 65535 {
		return fmt.Errorf("invalid HTTP server port: %d", c.HTTPServer.Port)
	}
	if c.HTTPServer.Timeout.Read <= 0 {
		return fmt.Errorf("invalid HTTP server read timeout: %v", c.HTTPServer.Timeout.Read)
	}
	if c.HTTPServer.Timeout.Write <= 0 {
		return fmt.Errorf("invalid HTTP server write timeout: %v", c.HTTPServer.Timeout.Write)
	}
	if c.HTTPServer.Timeout.Idle <= 0 {
		return fmt.Errorf("invalid HTTP server idle timeout: %v", c.HTTPServer.Timeout.Idle)
	}
	if c.HTTPServer.Timeout.ReadHeader <= 0 {
		return fmt.Errorf("invalid HTTP server read header timeout: %v", c.HTTPServer.Timeout.ReadHeader)
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	if c.PProf.Enabled && c.PProf.Addr == "" {
		return fmt.Errorf("pprof is enabled but pprof.addr is empty")
	}
	if c.Shutdown.Timeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %v", c.Shutdown.Timeout)
	}
	if err := c.validateLocale(); err != nil {
		return err
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("invalid rate limit rps: %v", c.RateLimit.RPS)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("invalid rate limit burst: %d", c.RateLimit.Burst)
		}
		if c.RateLimit.IdleTTL <= 0 {
			return fmt.Errorf("invalid rate limit idle TTL: %v", c.RateLimit.IdleTTL)
		}
	}
	return nil
}

func (c Config) validateLocale() error {
	if len(c.Locale.Supported) == 0 {
		return fmt.Errorf("locale.supported must not be empty")
	}
	for _, code := range c.Locale.Supported {
		if !isLocaleCode(code) {
			return fmt.Errorf("invalid locale code: %q", code)
		}
	}
	if !slices.Contains(c.Locale.Supported, c.Locale.Default) {
		return fmt.Errorf("default locale %q is not in locale.supported %v", c.Locale.Default, c.Locale.Supported)
	}
	if c.Locale.Cookie.Name == "" {
		return fmt.Errorf("locale.cookie.name is not configured")
	}
	if c.Locale.Cookie.MaxAge <= 0 {
		return fmt.Errorf("invalid locale cookie max age: %v", c.Locale.Cookie.MaxAge)
	}
	for _, p := range c.Locale.Paths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("locale path must start with '/': %q", p)
		}
	}
	return nil
}

// isLocaleCode reports whether code is two lowercase ASCII letters.
func isLocaleCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'a' || code[i] > 'z' {
			return false
		}
	}
	return true
}

// canonicalKeys maps lower-cased keys to their camelCase spelling so that
// STOREFRONT_SERVER_MAXHEADERBYTES overrides server.maxHeaderBytes.
var canonicalKeys = func() map[string]string {
	keys := make(map[string]string)
	for key := range defaults() {
		keys[strings.ToLower(key)] = key
	}
	return keys
}()

// keyTransformer transforms environment variable keys to match the expected format
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ReplaceAll(key, "_", ".")
	if canonical, ok := canonicalKeys[key]; ok {
		return canonical
	}
	return key
}
