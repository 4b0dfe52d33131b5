package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/san-kum/cyberfolio/internal/scramble"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr      = ":8080"
	DefaultTheme     = "cyberpunk"
	DefaultDataDir   = ".cyberfolio"
	DefaultLoadingMs = 2500
)

type Config struct {
	Theme       string                    `yaml:"theme"`
	Addr        string                    `yaml:"addr"`
	ProfilePath string                    `yaml:"profile"`
	DataDir     string                    `yaml:"data_dir"`
	LoadingMs   int                       `yaml:"loading_ms"`
	Scramble    map[string]ScrambleConfig `yaml:"scramble" json:"scramble"`
}

// ScrambleConfig is the file form of scramble.Options.
type ScrambleConfig struct {
	SpeedMs   int     `yaml:"speed_ms" json:"speed_ms"`
	Tick      int     `yaml:"tick" json:"tick"`
	Step      int     `yaml:"step" json:"step"`
	Scramble  int     `yaml:"scramble" json:"scramble"`
	Seed      int     `yaml:"seed" json:"seed"`
	Chance    float64 `yaml:"chance" json:"chance"`
	Overdrive bool    `yaml:"overdrive" json:"overdrive"`
	Overflow  bool    `yaml:"overflow" json:"overflow"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:     DefaultTheme,
		Addr:      DefaultAddr,
		DataDir:   DefaultDataDir,
		LoadingMs: DefaultLoadingMs,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEnv reads .env style files into the process environment. Missing
// files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv overrides fields from CYBERFOLIO_* variables. PORT is honoured for
// hosting platforms that only set a port.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Addr = ":" + port
	}
	if v := os.Getenv("CYBERFOLIO_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("CYBERFOLIO_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("CYBERFOLIO_PROFILE"); v != "" {
		c.ProfilePath = v
	}
	if v := os.Getenv("CYBERFOLIO_DATA"); v != "" {
		c.DataDir = v
	}
}

func (c *Config) Validate() error {
	if c.LoadingMs < 0 {
		return errors.New("config: loading_ms must not be negative")
	}
	for _, sc := range c.Scramble {
		if err := sc.Options().Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) LoadingDuration() time.Duration {
	return time.Duration(c.LoadingMs) * time.Millisecond
}

// Preset resolves a named scramble preset, preferring overrides from the file.
func (c *Config) Preset(name string) (scramble.Options, bool) {
	if sc, ok := c.Scramble[name]; ok {
		return sc.Options(), true
	}
	if sc := GetPreset(name); sc != nil {
		return sc.Options(), true
	}
	return scramble.Options{}, false
}

// Options converts to scramble.Options. Zero numeric fields fall back to
// scramble.DefaultOptions; negative ones are left for Validate to reject.
func (sc ScrambleConfig) Options() scramble.Options {
	opts := scramble.DefaultOptions()
	if sc.SpeedMs != 0 {
		opts.Speed = time.Duration(sc.SpeedMs) * time.Millisecond
	}
	if sc.Tick != 0 {
		opts.Tick = sc.Tick
	}
	if sc.Step != 0 {
		opts.Step = sc.Step
	}
	if sc.Scramble != 0 {
		opts.Scramble = sc.Scramble
	}
	opts.Seed = sc.Seed
	if sc.Chance != 0 {
		opts.Chance = sc.Chance
	}
	opts.Overdrive = sc.Overdrive
	opts.Overflow = sc.Overflow
	return opts
}

func FromOptions(opts scramble.Options) ScrambleConfig {
	return ScrambleConfig{
		SpeedMs:   int(opts.Speed / time.Millisecond),
		Tick:      opts.Tick,
		Step:      opts.Step,
		Scramble:  opts.Scramble,
		Seed:      opts.Seed,
		Chance:    opts.Chance,
		Overdrive: opts.Overdrive,
		Overflow:  opts.Overflow,
	}
}
