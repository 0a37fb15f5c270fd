package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// configFile is the file name looked up in the config directory.
const configFile = "config.toml"

// Config holds flag defaults read from a TOML file:
//
//	[generate]
//	width = 1600
//	height = 1200
//	color_scheme = "gradient"
//	bg_color = "#202020"
//
//	[serve]
//	addr = ":9090"
//	redis = "localhost:6379"
//
// Explicit flags always win over file values.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Serve    ServeConfig    `toml:"serve"`
}

// GenerateConfig mirrors the generate and preview flags.
type GenerateConfig struct {
	Width        int     `toml:"width"`
	Height       int     `toml:"height"`
	FontMin      int     `toml:"font_min"`
	FontMax      int     `toml:"font_max"`
	BgColor      string  `toml:"bg_color"`
	ColorScheme  string  `toml:"color_scheme"`
	StopWords    string  `toml:"stop_words"`
	NoLowercase  bool    `toml:"no_lowercase"`
	Seed         uint64  `toml:"seed"`
	Budget       int     `toml:"budget"`
	RadiusFactor float64 `toml:"radius_factor"`
	Scale        float64 `toml:"scale"`
	AutoSize     bool    `toml:"auto_size"`
	Strict       bool    `toml:"strict"`
	Outlines     bool    `toml:"outlines"`
	NoCache      bool    `toml:"no_cache"`
}

// ServeConfig mirrors the serve flags.
type ServeConfig struct {
	Addr    string `toml:"addr"`
	Redis   string `toml:"redis"`
	Mongo   string `toml:"mongo"`
	MongoDB string `toml:"mongo_db"`
	NoCache bool   `toml:"no_cache"`
}

// loadConfig reads the config file at path. An empty path selects the
// default location, where a missing file yields the zero Config. Keys the
// file sets but Config does not know are an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// flagValues returns the set values keyed by flag name.
func (g GenerateConfig) flagValues() map[string]string {
	v := map[string]string{}
	setInt(v, "width", g.Width)
	setInt(v, "height", g.Height)
	setInt(v, "font-min", g.FontMin)
	setInt(v, "font-max", g.FontMax)
	setInt(v, "budget", g.Budget)
	setString(v, "bg-color", g.BgColor)
	setString(v, "color-scheme", g.ColorScheme)
	setString(v, "stop-words", g.StopWords)
	setBool(v, "no-lowercase", g.NoLowercase)
	setBool(v, "auto-size", g.AutoSize)
	setBool(v, "strict", g.Strict)
	setBool(v, "outlines", g.Outlines)
	setBool(v, "no-cache", g.NoCache)
	if g.Seed != 0 {
		v["seed"] = strconv.FormatUint(g.Seed, 10)
	}
	if g.Scale != 0 {
		v["scale"] = strconv.FormatFloat(g.Scale, 'g', -1, 64)
	}
	if g.RadiusFactor != 0 {
		v["radius-factor"] = strconv.FormatFloat(g.RadiusFactor, 'g', -1, 64)
	}
	return v
}

func (s ServeConfig) flagValues() map[string]string {
	v := map[string]string{}
	setString(v, "addr", s.Addr)
	setString(v, "redis", s.Redis)
	setString(v, "mongo", s.Mongo)
	setString(v, "mongo-db", s.MongoDB)
	setBool(v, "no-cache", s.NoCache)
	return v
}

func setInt(v map[string]string, name string, n int) {
	if n != 0 {
		v[name] = strconv.Itoa(n)
	}
}

func setString(v map[string]string, name, s string) {
	if s != "" {
		v[name] = s
	}
}

func setBool(v map[string]string, name string, b bool) {
	if b {
		v[name] = "true"
	}
}

// applyConfig copies config values into flags the user did not set.
// Names the flag set does not define are skipped.
func applyConfig(flags *pflag.FlagSet, values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := flags.Set(name, values[name]); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}
