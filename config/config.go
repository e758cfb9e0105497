package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/playarea"
)

const (
	configName = "invasion"
	configType = "toml"
	envPrefix  = "INVASION"
	appDirName = "space-invasion"
)

// AudioConfig toggles sound output
type AudioConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SpectateConfig holds the websocket spectator settings
type SpectateConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// GameConfig holds gameplay tuning
type GameConfig struct {
	Lives          int           `mapstructure:"lives"`
	BombDropChance float64       `mapstructure:"bombDropChance"`
	FastBombChance float64       `mapstructure:"fastBombChance"`
	FrameUnit      time.Duration `mapstructure:"frameUnit"`
	RespawnDelay   time.Duration `mapstructure:"respawnDelay"`
	UfoInterval    time.Duration `mapstructure:"ufoInterval"`
	MaxLevel       int           `mapstructure:"maxLevel"`
}

// LayoutConfig holds play area composition
type LayoutConfig struct {
	InvadersPerRow int `mapstructure:"invadersPerRow"`
	NumShields     int `mapstructure:"numShields"`
}

// Config is the resolved application configuration
type Config struct {
	Debug    bool           `mapstructure:"debug"`
	LogsDir  string         `mapstructure:"logsDir"`
	DataDir  string         `mapstructure:"dataDir"`
	Seed     uint64         `mapstructure:"seed"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Spectate SpectateConfig `mapstructure:"spectate"`
	Game     GameConfig     `mapstructure:"game"`
	Layout   LayoutConfig   `mapstructure:"layout"`

	// File is the config file that was read, empty when running on defaults
	File string `mapstructure:"-"`
}

// setDefaults registers every key so env overrides and Unmarshal see them
func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("logsDir", "./logs")
	v.SetDefault("dataDir", "./data")
	v.SetDefault("seed", 0)

	v.SetDefault("audio.enabled", true)

	v.SetDefault("spectate.enabled", false)
	v.SetDefault("spectate.addr", "127.0.0.1:8765")

	v.SetDefault("game.lives", parameter.StartingLives)
	v.SetDefault("game.bombDropChance", parameter.BombDropChance)
	v.SetDefault("game.fastBombChance", parameter.FastBombChance)
	v.SetDefault("game.frameUnit", parameter.FormationFrameUnit)
	v.SetDefault("game.respawnDelay", parameter.ShipRespawnDelay)
	v.SetDefault("game.ufoInterval", parameter.UfoSpawnInterval)
	v.SetDefault("game.maxLevel", parameter.MaxLevel)

	v.SetDefault("layout.invadersPerRow", parameter.InvadersPerRow)
	v.SetDefault("layout.numShields", parameter.NumShields)
}

// Load resolves configuration from defaults, an optional invasion.toml and INVASION_ env vars
// dir is searched first when not empty, then the working directory and the user config directory
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	if userDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(userDir, appDirName))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file or env override is present
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// defaults always decode
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate rejects settings the simulation cannot run with
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	g := c.Game
	check(g.Lives > 0, "game.lives must be positive, got %d", g.Lives)
	check(g.BombDropChance >= 0 && g.BombDropChance <= 1, "game.bombDropChance must be in [0,1], got %v", g.BombDropChance)
	check(g.FastBombChance >= 0 && g.FastBombChance <= 1, "game.fastBombChance must be in [0,1], got %v", g.FastBombChance)
	check(g.FrameUnit > 0, "game.frameUnit must be positive, got %v", g.FrameUnit)
	check(g.RespawnDelay > 0, "game.respawnDelay must be positive, got %v", g.RespawnDelay)
	check(g.UfoInterval > 0, "game.ufoInterval must be positive, got %v", g.UfoInterval)
	check(g.MaxLevel >= 0, "game.maxLevel must not be negative, got %d", g.MaxLevel)

	l := c.Layout
	check(l.InvadersPerRow > 0, "layout.invadersPerRow must be positive, got %d", l.InvadersPerRow)
	check(l.NumShields > 0, "layout.numShields must be positive, got %d", l.NumShields)
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	rowWidth := float64(l.InvadersPerRow-1)*parameter.InvaderCellWidth + parameter.InvaderWidth
	check(rowWidth <= parameter.InvadersMaxX-parameter.InvadersMinX,
		"layout.invadersPerRow %d does not fit the formation area", l.InvadersPerRow)
	check(float64(l.NumShields)*parameter.ShieldWidth <= parameter.PlayAreaWidth,
		"layout.numShields %d does not fit the play area", l.NumShields)

	start := formation.StartOffset(g.MaxLevel+1, l.InvadersPerRow, g.MaxLevel)
	bottom := start.Y - float64(parameter.InvaderRows-1)*parameter.InvaderCellHeight
	check(bottom > parameter.InvadersMinY,
		"game.maxLevel %d starts the formation already invaded", g.MaxLevel)

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Settings converts the config into play area tuning
func (c *Config) Settings() playarea.Settings {
	s := playarea.DefaultSettings()
	s.Formation.FrameUnit = c.Game.FrameUnit
	s.Formation.BombDropChance = c.Game.BombDropChance
	s.Formation.FastBombChance = c.Game.FastBombChance
	s.Formation.InvadersPerRow = c.Layout.InvadersPerRow
	s.Formation.MaxLevel = c.Game.MaxLevel
	s.Formation.Seed = c.Seed
	s.NumShields = c.Layout.NumShields
	s.RespawnDelay = c.Game.RespawnDelay
	s.UfoInterval = c.Game.UfoInterval
	return s
}
