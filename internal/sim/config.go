package sim

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full tuning of a game. Zero values are not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	Arena            ArenaConfig         `yaml:"arena"`
	MoveTimeLimit    float64             `yaml:"move_time_limit"`    // seconds per move
	UltimateTimeRate float64             `yaml:"ultimate_time_rate"` // move timer drain factor while ulting
	FadeTime         float64             `yaml:"fade_time"`          // seconds for a full fade
	Interpolation    InterpolationConfig `yaml:"interpolation"`
	ExpPerLevel      int                 `yaml:"exp_per_level"`
	SlotThresholds   []int               `yaml:"slot_thresholds"` // ascending score thresholds
	Ultimate         UltimateConfig      `yaml:"ultimate"`
	RotateAttacks    bool                `yaml:"rotate_attacks"` // random quarter turns at game start
	InitialAttacks   []AttackConfig      `yaml:"initial_attacks"`
	PotentialAttacks []AttackConfig      `yaml:"potential_attacks"`
	Spawning         SpawnConfig         `yaml:"spawning"`
	Upgrades         UpgradesConfig      `yaml:"upgrades"`
}

type ArenaConfig struct {
	Min [2]int `yaml:"min"`
	Max [2]int `yaml:"max"`
}

func (a ArenaConfig) Bounds() Bounds {
	return NewBounds(Pos(a.Min[0], a.Min[1]), Pos(a.Max[0], a.Max[1]))
}

type InterpolationConfig struct {
	MaxTime  float64 `yaml:"max_time"`
	MinSpeed float64 `yaml:"min_speed"`
}

type UltimateConfig struct {
	Cooldown      int  `yaml:"cooldown"`
	Radius        int  `yaml:"radius"`
	IncludeOrigin bool `yaml:"include_origin"`
}

// AttackConfig is an upgrade chain, lowest tier first.
type AttackConfig struct {
	Tiers []TierConfig `yaml:"tiers"`
}

type TierConfig struct {
	Cooldown int      `yaml:"cooldown"`
	Pattern  [][2]int `yaml:"pattern"`
}

type SpawnConfig struct {
	KillDecay   float64                `yaml:"kill_decay"`   // cooldown fraction removed per kill
	MinCooldown int                    `yaml:"min_cooldown"` // floor for refreshed cooldowns
	Enemies     map[string]EnemyConfig `yaml:"enemies"`      // keyed by enemy type name
}

type EnemyConfig struct {
	Movement      string          `yaml:"movement"`
	MinScore      int             `yaml:"min_score"`
	FirstSpawn    int             `yaml:"first_spawn"`
	Color         string          `yaml:"color"` // #rrggbb
	Cooldowns     map[int]float64 `yaml:"cooldowns"`
	LargeCooldown float64         `yaml:"large_cooldown"`
	Disabled      bool            `yaml:"disabled"`
}

type UpgradesConfig struct {
	MoveTimeBonus        float64                  `yaml:"move_time_bonus"`
	AttackCooldownFactor float64                  `yaml:"attack_cooldown_factor"`
	AttackCooldownFloor  int                      `yaml:"attack_cooldown_floor"`
	Items                map[string]UpgradeConfig `yaml:"items"` // keyed by upgrade type name
}

type UpgradeConfig struct {
	Max      int  `yaml:"max"`
	MinScore int  `yaml:"min_score"` // global upgrades only
	Disabled bool `yaml:"disabled"`
}

// LoadConfig reads a YAML file over DefaultConfig. Top-level sections that
// are present replace their defaults; map entries replace the entry of the
// same name whole.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks every value a State depends on.
func (c Config) Validate() error {
	var problems []string
	bad := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Arena.Min[0] > c.Arena.Max[0] || c.Arena.Min[1] > c.Arena.Max[1] {
		bad("arena min %v exceeds max %v", c.Arena.Min, c.Arena.Max)
	}
	if c.MoveTimeLimit <= 0 {
		bad("move_time_limit must be > 0")
	}
	if c.UltimateTimeRate < 0 {
		bad("ultimate_time_rate must be >= 0")
	}
	if c.FadeTime <= 0 {
		bad("fade_time must be > 0")
	}
	if c.ExpPerLevel < 1 {
		bad("exp_per_level must be >= 1")
	}
	if !sort.IntsAreSorted(c.SlotThresholds) {
		bad("slot_thresholds must be ascending")
	}
	if c.Ultimate.Cooldown < 1 || c.Ultimate.Radius < 0 {
		bad("ultimate needs cooldown >= 1 and radius >= 0")
	}
	if len(c.InitialAttacks) == 0 {
		bad("at least one initial attack is required")
	}
	for i, a := range c.InitialAttacks {
		validateAttack(bad, "initial_attacks", i, a)
	}
	for i, a := range c.PotentialAttacks {
		validateAttack(bad, "potential_attacks", i, a)
	}
	if c.Spawning.MinCooldown < 1 {
		bad("spawning.min_cooldown must be >= 1")
	}
	for name, e := range c.Spawning.Enemies {
		if _, err := ParseEnemyType(name); err != nil {
			bad("spawning.enemies: %v", err)
		}
		if _, err := ParseMovementKind(e.Movement); err != nil {
			bad("spawning.enemies.%s: %v", name, err)
		}
		if _, err := parseHexColor(e.Color); err != nil {
			bad("spawning.enemies.%s: %v", name, err)
		}
		if e.FirstSpawn < 1 {
			bad("spawning.enemies.%s: first_spawn must be >= 1", name)
		}
	}
	f := c.Upgrades.AttackCooldownFactor
	if f <= 0 || f > 1 {
		bad("upgrades.attack_cooldown_factor must be in (0, 1]")
	}
	for name := range c.Upgrades.Items {
		if _, err := ParseUpgradeType(name); err != nil {
			bad("upgrades.items: %v", err)
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func validateAttack(bad func(string, ...any), section string, i int, a AttackConfig) {
	if len(a.Tiers) == 0 {
		bad("%s[%d]: no tiers", section, i)
	}
	for j, t := range a.Tiers {
		if t.Cooldown < 1 {
			bad("%s[%d].tiers[%d]: cooldown must be >= 1", section, i, j)
		}
		if len(t.Pattern) == 0 {
			bad("%s[%d].tiers[%d]: empty pattern", section, i, j)
		}
	}
}

// --- Builders ---

func (a AttackConfig) build() *Attack {
	tiers := make([]AttackTier, len(a.Tiers))
	for i, t := range a.Tiers {
		pattern := make([]Position, len(t.Pattern))
		for j, p := range t.Pattern {
			pattern[j] = Pos(p[0], p[1])
		}
		tiers[i] = AttackTier{Cooldown: t.Cooldown, Pattern: pattern}
	}
	return NewAttack(tiers...)
}

func (c Config) buildPrefabs() [enemyTypeCount]*SpawnPrefab {
	var out [enemyTypeCount]*SpawnPrefab
	for name, e := range c.Spawning.Enemies {
		t, err := ParseEnemyType(name)
		if err != nil || e.Disabled {
			continue
		}
		kind, _ := ParseMovementKind(e.Movement)
		col, _ := parseHexColor(e.Color)
		cooldowns := make(map[int]float64, len(e.Cooldowns))
		for k, v := range e.Cooldowns {
			cooldowns[k] = v
		}
		out[t] = &SpawnPrefab{
			Movement:      Movement{Kind: kind},
			MinScore:      e.MinScore,
			NextSpawn:     e.FirstSpawn,
			Color:         col,
			Cooldowns:     cooldowns,
			LargeCooldown: e.LargeCooldown,
		}
	}
	return out
}

func (c Config) buildUpgrades() [upgradeTypeCount]*Upgrade {
	var out [upgradeTypeCount]*Upgrade
	for name, item := range c.Upgrades.Items {
		t, err := ParseUpgradeType(name)
		if err != nil || item.Disabled {
			continue
		}
		u := &Upgrade{Type: t}
		if t.PerAttack() {
			u.SlotMax = item.Max
		} else {
			u.Info = UpgradeInfo{Max: item.Max}
			u.Requirement = Requirement{Kind: RequireScore, Value: item.MinScore}
		}
		out[t] = u
	}
	return out
}

func parseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
