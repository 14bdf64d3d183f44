package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/swarm/ecs/component"
)

// ErrConfig wraps every validation failure so callers can test for bad
// tables with errors.Is before a session starts.
var ErrConfig = errors.New("prefabs: invalid config")

type ProjectileSpec struct {
	Speed          float64 `yaml:"speed"`
	Damage         int     `yaml:"damage"`
	Radius         float64 `yaml:"radius"`
	CooldownFrames int     `yaml:"cooldown_frames"`
}

type MeleeSpec struct {
	Radius         float64 `yaml:"radius"`
	Damage         int     `yaml:"damage"`
	CooldownFrames int     `yaml:"cooldown_frames"`
	ConeDeg        float64 `yaml:"cone_deg"`
}

type DashSpec struct {
	Speed          float64 `yaml:"speed"`
	DurationFrames int     `yaml:"duration_frames"`
	CooldownFrames int     `yaml:"cooldown_frames"`
	IFrames        int     `yaml:"invulnerable_frames"`
}

type PlayerSpec struct {
	MaxHealth  int            `yaml:"max_health"`
	MoveSpeed  float64        `yaml:"move_speed"`
	Radius     float64        `yaml:"radius"`
	Projectile ProjectileSpec `yaml:"projectile"`
	Melee      MeleeSpec      `yaml:"melee"`
	Dash       DashSpec       `yaml:"dash"`
}

type PhaseSpec struct {
	Name           string  `yaml:"name"`
	DurationFrames int     `yaml:"duration_frames"`
	Move           string  `yaml:"move"`
	Speed          float64 `yaml:"speed"`
	Pattern        string  `yaml:"pattern"`
	CooldownFrames int     `yaml:"cooldown_frames"`
}

type DropSpec struct {
	Every  int    `yaml:"every"`
	Kind   string `yaml:"kind"`
	Amount int    `yaml:"amount"`
}

type EnemySpec struct {
	Health        int     `yaml:"health"`
	Speed         float64 `yaml:"speed"`
	Radius        float64 `yaml:"radius"`
	ContactDamage int     `yaml:"contact_damage"`
	Score         int     `yaml:"score"`
	XP            int     `yaml:"xp"`

	// Shooter.
	PreferredRange float64        `yaml:"preferred_range"`
	RangeBand      float64        `yaml:"range_band"`
	FireFrames     int            `yaml:"fire_frames"`
	Projectile     ProjectileSpec `yaml:"projectile"`

	// Bomber.
	DetonateRadius float64 `yaml:"detonate_radius"`
	DetonateDamage int     `yaml:"detonate_damage"`
	StunFrames     int     `yaml:"stun_frames"`

	// Bosses.
	Phases           []PhaseSpec `yaml:"phases"`
	EscalateFraction float64     `yaml:"escalate_fraction"`
	EscalatedPhases  []PhaseSpec `yaml:"escalated_phases"`

	Drop DropSpec `yaml:"drop"`
}

type WaveSpec struct {
	Composition   map[string]int `yaml:"composition"`
	CadenceFrames int            `yaml:"cadence_frames"`
	EnemyCap      int            `yaml:"enemy_cap"`
}

type LevelSpec struct {
	Name           string     `yaml:"name"`
	ScoreThreshold int        `yaml:"score_threshold"`
	Boss           string     `yaml:"boss"`
	Waves          []WaveSpec `yaml:"waves"`
}

type EffectSpec struct {
	MaxHealth          int     `yaml:"max_health"`
	ProjectileDamage   int     `yaml:"projectile_damage"`
	MeleeDamage        int     `yaml:"melee_damage"`
	FireFrames         int     `yaml:"fire_frames"`
	MeleeRadius        float64 `yaml:"melee_radius"`
	MoveSpeed          float64 `yaml:"move_speed"`
	DashCooldownFrames int     `yaml:"dash_cooldown_frames"`
}

type PerkSpec struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Effect      EffectSpec `yaml:"effect"`
}

type PerkTable struct {
	XPThresholds []int      `yaml:"xp_thresholds"`
	Perks        []PerkSpec `yaml:"perks"`
}

// Config bundles every table the engine needs for a session.
type Config struct {
	Player  PlayerSpec
	Enemies map[string]EnemySpec
	Levels  []LevelSpec
	Perks   PerkTable
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadConfig reads and validates all tables.
func LoadConfig() (*Config, error) {
	player, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	enemies, err := LoadSpec[map[string]EnemySpec]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	levels, err := LoadSpec[[]LevelSpec]("levels.yaml")
	if err != nil {
		return nil, err
	}
	perks, err := LoadSpec[PerkTable]("perks.yaml")
	if err != nil {
		return nil, err
	}

	cfg := &Config{Player: player, Enemies: enemies, Levels: levels, Perks: perks}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects tables the engine cannot run on. Every failure wraps
// ErrConfig.
func (c *Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
	}

	if c.Player.MaxHealth <= 0 {
		return fail("player max_health must be positive, got %d", c.Player.MaxHealth)
	}
	if c.Player.MoveSpeed <= 0 {
		return fail("player move_speed must be positive, got %v", c.Player.MoveSpeed)
	}
	if c.Player.Radius <= 0 {
		return fail("player radius must be positive, got %v", c.Player.Radius)
	}
	if c.Player.Projectile.CooldownFrames <= 0 || c.Player.Projectile.Damage <= 0 || c.Player.Projectile.Speed <= 0 {
		return fail("player projectile stats must be positive")
	}
	if c.Player.Melee.Radius <= 0 || c.Player.Melee.Damage <= 0 || c.Player.Melee.CooldownFrames <= 0 {
		return fail("player melee stats must be positive")
	}
	if c.Player.Dash.Speed <= 0 || c.Player.Dash.DurationFrames <= 0 || c.Player.Dash.CooldownFrames <= 0 {
		return fail("player dash stats must be positive")
	}
	if c.Player.Dash.IFrames > c.Player.Dash.DurationFrames {
		return fail("player dash invulnerable_frames (%d) must not outlast duration_frames (%d)",
			c.Player.Dash.IFrames, c.Player.Dash.DurationFrames)
	}

	for name, enemy := range c.Enemies {
		kind, ok := component.UnitKindByName(name)
		if !ok || !kind.Enemy() {
			return fail("unknown enemy kind %q", name)
		}
		if enemy.Health <= 0 {
			return fail("enemy %s health must be positive, got %d", name, enemy.Health)
		}
		if enemy.Speed < 0 {
			return fail("enemy %s speed must not be negative, got %v", name, enemy.Speed)
		}
		if enemy.Radius <= 0 {
			return fail("enemy %s radius must be positive, got %v", name, enemy.Radius)
		}
		if kind == component.KindBoss || kind == component.KindGiantBoss {
			if len(enemy.Phases) == 0 {
				return fail("boss %s needs at least one phase", name)
			}
			for _, tbl := range [][]PhaseSpec{enemy.Phases, enemy.EscalatedPhases} {
				for _, phase := range tbl {
					if phase.DurationFrames <= 0 {
						return fail("boss %s phase %q duration_frames must be positive", name, phase.Name)
					}
					switch phase.Move {
					case "approach", "strafe", "hold":
					default:
						return fail("boss %s phase %q has unknown move %q", name, phase.Name, phase.Move)
					}
					if phase.Pattern != "" && phase.CooldownFrames <= 0 {
						return fail("boss %s phase %q needs a positive cooldown for pattern %q", name, phase.Name, phase.Pattern)
					}
				}
			}
			if kind == component.KindGiantBoss {
				if enemy.EscalateFraction <= 0 || enemy.EscalateFraction >= 1 {
					return fail("giant boss escalate_fraction must be in (0, 1), got %v", enemy.EscalateFraction)
				}
				if len(enemy.EscalatedPhases) == 0 {
					return fail("giant boss needs escalated_phases")
				}
			}
		}
		if enemy.Drop.Every > 0 {
			switch enemy.Drop.Kind {
			case "health", "xp":
			default:
				return fail("enemy %s drop kind %q must be health or xp", name, enemy.Drop.Kind)
			}
			if enemy.Drop.Amount <= 0 {
				return fail("enemy %s drop amount must be positive", name)
			}
		}
	}

	if len(c.Levels) == 0 {
		return fail("at least one level is required")
	}
	for i, level := range c.Levels {
		if level.ScoreThreshold < 0 {
			return fail("level %d score_threshold must not be negative", i+1)
		}
		bossKind, ok := component.UnitKindByName(level.Boss)
		if !ok || (bossKind != component.KindBoss && bossKind != component.KindGiantBoss) {
			return fail("level %d has unknown boss kind %q", i+1, level.Boss)
		}
		if _, ok := c.Enemies[level.Boss]; !ok {
			return fail("level %d boss %q has no enemy table entry", i+1, level.Boss)
		}
		if len(level.Waves) == 0 {
			return fail("level %d needs at least one wave", i+1)
		}
		for j, wave := range level.Waves {
			if len(wave.Composition) == 0 {
				return fail("level %d wave %d has an empty composition", i+1, j+1)
			}
			for name, count := range wave.Composition {
				if _, ok := c.Enemies[name]; !ok {
					return fail("level %d wave %d references unknown enemy %q", i+1, j+1, name)
				}
				if count <= 0 {
					return fail("level %d wave %d count for %q must be positive", i+1, j+1, name)
				}
			}
			if wave.CadenceFrames <= 0 {
				return fail("level %d wave %d cadence_frames must be positive", i+1, j+1)
			}
			if wave.EnemyCap <= 0 {
				return fail("level %d wave %d enemy_cap must be positive", i+1, j+1)
			}
		}
	}

	if len(c.Perks.XPThresholds) == 0 {
		return fail("xp_thresholds must not be empty")
	}
	prev := 0
	for _, threshold := range c.Perks.XPThresholds {
		if threshold <= prev {
			return fail("xp_thresholds must be strictly increasing, got %v", c.Perks.XPThresholds)
		}
		prev = threshold
	}
	if len(c.Perks.Perks) == 0 {
		return fail("perk catalog must not be empty")
	}
	seen := make(map[string]bool, len(c.Perks.Perks))
	for _, perk := range c.Perks.Perks {
		if perk.ID == "" {
			return fail("perk id must not be empty")
		}
		if seen[perk.ID] {
			return fail("duplicate perk id %q", perk.ID)
		}
		seen[perk.ID] = true
	}

	return nil
}
