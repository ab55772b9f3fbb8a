package config

import (
	"fmt"
	"time"

	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/vmath"
)

// Simulation holds all configuration of the simulation server.
type Simulation struct {
	LogLevel     string        `yaml:"log_level"`
	TickDuration time.Duration `yaml:"tick_duration"`

	// MovementSpeed is how far a character with 100% walking speed walks
	// in one second, world units.
	MovementSpeed float64 `yaml:"movement_speed"`

	Attributes AttributesConfig `yaml:"attributes"`
	Sentinel   SentinelConfig   `yaml:"sentinel"`
	Skills     SkillsConfig     `yaml:"skills"`

	// Status snapshots (optional, needs database)
	PersistStatuses  bool           `yaml:"persist_statuses"`
	SnapshotInterval time.Duration  `yaml:"snapshot_interval"`
	Database         DatabaseConfig `yaml:"database"`

	Observer ObserverConfig `yaml:"observer"`
	Scenario Scenario       `yaml:"scenario"`
}

// AttributesConfig selects attribute composition policy.
type AttributesConfig struct {
	// PercentageStacking: "multiplicative" (default) or "additive".
	PercentageStacking string `yaml:"percentage_stacking"`
}

// Stacking parses PercentageStacking.
func (a AttributesConfig) Stacking() (attrib.Stacking, error) {
	return attrib.ParseStacking(a.PercentageStacking)
}

// SentinelConfig tunes turret AI.
type SentinelConfig struct {
	AttackRadius float64 `yaml:"attack_radius"`
}

// ObserverConfig configures the websocket tick stream.
type ObserverConfig struct {
	Enabled       bool          `yaml:"enabled"`
	BindAddress   string        `yaml:"bind_address"`
	Port          int           `yaml:"port"`
	SendQueueSize int           `yaml:"send_queue_size"` // per-client frame buffer
	WriteTimeout  time.Duration `yaml:"write_timeout"`
}

// Addr returns host:port.
func (o ObserverConfig) Addr() string {
	return fmt.Sprintf("%s:%d", o.BindAddress, o.Port)
}

// SkillsConfig holds per-skill parameters, resolved at cast time.
type SkillsConfig struct {
	Heal         HealConfig         `yaml:"heal"`
	Poison       PoisonConfig       `yaml:"poison"`
	PyroBlast    PyroBlastConfig    `yaml:"wiz_pyroblast"`
	ExoSkeleton  ExoSkeletonConfig  `yaml:"gaz_exo_skeleton"`
	Turret       TurretConfig       `yaml:"gaz_turret"`
	PoisonField  PoisonFieldConfig  `yaml:"poison_field"`
	Blessing     BlessingConfig     `yaml:"blessing"`
	FalconCarry  FalconCarryConfig  `yaml:"falcon_carry"`
	FalconAttack FalconAttackConfig `yaml:"falcon_attack"`
}

type HealConfig struct {
	Amount int32 `yaml:"amount"`
}

type PoisonConfig struct {
	Damage          int32   `yaml:"damage"`
	DurationSeconds float64 `yaml:"duration_seconds"`
	PeriodSeconds   float64 `yaml:"period_seconds"`
}

type PyroBlastConfig struct {
	Damage          int32   `yaml:"damage"`
	SecondaryDamage int32   `yaml:"secondary_damage"`
	SplashRadius    float64 `yaml:"splash_radius"`
	MovingSpeed     float64 `yaml:"moving_speed"`
	ArrivalDistance float64 `yaml:"arrival_distance"`
	BallSize        float64 `yaml:"ball_size"`
	// MarkerSeconds bounds the target marker in case the ball never lands.
	MarkerSeconds float64 `yaml:"marker_seconds"`
}

type ExoSkeletonConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	Armor           float64 `yaml:"armor"`
	WalkingSpeed    float64 `yaml:"walking_speed"`
	AttackRange     float64 `yaml:"attack_range"`
	AttackDamage    float64 `yaml:"attack_damage"`
	AttackSpeed     float64 `yaml:"attack_speed"`
	Bullet          string  `yaml:"bullet"`
}

type TurretConfig struct {
	Attributes  attrib.Attributes `yaml:"attributes"`
	SpawnRadius float64           `yaml:"spawn_radius"`
}

type PoisonFieldConfig struct {
	HalfExtents     vmath.Vec2 `yaml:"half_extents"`
	CooldownSeconds float64    `yaml:"cooldown_seconds"`
	LifetimeSeconds float64    `yaml:"lifetime_seconds"`
}

type BlessingConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	Channel         string  `yaml:"channel"`
	Type            string  `yaml:"type"` // ADD or PERCENT
	Value           float64 `yaml:"value"`
}

type FalconCarryConfig struct {
	OwnerDurationSeconds float64 `yaml:"owner_duration_seconds"`
	AllyDurationSeconds  float64 `yaml:"ally_duration_seconds"`
}

type FalconAttackConfig struct {
	DurationSeconds float64 `yaml:"duration_seconds"`
	Damage          int32   `yaml:"damage"`
	Radius          float64 `yaml:"radius"`
}

// Scenario describes what the server spawns at start and which casts it
// replays. Without a scenario the simulation runs an empty world.
type Scenario struct {
	Characters []ScenarioCharacter `yaml:"characters"`
	Companions []ScenarioCompanion `yaml:"companions"`
	Casts      []ScenarioCast      `yaml:"casts"`
}

type ScenarioCharacter struct {
	Name       string             `yaml:"name"`
	Team       string             `yaml:"team"`
	Pos        vmath.Vec2         `yaml:"pos"`
	Attributes *attrib.Attributes `yaml:"attributes"`
	// Controlled characters get a player controller entity.
	Controlled bool `yaml:"controlled"`
}

type ScenarioCompanion struct {
	Owner string `yaml:"owner"`
}

type ScenarioCast struct {
	AtSeconds float64     `yaml:"at"`
	Caster    string      `yaml:"caster"`
	Skill     string      `yaml:"skill"`
	Target    string      `yaml:"target"`
	Pos       *vmath.Vec2 `yaml:"pos"`
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:      "info",
		TickDuration:  33 * time.Millisecond,
		MovementSpeed: 5,
		Attributes: AttributesConfig{
			PercentageStacking: "multiplicative",
		},
		Sentinel: SentinelConfig{AttackRadius: 10},
		Skills: SkillsConfig{
			Heal: HealConfig{Amount: 200},
			Poison: PoisonConfig{
				Damage:          20,
				DurationSeconds: 3,
				PeriodSeconds:   1,
			},
			PyroBlast: PyroBlastConfig{
				Damage:          300,
				SecondaryDamage: 90,
				SplashRadius:    2,
				MovingSpeed:     5,
				ArrivalDistance: 2,
				BallSize:        1,
				MarkerSeconds:   10,
			},
			ExoSkeleton: ExoSkeletonConfig{
				DurationSeconds: 30,
				Armor:           50,
				WalkingSpeed:    -20,
				AttackRange:     200,
				AttackDamage:    30,
				AttackSpeed:     -30,
				Bullet:          "SilverBullet",
			},
			Turret: TurretConfig{
				Attributes: attrib.Attributes{
					MaxHP:        800,
					Armor:        10,
					WalkingSpeed: 0,
					AttackRange:  10,
					AttackDamage: 40,
					AttackSpeed:  100,
				},
				SpawnRadius: 1,
			},
			PoisonField: PoisonFieldConfig{
				HalfExtents:     vmath.V2(2, 2),
				CooldownSeconds: 2,
				LifetimeSeconds: 10,
			},
			Blessing: BlessingConfig{
				DurationSeconds: 15,
				Channel:         "armor",
				Type:            "ADD",
				Value:           20,
			},
			FalconCarry: FalconCarryConfig{
				OwnerDurationSeconds: 4,
				AllyDurationSeconds:  3,
			},
			FalconAttack: FalconAttackConfig{
				DurationSeconds: 0.5,
				Damage:          120,
				Radius:          1.5,
			},
		},
		SnapshotInterval: 30 * time.Second,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skillsim",
			Password: "skillsim",
			DBName:   "skillsim",
			SSLMode:  "disable",
		},
		Observer: ObserverConfig{
			Enabled:       true,
			BindAddress:   "127.0.0.1",
			Port:          8090,
			SendQueueSize: 64,
			WriteTimeout:  5 * time.Second,
		},
	}
}

// LoadSimulation loads the server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()
	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if _, err := cfg.Attributes.Stacking(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	if cfg.TickDuration <= 0 {
		return cfg, fmt.Errorf("validating config %s: tick_duration must be positive", path)
	}
	return cfg, nil
}
