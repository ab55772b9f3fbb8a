package skill

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
)

type blessingSkill struct{}

func (blessingSkill) Name() string           { return "blessing" }
func (blessingSkill) TargetType() TargetType { return OnlyAllyAndSelf }

// FinishCast applies the configured single-attribute buff. Without a target
// the caster blesses itself.
func (blessingSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	cfg := env.Skills.Blessing
	ch, ok := attrib.ParseChannel(cfg.Channel)
	if !ok {
		slog.Warn("blessing: unknown channel", "channel", cfg.Channel)
		return nil
	}
	kind, err := attrib.ParseModifierKind(cfg.Type)
	if err != nil {
		slog.Warn("blessing: bad modifier", "error", err)
		return nil
	}

	target := p.Target
	if !target.Valid() {
		target = p.Caster
	}
	env.Statuses.Enqueue(status.ApplyRequest{
		Source: p.Caster,
		Target: target,
		Status: status.NewStatModStatus(p.Caster, env.Now, cfg.DurationSeconds, ch, attrib.Modifier{Kind: kind, Value: cfg.Value}),
	})
	return nil
}
