package status

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
)

// Record is a persisted status: what is left of it and how to rebuild it.
type Record struct {
	Kind   Kind
	Caster model.EntityID
	// CasterName identifies the caster across restarts. Engine.Export leaves
	// it empty; the world owner fills it in.
	CasterName string
	Remaining  float64 // seconds
	Secondary  bool
	Params     map[string]string
}

// persistable is implemented by statuses that survive a snapshot.
type persistable interface {
	exportParams() map[string]string
}

// restorer rebuilds a status from a record at time now.
type restorer func(caster model.EntityID, now gametime.Time, remaining float64, params map[string]string) (Status, error)

// restorers is populated by init() below.
var restorers = map[Kind]restorer{}

// registerRestorer registers a record factory by kind.
func registerRestorer(kind Kind, r restorer) {
	restorers[kind] = r
}

// RestoreStatus creates a status from a record.
// Returns error if the kind is not persistable or params are malformed.
func RestoreStatus(rec Record, now gametime.Time) (Status, error) {
	r, ok := restorers[rec.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown persisted status kind: %s", rec.Kind)
	}
	s, err := r(rec.Caster, now, rec.Remaining, rec.Params)
	if err != nil {
		return nil, fmt.Errorf("restoring %s: %w", rec.Kind, err)
	}
	return s, nil
}

// Export snapshots every persistable status of target. Expired statuses and
// non-persistable kinds (markers, carries) are skipped.
func (e *Engine) Export(target model.EntityID, now gametime.Time) []Record {
	var out []Record
	for _, en := range e.active[target] {
		p, ok := en.status.(persistable)
		if !ok || en.status.Until().HasAlreadyPassed(now) {
			continue
		}
		out = append(out, Record{
			Kind:      en.status.Kind(),
			Caster:    en.status.Caster(),
			Remaining: en.status.Until().ElapsedSince(now),
			Secondary: en.secondary,
			Params:    p.exportParams(),
		})
	}
	return out
}

// Restore enqueues statuses rebuilt from records for target. Records that
// fail to restore are skipped and returned as a joined error.
func (e *Engine) Restore(target model.EntityID, records []Record, now gametime.Time) error {
	var errs []error
	for _, rec := range records {
		s, err := RestoreStatus(rec, now)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		e.Enqueue(ApplyRequest{
			Source:    rec.Caster,
			Target:    target,
			Status:    s,
			Secondary: rec.Secondary,
		})
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore statuses: %w", errors.Join(errs...))
	}
	return nil
}

func init() {
	registerRestorer(KindExoSkeleton, restoreExoSkeleton)
	registerRestorer(KindPoison, restorePoison)
	registerRestorer(KindStatMod, restoreStatMod)
}

func restoreExoSkeleton(caster model.EntityID, now gametime.Time, remaining float64, params map[string]string) (Status, error) {
	var bonus ExoSkeletonBonus
	var err error
	fields := []struct {
		key string
		dst *float64
	}{
		{"armor", &bonus.Armor},
		{"walking_speed", &bonus.WalkingSpeed},
		{"attack_range", &bonus.AttackRange},
		{"attack_damage", &bonus.AttackDamage},
		{"attack_speed", &bonus.AttackSpeed},
	}
	for _, f := range fields {
		if *f.dst, err = parseFloat(params, f.key); err != nil {
			return nil, err
		}
	}
	return NewExoSkeletonStatus(caster, now, remaining, bonus, params["bullet"]), nil
}

func restorePoison(caster model.EntityID, now gametime.Time, remaining float64, params map[string]string) (Status, error) {
	damage, err := strconv.ParseInt(params["damage"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("damage: %w", err)
	}
	period, err := parseFloat(params, "period")
	if err != nil {
		return nil, err
	}
	return NewPoisonStatus(caster, now, remaining, int32(damage), period), nil
}

func restoreStatMod(caster model.EntityID, now gametime.Time, remaining float64, params map[string]string) (Status, error) {
	ch, ok := attrib.ParseChannel(params["channel"])
	if !ok {
		return nil, fmt.Errorf("unknown channel %q", params["channel"])
	}
	kind, err := attrib.ParseModifierKind(params["type"])
	if err != nil {
		return nil, err
	}
	value, err := parseFloat(params, "value")
	if err != nil {
		return nil, err
	}
	return NewStatModStatus(caster, now, remaining, ch, attrib.Modifier{Kind: kind, Value: value}), nil
}

func parseFloat(params map[string]string, key string) (float64, error) {
	v, err := strconv.ParseFloat(params[key], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatInt(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}
