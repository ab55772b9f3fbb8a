package event

// Queues collects the requests of one tick. The zero value is ready to use.
type Queues struct {
	hpMods  []HpModification
	areas   []AreaAttack
	effects []EffectSpawn
	sounds  []SoundSpawn
}

// Batch is a drained snapshot of the queues.
type Batch struct {
	HpModifications []HpModification `json:"hpModifications,omitempty"`
	AreaAttacks     []AreaAttack     `json:"areaAttacks,omitempty"`
	Effects         []EffectSpawn    `json:"effects,omitempty"`
	Sounds          []SoundSpawn     `json:"sounds,omitempty"`
}

// Empty reports whether the batch carries nothing.
func (b Batch) Empty() bool {
	return len(b.HpModifications) == 0 && len(b.AreaAttacks) == 0 &&
		len(b.Effects) == 0 && len(b.Sounds) == 0
}

func (q *Queues) PushHpModification(m HpModification) {
	q.hpMods = append(q.hpMods, m)
}

func (q *Queues) PushAreaAttack(a AreaAttack) {
	q.areas = append(q.areas, a)
}

func (q *Queues) PushEffect(e EffectSpawn) {
	q.effects = append(q.effects, e)
}

func (q *Queues) PushSound(s SoundSpawn) {
	q.sounds = append(q.sounds, s)
}

// HpModifications returns pending hp requests without draining them.
func (q *Queues) HpModifications() []HpModification { return q.hpMods }

// AreaAttacks returns pending area requests without draining them.
func (q *Queues) AreaAttacks() []AreaAttack { return q.areas }

// Effects returns pending effect spawns without draining them.
func (q *Queues) Effects() []EffectSpawn { return q.effects }

// Sounds returns pending sound spawns without draining them.
func (q *Queues) Sounds() []SoundSpawn { return q.sounds }

// Drain returns everything queued so far and empties the queues.
func (q *Queues) Drain() Batch {
	b := Batch{
		HpModifications: q.hpMods,
		AreaAttacks:     q.areas,
		Effects:         q.effects,
		Sounds:          q.sounds,
	}
	q.hpMods, q.areas, q.effects, q.sounds = nil, nil, nil, nil
	return b
}
