package trail

import (
	"fmt"
	"math"
)

// HuntOptions tunes one hunting session. Zero values take defaults.
type HuntOptions struct {
	DurationMs     int     `json:"duration_ms"`
	SpawnMinMs     int     `json:"spawn_min_ms"`
	SpawnMaxMs     int     `json:"spawn_max_ms"`
	ShotCooldownMs int     `json:"shot_cooldown_ms"`
	CarryCapLb     float64 `json:"carry_cap_lb"`
	FieldW         float64 `json:"field_w"`
	FieldH         float64 `json:"field_h"`
}

func (o *HuntOptions) defaults() {
	if o.DurationMs <= 0 {
		o.DurationMs = 30000
	}
	if o.SpawnMinMs <= 0 {
		o.SpawnMinMs = 800
	}
	if o.SpawnMaxMs <= o.SpawnMinMs {
		o.SpawnMaxMs = o.SpawnMinMs + 1700
	}
	if o.ShotCooldownMs <= 0 {
		o.ShotCooldownMs = 600
	}
	if o.CarryCapLb <= 0 {
		o.CarryCapLb = 100
	}
	if o.FieldW <= 0 {
		o.FieldW = 800
	}
	if o.FieldH <= 0 {
		o.FieldH = 450
	}
}

const spoilChance = 0.15
const spoilFraction = 0.25

// HuntCreature is one animal in flight across the field. Position is a
// pure function of the session clock, so rendering never needs extra
// state.
type HuntCreature struct {
	ID        int        `json:"id"`
	Spec      AnimalSpec `json:"spec"`
	SpawnedMs int        `json:"spawned_ms"`
	StartX    float64    `json:"start_x"`
	BaseY     float64    `json:"base_y"`
	Dir       float64    `json:"dir"`
	BobPhase  float64    `json:"bob_phase"`
}

// PosAt returns the creature's center at a session clock value: linear
// horizontal travel with a small sinusoidal bob.
func (c *HuntCreature) PosAt(clockMs int) (x, y float64) {
	t := float64(clockMs-c.SpawnedMs) / 1000.0
	x = c.StartX + c.Dir*c.Spec.Speed*t
	y = c.BaseY + 8*math.Sin(2*math.Pi*0.8*t+c.BobPhase)
	return x, y
}

// HuntSession is a fixed-duration shooting session. The clock is
// integer milliseconds accumulated from caller-supplied Update deltas;
// no wall-clock source is consulted, so outcomes depend only on RNG
// draw order and the caller's inputs.
type HuntSession struct {
	engine  *Engine
	session *Session
	opts    HuntOptions

	clockMs     int
	nextSpawnMs int
	nextID      int
	lastShotMs  int
	ended       bool

	Creatures []*HuntCreature `json:"creatures"`
	ShotsHit  int             `json:"shots_hit"`
	ShotsMiss int             `json:"shots_miss"`
	MeatTotal float64         `json:"meat_total"`
}

// HuntResult is the end-of-session accounting: carried meat capped at
// the weight limit, the excess spoiled, both whole pounds.
type HuntResult struct {
	MeatTotal int `json:"meat_total"`
	MeatTaken int `json:"meat_taken"`
	Spoiled   int `json:"spoiled"`
}

// NewHuntSession starts a session against the shared RNG stream.
func (e *Engine) NewHuntSession(s *Session, opts HuntOptions) *HuntSession {
	opts.defaults()
	h := &HuntSession{
		engine:     e,
		session:    s,
		opts:       opts,
		lastShotMs: -opts.ShotCooldownMs,
	}
	h.nextSpawnMs = s.RNG.IntBetween(opts.SpawnMinMs, opts.SpawnMaxMs)
	return h
}

func (h *HuntSession) ClockMs() int { return h.clockMs }

func (h *HuntSession) Over() bool { return h.ended || h.clockMs >= h.opts.DurationMs }

func (h *HuntSession) RemainingMs() int {
	if r := h.opts.DurationMs - h.clockMs; r > 0 && !h.ended {
		return r
	}
	return 0
}

// Update advances the session clock by dtMs, spawning any creature
// whose scheduled time has come and culling those that left the field.
func (h *HuntSession) Update(dtMs int) {
	if h.Over() || dtMs <= 0 {
		return
	}
	h.clockMs += dtMs
	if h.clockMs > h.opts.DurationMs {
		h.clockMs = h.opts.DurationMs
	}

	for h.nextSpawnMs <= h.clockMs {
		h.spawn(h.nextSpawnMs)
		h.nextSpawnMs += h.session.RNG.IntBetween(h.opts.SpawnMinMs, h.opts.SpawnMaxMs)
	}

	alive := h.Creatures[:0]
	for _, c := range h.Creatures {
		x, _ := c.PosAt(h.clockMs)
		margin := c.Spec.BoxW
		if x >= -margin && x <= h.opts.FieldW+margin {
			alive = append(alive, c)
		}
	}
	h.Creatures = alive
}

func (h *HuntSession) spawn(atMs int) {
	rng := h.session.RNG
	animals := h.engine.catalogs.Animals
	weights := make([]int, len(animals))
	for i, a := range animals {
		weights[i] = a.Weight
	}
	idx := weightedIndex(rng, weights)
	if idx < 0 {
		return
	}
	spec := animals[idx]

	dir := 1.0
	startX := -spec.BoxW
	if rng.Chance(0.5) {
		dir = -1.0
		startX = h.opts.FieldW + spec.BoxW
	}
	h.nextID++
	h.Creatures = append(h.Creatures, &HuntCreature{
		ID:        h.nextID,
		Spec:      spec,
		SpawnedMs: atMs,
		StartX:    startX,
		BaseY:     rng.FloatBetween(40, h.opts.FieldH-40),
		Dir:       dir,
		BobPhase:  rng.FloatBetween(0, 2*math.Pi),
	})
}

// Shoot fires at a field coordinate. It is hard-gated on bullets and on
// the shot cooldown window; on a hit the smallest bounding box under
// the aim point wins ties.
func (h *HuntSession) Shoot(x, y float64) bool {
	if h.Over() {
		return false
	}
	if h.session.Item(ItemBullets) < 1 {
		return false
	}
	if h.clockMs-h.lastShotMs < h.opts.ShotCooldownMs {
		return false
	}
	h.lastShotMs = h.clockMs
	h.session.ConsumeItem(ItemBullets, 1)

	var hit *HuntCreature
	hitIdx := -1
	bestArea := math.MaxFloat64
	for i, c := range h.Creatures {
		cx, cy := c.PosAt(h.clockMs)
		if math.Abs(x-cx) <= c.Spec.BoxW/2 && math.Abs(y-cy) <= c.Spec.BoxH/2 {
			area := c.Spec.BoxW * c.Spec.BoxH
			if area < bestArea {
				bestArea = area
				hit = c
				hitIdx = i
			}
		}
	}
	if hit == nil {
		h.ShotsMiss++
		return false
	}

	h.Creatures = append(h.Creatures[:hitIdx], h.Creatures[hitIdx+1:]...)
	h.ShotsHit++
	yield := hit.Spec.YieldLb
	if h.session.RNG.Chance(spoilChance) {
		yield *= 1 - spoilFraction
	}
	h.MeatTotal += yield
	return true
}

// End closes the session (early ending keeps accumulated yield), splits
// the total into carried and spoiled, and banks the carried meat.
func (h *HuntSession) End() HuntResult {
	if h.ended {
		return h.result()
	}
	h.ended = true

	res := h.result()
	if res.MeatTaken > 0 {
		h.session.AddItem(ItemFood, float64(res.MeatTaken))
	}
	line := fmt.Sprintf("🎯 The hunt brings in %d lb of meat.", res.MeatTaken)
	if res.Spoiled > 0 {
		line += fmt.Sprintf(" %d lb spoils before you can pack it.", res.Spoiled)
	}
	h.session.Logf(line)
	return res
}

func (h *HuntSession) result() HuntResult {
	total := int(roundHalfUp(h.MeatTotal))
	taken := total
	capLb := int(h.opts.CarryCapLb)
	if taken > capLb {
		taken = capLb
	}
	return HuntResult{
		MeatTotal: total,
		MeatTaken: taken,
		Spoiled:   total - taken,
	}
}
