package trail

// MemberStatus values. Anything other than "dead" counts as living for
// targeting and consumption purposes.
const (
	StatusWell = "well"
	StatusDead = "dead"
)

type PartyMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Age    int    `json:"age,omitempty"`
	Health int    `json:"health"`
	Status string `json:"status"`
}

func (m *PartyMember) Alive() bool {
	return m.Status != StatusDead
}

// Buff is a named multiplier active until (and including) UntilDay.
type Buff struct {
	Mult     float64 `json:"mult"`
	UntilDay int     `json:"until_day"`
}

// WeatherToday is the cached result of the daily weather roll.
type WeatherToday struct {
	Day   int          `json:"day"`
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Emoji string       `json:"emoji"`
	Blurb string       `json:"blurb,omitempty"`
	Mods  WeatherMods  `json:"mods"`
}

type WeatherMods struct {
	SpeedMult   float64 `json:"speed_mult"`
	HealthDelta int     `json:"health_delta"`
	HungerMult  float64 `json:"hunger_mult"`
}

// ConditionInstance is one active status condition on the party.
type ConditionInstance struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Emoji         string           `json:"emoji"`
	Kind          string           `json:"kind"`
	DaysRemaining int              `json:"days_remaining"`
	Effects       ConditionEffects `json:"effects"`
	Blurb         string           `json:"blurb,omitempty"`
}

type ConditionEffects struct {
	SpeedMult          float64 `json:"speed_mult"`
	HungerMult         float64 `json:"hunger_mult"`
	HealthChancePerDay float64 `json:"health_chance_per_day"`
}

type ConditionHistory struct {
	LastEndDay int `json:"last_end_day"`
}

type WeatherState struct {
	Today         *WeatherToday `json:"today,omitempty"`
	LastRolledDay int           `json:"last_rolled_day"`
}

type StatusState struct {
	Conditions []ConditionInstance         `json:"conditions"`
	History    map[string]ConditionHistory `json:"history,omitempty"`
}

// Pace and rations settings.
const (
	PaceSteady    = "steady"
	PaceStrenuous = "strenuous"
	PaceGrueling  = "grueling"

	RationsMeager   = "meager"
	RationsNormal   = "normal"
	RationsGenerous = "generous"
)

const (
	HealthMax = 5
	MoraleMin = -5
	MoraleMax = 5
)

// Session is the full mutable state of one playthrough. It is owned by
// the orchestrating caller and passed by reference into every engine
// call; the engine never keeps a pointer past a call.
type Session struct {
	SlotID string `json:"slot_id"`

	Seed uint32 `json:"seed"`
	RNG  *RNG   `json:"-"`

	Day       int                `json:"day"`
	Miles     float64            `json:"miles"`
	Money     float64            `json:"money"`
	Morale    int                `json:"morale"`
	Pace      string             `json:"pace"`
	Rations   string             `json:"rations"`
	Inventory map[string]float64 `json:"inventory"`
	Party     []PartyMember      `json:"party"`
	Flags     map[string]any     `json:"flags,omitempty"`
	Log       []string           `json:"log"`
	Buffs     map[string]Buff    `json:"buffs,omitempty"`
	Weather   WeatherState       `json:"weather"`
	Status    StatusState        `json:"status"`
	Hazards   map[string]*HazardState `json:"hazards,omitempty"`
	Epitaphs  map[string]string  `json:"epitaphs,omitempty"`

	Version int64 `json:"version"`
}

// RNGState reports the generator position for persistence. The seed is
// kept separately for provenance; the state is what resume uses.
func (s *Session) RNGState() uint32 {
	if s.RNG == nil {
		return s.Seed
	}
	return s.RNG.State()
}

func (s *Session) Logf(line string) {
	s.Log = append(s.Log, line)
}

func (s *Session) SetFlag(key string, value any) {
	if s.Flags == nil {
		s.Flags = map[string]any{}
	}
	s.Flags[key] = value
}

func (s *Session) ClearFlag(key string) {
	delete(s.Flags, key)
}

func (s *Session) FlagSet(key string) bool {
	if s.Flags == nil {
		return false
	}
	v, ok := s.Flags[key]
	if !ok {
		return false
	}
	if b, isBool := v.(bool); isBool {
		return b
	}
	return true
}

func (s *Session) Item(item string) float64 {
	if s.Inventory == nil {
		return 0
	}
	return s.Inventory[item]
}

// AddItem adjusts a resource by delta, flooring at zero. It returns the
// amount actually applied, which is smaller than |delta| when a spend
// would have gone negative.
func (s *Session) AddItem(item string, delta float64) float64 {
	if item == "" {
		return 0
	}
	if s.Inventory == nil {
		s.Inventory = map[string]float64{}
	}
	current := s.Inventory[item]
	next := current + delta
	if next < 0 {
		next = 0
	}
	s.Inventory[item] = next
	return next - current
}

// ConsumeItem removes up to amount of item, returning what was taken.
func (s *Session) ConsumeItem(item string, amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return -s.AddItem(item, -amount)
}

func (s *Session) AddMoney(delta float64) {
	s.Money += delta
	if s.Money < 0 {
		s.Money = 0
	}
}

func (s *Session) AddMorale(delta int) {
	s.Morale += delta
	if s.Morale > MoraleMax {
		s.Morale = MoraleMax
	}
	if s.Morale < MoraleMin {
		s.Morale = MoraleMin
	}
}

// AliveMembers returns pointers into the party slice; death is a status
// flip, members are never removed from the list.
func (s *Session) AliveMembers() []*PartyMember {
	out := make([]*PartyMember, 0, len(s.Party))
	for i := range s.Party {
		if s.Party[i].Alive() {
			out = append(out, &s.Party[i])
		}
	}
	return out
}

func (s *Session) MemberByID(id string) *PartyMember {
	for i := range s.Party {
		if s.Party[i].ID == id {
			return &s.Party[i]
		}
	}
	return nil
}

// ApplyHealthDelta clamps into [0, HealthMax] and flips a member that
// bottoms out to dead. Dead members are never touched.
func (m *PartyMember) ApplyHealthDelta(delta int) {
	if !m.Alive() {
		return
	}
	m.Health += delta
	if m.Health > HealthMax {
		m.Health = HealthMax
	}
	if m.Health <= 0 {
		m.Health = 0
		m.Status = StatusDead
	}
}

// ActiveBuffMult multiplies every buff still in force on day.
func (s *Session) ActiveBuffMult(day int) float64 {
	mult := 1.0
	for _, b := range s.Buffs {
		if b.UntilDay >= day && b.Mult > 0 {
			mult *= b.Mult
		}
	}
	return mult
}

func (s *Session) SetBuff(key string, mult float64, untilDay int) {
	if s.Buffs == nil {
		s.Buffs = map[string]Buff{}
	}
	s.Buffs[key] = Buff{Mult: mult, UntilDay: untilDay}
}

func (s *Session) SetEpitaph(memberID, text string) {
	if s.Epitaphs == nil {
		s.Epitaphs = map[string]string{}
	}
	s.Epitaphs[memberID] = text
}
