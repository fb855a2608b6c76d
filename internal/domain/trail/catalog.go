package trail

// Catalog types are immutable once loaded. The engine receives one
// Catalogs bundle at construction and never reads a package-level
// cache, so independent sessions (and tests) never share table state.

type WeatherPattern struct {
	ID     string      `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name"`
	Emoji  string      `json:"emoji" yaml:"emoji"`
	Weight int         `json:"weight" yaml:"weight"`
	Blurb  string      `json:"blurb" yaml:"blurb"`
	Mods   WeatherMods `json:"mods" yaml:"mods"`
}

type ConditionTrigger struct {
	MinDay       int `json:"min_day" yaml:"min_day"`
	CooldownDays int `json:"cooldown_days" yaml:"cooldown_days"`
}

type DayRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

type ConditionDef struct {
	ID       string           `json:"id" yaml:"id"`
	Name     string           `json:"name" yaml:"name"`
	Emoji    string           `json:"emoji" yaml:"emoji"`
	Kind     string           `json:"kind" yaml:"kind"`
	Weight   int              `json:"weight" yaml:"weight"`
	Duration DayRange         `json:"duration" yaml:"duration"`
	Trigger  ConditionTrigger `json:"trigger" yaml:"trigger"`
	Effects  ConditionEffects `json:"effects" yaml:"effects"`
	Blurb    string           `json:"blurb" yaml:"blurb"`
}

type StatusTuning struct {
	BaseDailyChance float64 `json:"base_daily_chance" yaml:"base_daily_chance"`
	MaxConcurrent   int     `json:"max_concurrent" yaml:"max_concurrent"`
}

// EventWhen gates event eligibility. Zero values mean "no constraint";
// Max fields use 0 as unbounded.
type EventWhen struct {
	DayGte         int      `json:"day_gte" yaml:"day_gte"`
	DayLte         int      `json:"day_lte" yaml:"day_lte"`
	MileGte        float64  `json:"mile_gte" yaml:"mile_gte"`
	MileLte        float64  `json:"mile_lte" yaml:"mile_lte"`
	RequiredFlags  []string `json:"required_flags" yaml:"required_flags"`
	ForbiddenFlags []string `json:"forbidden_flags" yaml:"forbidden_flags"`
	FoodLte        float64  `json:"food_lte" yaml:"food_lte"`
	BulletsGte     float64  `json:"bullets_gte" yaml:"bullets_gte"`
	MedicineGte    float64  `json:"medicine_gte" yaml:"medicine_gte"`
}

// ChoiceRequires gates a single choice. Inventory maps item id to a
// minimum quantity.
type ChoiceRequires struct {
	MoneyGte  float64            `json:"money_gte" yaml:"money_gte"`
	Inventory map[string]float64 `json:"inventory" yaml:"inventory"`
}

type EventChoice struct {
	ID       string          `json:"id" yaml:"id"`
	Label    string          `json:"label" yaml:"label"`
	Requires *ChoiceRequires `json:"requires" yaml:"requires"`
	Goto     string          `json:"goto" yaml:"goto"`
	Effects  []Effect        `json:"effects" yaml:"effects"`
}

type EventStage struct {
	ID      string        `json:"id" yaml:"id"`
	Text    string        `json:"text" yaml:"text"`
	Choices []EventChoice `json:"choices" yaml:"choices"`
}

type EventDef struct {
	ID     string       `json:"id" yaml:"id"`
	Title  string       `json:"title" yaml:"title"`
	Weight int          `json:"weight" yaml:"weight"`
	When   EventWhen    `json:"when" yaml:"when"`
	Stages []EventStage `json:"stages" yaml:"stages"`
}

// Effect is one entry in a choice's effect list. Type selects the
// branch; the other fields are per-type parameters. Unknown types are
// logged and skipped rather than failing the whole event.
type Effect struct {
	Type   EffectType `json:"type" yaml:"type"`
	Item   string     `json:"item" yaml:"item"`
	Delta  float64    `json:"delta" yaml:"delta"`
	Target string     `json:"target" yaml:"target"`
	Status string     `json:"status" yaml:"status"`
	Days   int        `json:"days" yaml:"days"`
	Miles  float64    `json:"miles" yaml:"miles"`
	Key    string     `json:"key" yaml:"key"`
	Value  any        `json:"value" yaml:"value"`
	Mult   float64    `json:"mult" yaml:"mult"`
	Reason string     `json:"reason" yaml:"reason"`
	// Options is only read by EffectRoll.
	Options []RollOption `json:"options" yaml:"options"`
}

type EffectType string

const (
	EffectInventory EffectType = "inventory"
	EffectMoney     EffectType = "money"
	EffectHealth    EffectType = "health"
	EffectStatus    EffectType = "status"
	EffectTime      EffectType = "time"
	EffectDistance  EffectType = "distance"
	EffectMapFlag   EffectType = "mapFlag"
	EffectRiskBuff  EffectType = "riskBuff"
	EffectMorale    EffectType = "morale"
	EffectMortality EffectType = "mortality"
	EffectRoll      EffectType = "roll"
)

type RollOption struct {
	Weight  int      `json:"weight" yaml:"weight"`
	Effects []Effect `json:"effects" yaml:"effects"`
	Log     string   `json:"log" yaml:"log"`
}

type AnimalSpec struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Emoji   string  `json:"emoji" yaml:"emoji"`
	Weight  int     `json:"weight" yaml:"weight"`
	Speed   float64 `json:"speed" yaml:"speed"`
	YieldLb float64 `json:"yield_lb" yaml:"yield_lb"`
	BoxW    float64 `json:"box_w" yaml:"box_w"`
	BoxH    float64 `json:"box_h" yaml:"box_h"`
}

// Catalogs is the full immutable table bundle the engine runs on.
type Catalogs struct {
	Weather    []WeatherPattern
	Conditions []ConditionDef
	Tuning     StatusTuning
	Events     []EventDef
	Animals    []AnimalSpec
}

// Validate fills defaults so a partially authored bundle still plays:
// non-positive weights become 1, missing multipliers become identity,
// and tuning falls back to the built-in values.
func (c *Catalogs) Validate() {
	for i := range c.Weather {
		if c.Weather[i].Weight <= 0 {
			c.Weather[i].Weight = 1
		}
		if c.Weather[i].Mods.SpeedMult == 0 {
			c.Weather[i].Mods.SpeedMult = 1
		}
		if c.Weather[i].Mods.HungerMult == 0 {
			c.Weather[i].Mods.HungerMult = 1
		}
	}
	for i := range c.Conditions {
		if c.Conditions[i].Weight <= 0 {
			c.Conditions[i].Weight = 1
		}
		if c.Conditions[i].Effects.SpeedMult == 0 {
			c.Conditions[i].Effects.SpeedMult = 1
		}
		if c.Conditions[i].Effects.HungerMult == 0 {
			c.Conditions[i].Effects.HungerMult = 1
		}
		if c.Conditions[i].Duration.Min <= 0 {
			c.Conditions[i].Duration.Min = 1
		}
		if c.Conditions[i].Duration.Max < c.Conditions[i].Duration.Min {
			c.Conditions[i].Duration.Max = c.Conditions[i].Duration.Min
		}
	}
	for i := range c.Events {
		if c.Events[i].Weight <= 0 {
			c.Events[i].Weight = 1
		}
	}
	for i := range c.Animals {
		if c.Animals[i].Weight <= 0 {
			c.Animals[i].Weight = 1
		}
	}
	if c.Tuning.BaseDailyChance <= 0 {
		c.Tuning.BaseDailyChance = defaultStatusTuning.BaseDailyChance
	}
	if c.Tuning.MaxConcurrent <= 0 {
		c.Tuning.MaxConcurrent = defaultStatusTuning.MaxConcurrent
	}
}
