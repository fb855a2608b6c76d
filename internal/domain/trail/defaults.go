package trail

// Built-in fallback tables. The static catalog adapter substitutes
// these whenever an authored file is missing or unparsable, so the
// engine always has something to roll against.

var defaultStatusTuning = StatusTuning{
	BaseDailyChance: 0.18,
	MaxConcurrent:   2,
}

var defaultWeather = []WeatherPattern{
	{ID: "clear", Name: "Clear skies", Emoji: "☀️", Weight: 40, Blurb: "A fine day for the trail.", Mods: WeatherMods{SpeedMult: 1.0, HealthDelta: 0, HungerMult: 1.0}},
	{ID: "overcast", Name: "Overcast", Emoji: "☁️", Weight: 20, Blurb: "Grey but dry.", Mods: WeatherMods{SpeedMult: 1.0, HealthDelta: 0, HungerMult: 1.0}},
	{ID: "rain", Name: "Steady rain", Emoji: "🌧️", Weight: 15, Blurb: "The ruts fill with water.", Mods: WeatherMods{SpeedMult: 0.8, HealthDelta: 0, HungerMult: 1.0}},
	{ID: "storm", Name: "Thunderstorm", Emoji: "⛈️", Weight: 8, Blurb: "Lightning spooks the oxen.", Mods: WeatherMods{SpeedMult: 0.6, HealthDelta: -1, HungerMult: 1.0}},
	{ID: "heat", Name: "Scorching heat", Emoji: "🥵", Weight: 8, Blurb: "The water barrels run low.", Mods: WeatherMods{SpeedMult: 0.85, HealthDelta: 0, HungerMult: 1.2}},
	{ID: "snow", Name: "Snow", Emoji: "🌨️", Weight: 6, Blurb: "Wet flakes slow the wheels.", Mods: WeatherMods{SpeedMult: 0.65, HealthDelta: 0, HungerMult: 1.1}},
	{ID: "blizzard", Name: "Blizzard", Emoji: "❄️", Weight: 3, Blurb: "You can barely see the lead ox.", Mods: WeatherMods{SpeedMult: 0.35, HealthDelta: -1, HungerMult: 1.25}},
}

var defaultConditions = []ConditionDef{
	{ID: "dysentery", Name: "Dysentery", Emoji: "🤢", Kind: "disease", Weight: 25, Duration: DayRange{Min: 3, Max: 6}, Trigger: ConditionTrigger{MinDay: 3, CooldownDays: 10}, Effects: ConditionEffects{SpeedMult: 0.85, HungerMult: 1.1, HealthChancePerDay: 0.35}, Blurb: "The camp kettle was not boiled long enough."},
	{ID: "cholera", Name: "Cholera", Emoji: "🦠", Kind: "disease", Weight: 10, Duration: DayRange{Min: 4, Max: 8}, Trigger: ConditionTrigger{MinDay: 10, CooldownDays: 20}, Effects: ConditionEffects{SpeedMult: 0.7, HungerMult: 1.2, HealthChancePerDay: 0.5}, Blurb: "Bad water at the last crossing."},
	{ID: "fever", Name: "Trail fever", Emoji: "🤒", Kind: "disease", Weight: 25, Duration: DayRange{Min: 2, Max: 5}, Trigger: ConditionTrigger{MinDay: 2, CooldownDays: 7}, Effects: ConditionEffects{SpeedMult: 0.9, HungerMult: 1.0, HealthChancePerDay: 0.25}, Blurb: "Chills by night, sweats by day."},
	{ID: "snakebite", Name: "Snakebite", Emoji: "🐍", Kind: "injury", Weight: 12, Duration: DayRange{Min: 2, Max: 4}, Trigger: ConditionTrigger{MinDay: 1, CooldownDays: 14}, Effects: ConditionEffects{SpeedMult: 0.8, HungerMult: 1.0, HealthChancePerDay: 0.3}, Blurb: "It was sunning itself under the wagon."},
	{ID: "sprain", Name: "Sprained ankle", Emoji: "🦶", Kind: "injury", Weight: 20, Duration: DayRange{Min: 2, Max: 4}, Trigger: ConditionTrigger{MinDay: 1, CooldownDays: 5}, Effects: ConditionEffects{SpeedMult: 0.85, HungerMult: 1.0, HealthChancePerDay: 0.1}, Blurb: "A gopher hole in the dark."},
	{ID: "exhaustion", Name: "Exhaustion", Emoji: "😮‍💨", Kind: "fatigue", Weight: 18, Duration: DayRange{Min: 1, Max: 3}, Trigger: ConditionTrigger{MinDay: 5, CooldownDays: 4}, Effects: ConditionEffects{SpeedMult: 0.8, HungerMult: 1.15, HealthChancePerDay: 0.15}, Blurb: "Too many grueling days in a row."},
}

var defaultEvents = []EventDef{
	{
		ID: "broken-wheel", Title: "A wheel cracks on a rock", Weight: 20,
		When: EventWhen{DayGte: 2},
		Stages: []EventStage{
			{
				ID:   "start",
				Text: "The rear wheel splits with a crack like a rifle shot.",
				Choices: []EventChoice{
					{ID: "repair", Label: "Fit the spare wheel", Requires: &ChoiceRequires{Inventory: map[string]float64{ItemWheel: 1}}, Goto: "end", Effects: []Effect{
						{Type: EffectInventory, Item: ItemWheel, Delta: -1},
						{Type: EffectTime, Days: 1},
					}},
					{ID: "limp", Label: "Limp on without repair", Goto: "end", Effects: []Effect{
						{Type: EffectRiskBuff, Key: "limping", Mult: 0.8, Days: 3},
						{Type: EffectMorale, Delta: -1},
					}},
				},
			},
		},
	},
	{
		ID: "wild-berries", Title: "Berry thicket by the trail", Weight: 15,
		When: EventWhen{MileGte: 30},
		Stages: []EventStage{
			{
				ID:   "start",
				Text: "{child} spots a thicket heavy with ripe berries.",
				Choices: []EventChoice{
					{ID: "gather", Label: "Stop and gather", Goto: "end", Effects: []Effect{
						{Type: EffectRoll, Options: []RollOption{
							{Weight: 7, Effects: []Effect{{Type: EffectInventory, Item: ItemFood, Delta: 8}, {Type: EffectMorale, Delta: 1}}, Log: "The berries are sweet and plentiful."},
							{Weight: 3, Effects: []Effect{{Type: EffectHealth, Delta: -1, Target: "child"}}, Log: "Some of the berries were not berries at all."},
						}},
					}},
					{ID: "pass", Label: "Keep moving", Goto: "end"},
				},
			},
		},
	},
	{
		ID: "trading-post", Title: "A trader hails your wagon", Weight: 12,
		When: EventWhen{DayGte: 4},
		Stages: []EventStage{
			{
				ID:   "start",
				Text: "A trader offers salted meat at a fair price.",
				Choices: []EventChoice{
					{ID: "buy", Label: "Buy 20 lb of food ($8)", Requires: &ChoiceRequires{MoneyGte: 8}, Goto: "end", Effects: []Effect{
						{Type: EffectMoney, Delta: -8},
						{Type: EffectInventory, Item: ItemFood, Delta: 20},
					}},
					{ID: "decline", Label: "Decline politely", Goto: "end"},
				},
			},
		},
	},
	{
		ID: "oxen-stray", Title: "The oxen stray in the night", Weight: 14,
		When: EventWhen{DayGte: 3},
		Stages: []EventStage{
			{
				ID:   "start",
				Text: "At dawn the picket line hangs loose and two oxen are gone.",
				Choices: []EventChoice{
					{ID: "search", Label: "Spend the morning searching", Goto: "found", Effects: []Effect{
						{Type: EffectTime, Days: 1},
					}},
					{ID: "press-on", Label: "Press on without them", Goto: "end", Effects: []Effect{
						{Type: EffectRiskBuff, Key: "short-team", Mult: 0.85, Days: 5},
					}},
				},
			},
			{
				ID:   "found",
				Text: "You find them grazing in a draw two miles back.",
				Choices: []EventChoice{
					{ID: "continue", Label: "Yoke up and move out", Goto: "end", Effects: []Effect{
						{Type: EffectDistance, Miles: -2},
					}},
				},
			},
		},
	},
}

var defaultAnimals = []AnimalSpec{
	{ID: "rabbit", Name: "Rabbit", Emoji: "🐇", Weight: 35, Speed: 140, YieldLb: 2, BoxW: 28, BoxH: 20},
	{ID: "squirrel", Name: "Squirrel", Emoji: "🐿️", Weight: 25, Speed: 120, YieldLb: 1, BoxW: 22, BoxH: 16},
	{ID: "deer", Name: "Deer", Emoji: "🦌", Weight: 20, Speed: 90, YieldLb: 35, BoxW: 60, BoxH: 44},
	{ID: "bison", Name: "Bison", Emoji: "🦬", Weight: 10, Speed: 55, YieldLb: 250, BoxW: 90, BoxH: 60},
	{ID: "bear", Name: "Bear", Emoji: "🐻", Weight: 10, Speed: 70, YieldLb: 100, BoxW: 70, BoxH: 50},
}

var defaultLandmarks = []Landmark{
	{ID: "kaw-river", Name: "Kaw River Crossing", Mile: 102, Hazard: &HazardParams{
		Kind: HazardRiver, DepthFt: 3.5, WidthFt: 620, Current: CurrentModerate,
	}},
	{ID: "mud-flats", Name: "Big Muddy Flats", Mile: 260, Hazard: &HazardParams{
		Kind: HazardMud, Badness: 0.7,
	}},
	{ID: "goose-bend", Name: "Goose Bend", Mile: 410, Hazard: &HazardParams{
		Kind: HazardGeese, Flock: 220,
	}},
	{ID: "beaver-creek", Name: "Beaver Creek Washout", Mile: 540, Hazard: &HazardParams{
		Kind: HazardBeaver, GapFt: 9,
	}},
	{ID: "laramie-pass", Name: "Laramie Pass", Mile: 700, Hazard: &HazardParams{
		Kind: HazardSnow, DriftFt: 2.5,
	}},
	{ID: "fort-hope", Name: "Fort Hope", Mile: 850},
}

// DefaultCatalogs returns a fresh copy of every built-in table so a
// caller can never mutate the package-level source.
func DefaultCatalogs() Catalogs {
	c := Catalogs{
		Weather:    append([]WeatherPattern(nil), defaultWeather...),
		Conditions: append([]ConditionDef(nil), defaultConditions...),
		Tuning:     defaultStatusTuning,
		Events:     append([]EventDef(nil), defaultEvents...),
		Animals:    append([]AnimalSpec(nil), defaultAnimals...),
	}
	c.Validate()
	return c
}

// DefaultLandmarks returns a fresh copy of the built-in route.
func DefaultLandmarks() []Landmark {
	out := make([]Landmark, len(defaultLandmarks))
	for i, lm := range defaultLandmarks {
		out[i] = lm
		if lm.Hazard != nil {
			p := *lm.Hazard
			out[i].Hazard = &p
		}
	}
	return out
}
