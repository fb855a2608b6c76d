package trail

import "fmt"

// StartingMember describes one party member at new-game time.
type StartingMember struct {
	Name string `json:"name" yaml:"name"`
	Role string `json:"role" yaml:"role"`
	Age  int    `json:"age" yaml:"age"`
}

var defaultParty = []StartingMember{
	{Name: "Clara", Role: "adult", Age: 34},
	{Name: "Eli", Role: "adult", Age: 36},
	{Name: "June", Role: "child", Age: 9},
	{Name: "Thomas", Role: "child", Age: 7},
	{Name: "Baby Rose", Role: "infant", Age: 1},
	{Name: "Grandpa Amos", Role: "elder", Age: 67},
}

// NewSession builds a fresh playthrough. The seed is the only
// non-deterministic input; everything after this point draws from the
// session's own RNG stream.
func NewSession(slotID string, seed uint32, party []StartingMember) *Session {
	if len(party) == 0 {
		party = defaultParty
	}
	members := make([]PartyMember, 0, len(party))
	for i, p := range party {
		members = append(members, PartyMember{
			ID:     memberID(i),
			Name:   p.Name,
			Role:   p.Role,
			Age:    p.Age,
			Health: HealthMax,
			Status: StatusWell,
		})
	}
	return &Session{
		SlotID:  slotID,
		Seed:    seed,
		RNG:     NewRNG(seed),
		Day:     1,
		Money:   120,
		Pace:    PaceSteady,
		Rations: RationsNormal,
		Inventory: map[string]float64{
			ItemFood:     200,
			ItemBullets:  60,
			ItemClothes:  4,
			ItemMedicine: 3,
			ItemWheel:    1,
			ItemAxle:     1,
			ItemTongue:   1,
		},
		Party:   members,
		Log:     []string{"The wagon rolls out at first light."},
		Version: 1,
	}
}

func memberID(i int) string {
	return fmt.Sprintf("m%d", i+1)
}
