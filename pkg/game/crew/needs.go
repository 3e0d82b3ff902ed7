// Package crew models crew survival needs and which station modules serve them.
package crew

// NeedType is one of the tracked survival needs
type NeedType int

// Need types
const (
	Oxygen NeedType = iota
	Food
	Sleep
	Health
)

func (n NeedType) String() string {
	switch n {
	case Oxygen:
		return "Oxygen"
	case Food:
		return "Food"
	case Sleep:
		return "Sleep"
	case Health:
		return "Health"
	default:
		return "Unknown"
	}
}

const maxNeed = 100.0

// Rates holds depletion, replenishment and threshold tuning. Rates are per second.
type Rates struct {
	OxygenDepletion float64
	FoodDepletion   float64
	SleepDepletion  float64

	// InAtmosphereOxygenFactor scales oxygen loss while inside atmosphere
	InAtmosphereOxygenFactor float64

	HealthRegen          float64
	HealthLossFromOxygen float64
	HealthLossFromFood   float64
	OxygenReplenish      float64
	FoodReplenish        float64
	SleepReplenish       float64
	CriticalThreshold    float64
	LowThreshold         float64
}

// DefaultRates returns the standard crew tuning
func DefaultRates() Rates {
	return Rates{
		OxygenDepletion:          2.0,
		FoodDepletion:            0.5,
		SleepDepletion:           0.3,
		InAtmosphereOxygenFactor: 0.25,
		HealthRegen:              1.0,
		HealthLossFromOxygen:     5.0,
		HealthLossFromFood:       2.0,
		OxygenReplenish:          10.0,
		FoodReplenish:            5.0,
		SleepReplenish:           3.0,
		CriticalThreshold:        20.0,
		LowThreshold:             40.0,
	}
}

// Needs tracks one crew member's need meters, each in [0, 100]
type Needs struct {
	Oxygen float64
	Food   float64
	Sleep  float64
	Health float64

	Rates Rates

	InAtmosphere bool
	Alive        bool

	wasCritical map[NeedType]bool
}

// NewNeeds creates full meters with the given rates
func NewNeeds(rates Rates) *Needs {
	return &Needs{
		Oxygen:      maxNeed,
		Food:        maxNeed,
		Sleep:       maxNeed,
		Health:      maxNeed,
		Rates:       rates,
		Alive:       true,
		wasCritical: make(map[NeedType]bool),
	}
}

// TickResult reports transitions that happened during a tick
type TickResult struct {
	BecameCritical []NeedType
	Died           bool
}

// Tick depletes the needs, applies health effects and reports new critical
// needs and death. Dead crew do not change.
func (n *Needs) Tick(dt float64) TickResult {
	var res TickResult
	if !n.Alive {
		return res
	}

	oxygenLoss := n.Rates.OxygenDepletion
	if n.InAtmosphere {
		oxygenLoss *= n.Rates.InAtmosphereOxygenFactor
	}
	n.Oxygen = clamp(n.Oxygen - oxygenLoss*dt)
	n.Food = clamp(n.Food - n.Rates.FoodDepletion*dt)
	n.Sleep = clamp(n.Sleep - n.Rates.SleepDepletion*dt)

	for _, need := range []NeedType{Oxygen, Food, Sleep} {
		critical := n.IsCritical(need)
		if critical && !n.wasCritical[need] {
			res.BecameCritical = append(res.BecameCritical, need)
		}
		n.wasCritical[need] = critical
	}

	if n.IsCritical(Oxygen) {
		n.Health = clamp(n.Health - n.Rates.HealthLossFromOxygen*dt)
	}
	if n.IsCritical(Food) {
		n.Health = clamp(n.Health - n.Rates.HealthLossFromFood*dt)
	}
	if !n.HasAnyCritical() && n.Health < maxNeed {
		n.Health = clamp(n.Health + n.Rates.HealthRegen*dt)
	}

	if n.Health <= 0 {
		n.Alive = false
		res.Died = true
	}
	return res
}

// Value returns the current level of a need
func (n *Needs) Value(need NeedType) float64 {
	switch need {
	case Oxygen:
		return n.Oxygen
	case Food:
		return n.Food
	case Sleep:
		return n.Sleep
	case Health:
		return n.Health
	default:
		return 0
	}
}

// IsCritical returns true when the need is below the critical threshold
func (n *Needs) IsCritical(need NeedType) bool {
	return n.Value(need) < n.Rates.CriticalThreshold
}

// IsLow returns true when the need is below the low threshold
func (n *Needs) IsLow(need NeedType) bool {
	return n.Value(need) < n.Rates.LowThreshold
}

// HasAnyCritical returns true if oxygen, food or sleep is critical
func (n *Needs) HasAnyCritical() bool {
	return n.IsCritical(Oxygen) || n.IsCritical(Food) || n.IsCritical(Sleep)
}

// MostUrgent returns the first low need in oxygen, food, sleep order, or the
// lowest of the three when none is low
func (n *Needs) MostUrgent() NeedType {
	for _, need := range []NeedType{Oxygen, Food, Sleep} {
		if n.IsLow(need) {
			return need
		}
	}

	lowest := Oxygen
	for _, need := range []NeedType{Food, Sleep} {
		if n.Value(need) < n.Value(lowest) {
			lowest = need
		}
	}
	return lowest
}

// Replenish refills a need at its replenish rate for dt seconds
func (n *Needs) Replenish(need NeedType, dt float64) {
	switch need {
	case Oxygen:
		n.Oxygen = clamp(n.Oxygen + n.Rates.OxygenReplenish*dt)
	case Food:
		n.Food = clamp(n.Food + n.Rates.FoodReplenish*dt)
	case Sleep:
		n.Sleep = clamp(n.Sleep + n.Rates.SleepReplenish*dt)
	}
}

// Feed adds amount to the food meter
func (n *Needs) Feed(amount float64) {
	n.Food = clamp(n.Food + amount)
}

func clamp(v float64) float64 {
	return max(0, min(maxNeed, v))
}
