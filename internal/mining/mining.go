// Package mining implements the mining-farm economy: hashrate-driven BTC
// rewards, operating costs, network difficulty drift, and the disaster
// table that can knock a farm offline.
package mining

import (
	"math"
	"math/rand"
)

// FarmStatus is a farm's operating state.
type FarmStatus uint8

const (
	Active FarmStatus = iota
	Stopped
)

func (s FarmStatus) String() string {
	if s == Stopped {
		return "STOPPED"
	}
	return "ACTIVE"
}

// Mode is the farm's legal posture: shadier modes mine more per hash and
// carry a larger disaster risk multiplier.
type Mode uint8

const (
	Legal Mode = iota
	Offshore
	Illegal
)

func (m Mode) String() string {
	switch m {
	case Offshore:
		return "OFFSHORE"
	case Illegal:
		return "ILLEGAL"
	default:
		return "LEGAL"
	}
}

// OutputBonus is the hashrate multiplier the mode earns.
func (m Mode) OutputBonus() float64 {
	switch m {
	case Offshore:
		return 1.3
	case Illegal:
		return 1.75
	default:
		return 1.0
	}
}

func (m Mode) riskMultiplier() float64 {
	switch m {
	case Offshore:
		return 2.0
	case Illegal:
		return 5.0
	default:
		return 1.0
	}
}

// EnergySource is how a farm is powered.
type EnergySource uint8

const (
	Grid EnergySource = iota
	Solar
	Nuclear
)

func (e EnergySource) String() string {
	switch e {
	case Solar:
		return "SOLAR"
	case Nuclear:
		return "NUCLEAR"
	default:
		return "GRID"
	}
}

// CostPerKwh returns the effective electricity rate given the location's
// grid rate. Solar is free after capex; nuclear runs at a flat token rate.
func (e EnergySource) CostPerKwh(gridRate float64) float64 {
	switch e {
	case Solar:
		return 0
	case Nuclear:
		return 0.01
	default:
		return gridRate
	}
}

// DisasterType names what went wrong at a farm.
type DisasterType uint8

const (
	NoDisaster DisasterType = iota
	Fire
	Flood
	Raid
	Radiation
)

func (d DisasterType) String() string {
	switch d {
	case Fire:
		return "FIRE"
	case Flood:
		return "FLOOD"
	case Raid:
		return "RAID"
	case Radiation:
		return "RADIATION"
	default:
		return "NONE"
	}
}

// Disaster is an outstanding incident on a farm.
type Disaster struct {
	Type      DisasterType
	CostToFix float64
}

// Rig is one installed mining unit.
type Rig struct {
	Model    string
	Hashrate float64 // EH/s-scaled game units
	Power    float64 // watts
}

// Farm is one mining site. TotalHashrate and TotalPower are maintained as
// rigs are added rather than summed on read.
type Farm struct {
	ID            string
	Name          string
	LocationID    string
	Rigs          []Rig
	TotalHashrate float64
	TotalPower    float64
	Status        FarmStatus
	Mode          Mode
	Energy        EnergySource
	Disaster      Disaster
}

// AddRig installs a rig and folds it into the farm totals.
func (f *Farm) AddRig(r Rig) {
	f.Rigs = append(f.Rigs, r)
	f.TotalHashrate += r.Hashrate
	f.TotalPower += r.Power
}

// Location is a country a farm can be built in.
type Location struct {
	ID      string
	Name    string
	CostKwh float64
}

// Locations returns the buildable mining locations.
func Locations() []Location {
	return []Location{
		{"usa", "USA (Texas)", 0.12},
		{"germany", "Germany", 0.35},
		{"elsalvador", "El Salvador", 0.05},
		{"china", "China (Underground)", 0.04},
		{"iceland", "Iceland", 0.06},
	}
}

// LocationByID looks up a location; unknown ids get a 0.10 grid rate.
func LocationByID(id string) Location {
	for _, l := range Locations() {
		if l.ID == id {
			return l
		}
	}
	return Location{ID: id, CostKwh: 0.10}
}

// RigCatalog lists the purchasable rig models.
func RigCatalog() []struct {
	Model    string
	Hashrate float64
	Power    float64
	Cost     float64
} {
	return []struct {
		Model    string
		Hashrate float64
		Power    float64
		Cost     float64
	}{
		{"Nvidia Rig X8", 0.0005, 1200, 3500},
		{"Antminer S19", 0.1, 3250, 1500},
		{"Antminer S21", 0.2, 3500, 4500},
		{"Helium IoT Miner", 0.01, 15, 500},
		{"Hydro Immersive X", 0.5, 4000, 12000},
		{"Micro Reactor Core", 2.5, 5000, 150000},
		{"Starlink Sat Miner", 10.0, 0, 2500000},
		{"Quantum Miner X", 50.0, 8000, 5000000},
	}
}

// RewardReport is one pro-rated mining period.
type RewardReport struct {
	BTCMined        float64
	PowerUsage      float64
	MaintenanceCost float64
	MineTokens      float64
}

// dailyMaintenancePerFarm is a flat upkeep charge regardless of status.
const dailyMaintenancePerFarm = 100

// Rewards computes one period of mining output. Daily BTC is
// hashrate/500000 scaled by a uniform 0.8–1.3 luck draw, pro-rated by the
// elapsed fraction of a day; stopped farms contribute nothing but still
// incur maintenance.
func Rewards(farms []*Farm, networkDifficulty, btcPrice, gameMinutes float64, rng *rand.Rand) RewardReport {
	totalHashrate, totalPower := 0.0, 0.0
	for _, f := range farms {
		if f.Status != Active {
			continue
		}
		totalHashrate += f.TotalHashrate * f.Mode.OutputBonus()
		totalPower += f.TotalPower
	}

	fraction := gameMinutes / 1440
	dailyReward := (totalHashrate / 500000) * (rng.Float64()*0.5 + 0.8)
	return RewardReport{
		BTCMined:        dailyReward * fraction,
		PowerUsage:      totalPower,
		MaintenanceCost: float64(len(farms)) * dailyMaintenancePerFarm * fraction,
		MineTokens:      totalHashrate * fraction,
	}
}

// PowerCost prices a farm's electricity for the elapsed game minutes.
func PowerCost(f *Farm, gameMinutes float64) float64 {
	if f.Status != Active {
		return 0
	}
	rate := f.Energy.CostPerKwh(LocationByID(f.LocationID).CostKwh)
	hours := gameMinutes / 60
	return (f.TotalPower / 1000) * hours * rate
}

// UpdateDifficulty drifts network difficulty upward while BTC holds above
// the profitability threshold.
func UpdateDifficulty(current, btcPrice float64) float64 {
	if btcPrice > 40000 {
		return current * 1.0001
	}
	return current
}

type disasterSpec struct {
	kind   DisasterType
	chance float64
}

var disasterTable = []disasterSpec{
	{Fire, 0.0001},
	{Flood, 0.00005},
	{Raid, 0.00002},
	{Radiation, 0.00005},
}

// SimulateDisasters rolls each active farm against the disaster table,
// scaled by the mode's risk multiplier (nuclear power adds another 1.5x).
// A hit stops the farm and prices a repair at 5000 + hashrate×1000.
// Returns the farms that went down this roll.
func SimulateDisasters(farms []*Farm, rng *rand.Rand) []*Farm {
	var hit []*Farm
	for _, f := range farms {
		if f.Status == Stopped && f.Disaster.Type != NoDisaster {
			continue
		}
		risk := f.Mode.riskMultiplier()
		if f.Energy == Nuclear {
			risk *= 1.5
		}

		roll := rng.Float64()
		for _, spec := range disasterTable {
			if roll < spec.chance*risk {
				cost := math.Floor(5000 + f.TotalHashrate*1000)
				f.Status = Stopped
				f.Disaster = Disaster{Type: spec.kind, CostToFix: cost}
				hit = append(hit, f)
				break
			}
		}
	}
	return hit
}

// Repair clears a stopped farm's disaster and restarts it. Returns the
// repair cost, or 0 when there is nothing to fix.
func Repair(f *Farm) float64 {
	if f.Status != Stopped || f.Disaster.Type == NoDisaster {
		return 0
	}
	cost := f.Disaster.CostToFix
	f.Status = Active
	f.Disaster = Disaster{}
	return cost
}
