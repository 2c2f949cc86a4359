package mining

import (
	"math/rand"
	"testing"
)

func farmWithHashrate(h float64) *Farm {
	f := &Farm{ID: "f1", Name: "Test Site", LocationID: "usa", Status: Active, Mode: Legal, Energy: Grid}
	f.AddRig(Rig{Model: "test", Hashrate: h, Power: 3000})
	return f
}

func TestRewardsProRated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	f := farmWithHashrate(500000) // normalizes the hashrate term to 1 BTC/day

	rep := Rewards([]*Farm{f}, 1, 45000, 1440, rng)
	if rep.BTCMined < 0.8 || rep.BTCMined > 1.3 {
		t.Fatalf("full day at 500000 hashrate should mine 0.8-1.3 BTC, got %f", rep.BTCMined)
	}
	if rep.MaintenanceCost != 100 {
		t.Errorf("one farm for one day costs 100 maintenance, got %f", rep.MaintenanceCost)
	}

	half := Rewards([]*Farm{f}, 1, 45000, 720, rng)
	if half.BTCMined < 0.4 || half.BTCMined > 0.65 {
		t.Errorf("half day should mine roughly half, got %f", half.BTCMined)
	}
	if half.MaintenanceCost != 50 {
		t.Errorf("half day maintenance should be 50, got %f", half.MaintenanceCost)
	}
}

func TestRewardsSkipStoppedFarms(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	f := farmWithHashrate(500000)
	f.Status = Stopped

	rep := Rewards([]*Farm{f}, 1, 45000, 1440, rng)
	if rep.BTCMined != 0 {
		t.Errorf("stopped farm must mine nothing, got %f", rep.BTCMined)
	}
	if rep.MaintenanceCost != 100 {
		t.Errorf("stopped farm still pays maintenance, got %f", rep.MaintenanceCost)
	}
}

func TestModeBonusRaisesOutput(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	legal := farmWithHashrate(500000)
	illegal := farmWithHashrate(500000)
	illegal.Mode = Illegal

	// Same seed for both draws so only the mode bonus differs.
	a := Rewards([]*Farm{legal}, 1, 45000, 1440, rand.New(rand.NewSource(4)))
	b := Rewards([]*Farm{illegal}, 1, 45000, 1440, rand.New(rand.NewSource(4)))
	if b.BTCMined <= a.BTCMined {
		t.Errorf("illegal mode should out-mine legal: %f vs %f", b.BTCMined, a.BTCMined)
	}
	_ = rng
}

func TestPowerCost(t *testing.T) {
	f := farmWithHashrate(1)
	// 3kW for 10 hours at USA 0.12/kWh
	got := PowerCost(f, 600)
	want := 3.0 * 10 * 0.12
	if got != want {
		t.Errorf("power cost: got %f, want %f", got, want)
	}

	f.Energy = Solar
	if PowerCost(f, 600) != 0 {
		t.Error("solar power must cost nothing")
	}

	f.Status = Stopped
	f.Energy = Grid
	if PowerCost(f, 600) != 0 {
		t.Error("stopped farm draws no power")
	}
}

func TestUpdateDifficulty(t *testing.T) {
	if got := UpdateDifficulty(1.0, 45000); got != 1.0001 {
		t.Errorf("difficulty should drift up above 40000, got %f", got)
	}
	if got := UpdateDifficulty(1.0, 30000); got != 1.0 {
		t.Errorf("difficulty should hold below 40000, got %f", got)
	}
}

func TestSimulateDisastersStopsFarm(t *testing.T) {
	// Illegal + nuclear gives the highest risk multiplier; with enough
	// rolls a disaster is effectively certain.
	rng := rand.New(rand.NewSource(5))
	f := farmWithHashrate(10)
	f.Mode = Illegal
	f.Energy = Nuclear

	var hit []*Farm
	for i := 0; i < 100000 && len(hit) == 0; i++ {
		hit = SimulateDisasters([]*Farm{f}, rng)
	}
	if len(hit) != 1 {
		t.Fatal("expected a disaster within 100000 rolls at max risk")
	}
	if f.Status != Stopped || f.Disaster.Type == NoDisaster {
		t.Fatal("disaster must stop the farm and record the incident")
	}
	if f.Disaster.CostToFix != 5000+10*1000 {
		t.Errorf("repair cost should scale with hashrate, got %f", f.Disaster.CostToFix)
	}

	// A stopped farm with an open incident is skipped.
	if got := SimulateDisasters([]*Farm{f}, rng); len(got) != 0 {
		t.Error("farm already down must not be hit again")
	}
}

func TestRepair(t *testing.T) {
	f := farmWithHashrate(1)
	if Repair(f) != 0 {
		t.Fatal("healthy farm has nothing to repair")
	}

	f.Status = Stopped
	f.Disaster = Disaster{Type: Fire, CostToFix: 6000}
	if got := Repair(f); got != 6000 {
		t.Fatalf("repair should return the fix cost, got %f", got)
	}
	if f.Status != Active || f.Disaster.Type != NoDisaster {
		t.Fatal("repair must restart the farm and clear the incident")
	}
}
