package model

import (
	"errors"
	"testing"
	"time"
)

func newCar(t *testing.T) *Vehicle {
	t.Helper()
	v, err := NewVehicle(KindCar, "Fusca", "azul", 0)
	if err != nil {
		t.Fatalf("NewVehicle error: %v", err)
	}
	return v
}

func newSports(t *testing.T) *Vehicle {
	t.Helper()
	v, err := NewVehicle(KindSports, "Ferrari", "vermelha", 0)
	if err != nil {
		t.Fatalf("NewVehicle error: %v", err)
	}
	return v
}

func newTruck(t *testing.T, capacity float64) *Vehicle {
	t.Helper()
	v, err := NewVehicle(KindTruck, "Scania", "branca", capacity)
	if err != nil {
		t.Fatalf("NewVehicle error: %v", err)
	}
	return v
}

func TestNewVehicleValidation(t *testing.T) {
	if _, err := NewVehicle(KindCar, "", "azul", 0); !errors.Is(err, ErrEmptyModel) {
		t.Fatalf("expected ErrEmptyModel, got %v", err)
	}
	if _, err := NewVehicle(KindCar, "Fusca", "", 0); !errors.Is(err, ErrEmptyColor) {
		t.Fatalf("expected ErrEmptyColor, got %v", err)
	}
	if _, err := NewVehicle(KindTruck, "Scania", "branca", 0); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
	if _, err := NewVehicle("moto", "CB500", "preta", 0); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}

	a := newCar(t)
	b := newCar(t)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("vehicle ids must be unique and non-empty, got %q and %q", a.ID, b.ID)
	}
}

func TestCarAccelerateCapsAtMaxSpeed(t *testing.T) {
	v := newCar(t)

	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := v.Accelerate(200); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if v.Speed != 180 {
		t.Fatalf("Speed = %v, want 180", v.Speed)
	}
}

func TestAccelerateRequiresRunning(t *testing.T) {
	v := newCar(t)

	if err := v.Accelerate(10); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if v.Speed != 0 {
		t.Fatalf("Speed = %v, want 0", v.Speed)
	}
}

func TestIgnitionStateMachine(t *testing.T) {
	v := newCar(t)

	if err := v.TurnOff(); !errors.Is(err, ErrAlreadyStopped) {
		t.Fatalf("expected ErrAlreadyStopped, got %v", err)
	}
	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := v.TurnOn(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	if err := v.Accelerate(30); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if err := v.TurnOff(); !errors.Is(err, ErrStopBeforeOff) {
		t.Fatalf("expected ErrStopBeforeOff, got %v", err)
	}

	if _, err := v.Brake(30); err != nil {
		t.Fatalf("Brake error: %v", err)
	}
	if err := v.TurnOff(); err != nil {
		t.Fatalf("TurnOff error: %v", err)
	}
	if v.IsRunning {
		t.Fatalf("vehicle must be off")
	}
}

func TestBrakeNeverBelowZero(t *testing.T) {
	v := newCar(t)
	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := v.Accelerate(25); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}

	stopped, err := v.Brake(10)
	if err != nil || stopped {
		t.Fatalf("Brake = (%v, %v), want (false, nil)", stopped, err)
	}
	if v.Speed != 15 {
		t.Fatalf("Speed = %v, want 15", v.Speed)
	}

	stopped, err = v.Brake(100)
	if err != nil || !stopped {
		t.Fatalf("Brake = (%v, %v), want (true, nil)", stopped, err)
	}
	if v.Speed != 0 {
		t.Fatalf("Speed = %v, want 0", v.Speed)
	}

	// Повторное торможение на месте не считается остановкой.
	stopped, err = v.Brake(10)
	if err != nil || stopped {
		t.Fatalf("Brake at rest = (%v, %v), want (false, nil)", stopped, err)
	}
}

func TestSpeedInvariantHolds(t *testing.T) {
	v := newTruck(t, 1000)
	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}

	steps := []func(){
		func() { _ = v.Accelerate(50) },
		func() { _, _ = v.Brake(20) },
		func() { _ = v.Accelerate(500) },
		func() { _, _ = v.Brake(700) },
		func() { _ = v.Accelerate(80) },
	}
	for i, step := range steps {
		step()
		if v.Speed < 0 || v.Speed > v.MaxSpeed() {
			t.Fatalf("step %d: speed %v outside [0, %v]", i, v.Speed, v.MaxSpeed())
		}
	}
}

func TestTurboRequiresRunning(t *testing.T) {
	v := newSports(t)

	if err := v.EngageTurbo(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if v.TurboEngaged {
		t.Fatalf("turbo must stay disengaged")
	}
}

func TestTurboRaisesMaxSpeedAndBoost(t *testing.T) {
	v := newSports(t)
	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if v.MaxSpeed() != 250 {
		t.Fatalf("MaxSpeed = %v, want 250", v.MaxSpeed())
	}

	if err := v.EngageTurbo(); err != nil {
		t.Fatalf("EngageTurbo error: %v", err)
	}
	if v.MaxSpeed() != 320 {
		t.Fatalf("MaxSpeed with turbo = %v, want 320", v.MaxSpeed())
	}
	if err := v.EngageTurbo(); !errors.Is(err, ErrTurboAlreadyOn) {
		t.Fatalf("expected ErrTurboAlreadyOn, got %v", err)
	}

	// Приращение 100 с турбо даёт 150.
	if err := v.Accelerate(100); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if v.Speed != 150 {
		t.Fatalf("Speed = %v, want 150", v.Speed)
	}
}

func TestDisengageTurboDoesNotClampSpeed(t *testing.T) {
	v := newSports(t)
	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := v.EngageTurbo(); err != nil {
		t.Fatalf("EngageTurbo error: %v", err)
	}
	if err := v.Accelerate(1000); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if v.Speed != 320 {
		t.Fatalf("Speed = %v, want 320", v.Speed)
	}

	if err := v.DisengageTurbo(); err != nil {
		t.Fatalf("DisengageTurbo error: %v", err)
	}
	if v.Speed != 320 {
		t.Fatalf("Speed after turbo off = %v, want 320 (no retroactive clamp)", v.Speed)
	}

	// Дальнейшее ускорение уже ограничено базовым пределом,
	// но текущую скорость оно не снижает.
	if err := v.Accelerate(10); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if v.Speed != 320 {
		t.Fatalf("Speed = %v, want 320", v.Speed)
	}

	if err := v.DisengageTurbo(); !errors.Is(err, ErrTurboAlreadyOff) {
		t.Fatalf("expected ErrTurboAlreadyOff, got %v", err)
	}
}

func TestTurboUnsupportedForCar(t *testing.T) {
	v := newCar(t)
	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := v.EngageTurbo(); !errors.Is(err, ErrTurboUnsupported) {
		t.Fatalf("expected ErrTurboUnsupported, got %v", err)
	}
}

func TestTruckLoadUnload(t *testing.T) {
	v := newTruck(t, 1000)

	if err := v.LoadCargo(600); err != nil {
		t.Fatalf("LoadCargo error: %v", err)
	}
	if err := v.LoadCargo(500); !errors.Is(err, ErrOverCapacity) {
		t.Fatalf("expected ErrOverCapacity, got %v", err)
	}
	if v.CurrentLoad != 600 {
		t.Fatalf("CurrentLoad = %v, want 600 after rejected load", v.CurrentLoad)
	}

	if err := v.UnloadCargo(700); !errors.Is(err, ErrInsufficientLoad) {
		t.Fatalf("expected ErrInsufficientLoad, got %v", err)
	}
	if err := v.UnloadCargo(600); err != nil {
		t.Fatalf("UnloadCargo error: %v", err)
	}
	if v.CurrentLoad != 0 {
		t.Fatalf("CurrentLoad = %v, want 0", v.CurrentLoad)
	}

	if err := v.LoadCargo(-10); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	if err := v.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := v.LoadCargo(100); !errors.Is(err, ErrStopBeforeCargo) {
		t.Fatalf("expected ErrStopBeforeCargo, got %v", err)
	}
}

func TestTruckLoadReducesAcceleration(t *testing.T) {
	empty := newTruck(t, 1000)
	if err := empty.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	if err := empty.Accelerate(100); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if empty.Speed != 100 {
		t.Fatalf("empty truck speed = %v, want 100", empty.Speed)
	}

	half := newTruck(t, 1000)
	if err := half.LoadCargo(1000); err != nil {
		t.Fatalf("LoadCargo error: %v", err)
	}
	if err := half.TurnOn(); err != nil {
		t.Fatalf("TurnOn error: %v", err)
	}
	// Полный груз: фактор 1 - 1000/2000 = 0.5.
	if err := half.Accelerate(100); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if half.Speed != 50 {
		t.Fatalf("loaded truck speed = %v, want 50", half.Speed)
	}
}

func TestTruckAccelerationFactorFloor(t *testing.T) {
	v := &Vehicle{Kind: KindTruck, CargoCapacity: 100, CurrentLoad: 100, IsRunning: true}
	// Фактор не опускается ниже 0.3 даже при перегрузе восстановленного состояния.
	v.CurrentLoad = 190
	if err := v.Accelerate(10); err != nil {
		t.Fatalf("Accelerate error: %v", err)
	}
	if v.Speed != 3 {
		t.Fatalf("Speed = %v, want 3", v.Speed)
	}
}

func TestAddMaintenanceKeepsHistorySorted(t *testing.T) {
	v := newCar(t)
	today := NewDate(2025, time.March, 15)

	records := []Maintenance{
		{Date: "2025-03-10", ServiceType: "Troca de óleo", Cost: ptrFloat(150), Status: StatusDone},
		{Date: "2025-01-05", ServiceType: "Alinhamento", Cost: ptrFloat(80), Status: StatusDone},
		{Date: "2025-04-20", ServiceType: "Revisão", Status: StatusScheduled},
	}
	for _, m := range records {
		if err := v.AddMaintenance(m, today); err != nil {
			t.Fatalf("AddMaintenance(%s) error: %v", m.ServiceType, err)
		}
	}

	wantOrder := []string{"Alinhamento", "Troca de óleo", "Revisão"}
	for i, want := range wantOrder {
		if v.History[i].ServiceType != want {
			t.Fatalf("History[%d] = %s, want %s", i, v.History[i].ServiceType, want)
		}
	}

	for i := 0; i < len(v.History)-1; i++ {
		a, okA := v.History[i].DateValue()
		b, okB := v.History[i+1].DateValue()
		if okA && okB && a.After(b) {
			t.Fatalf("history is not sorted at %d: %s > %s", i, a, b)
		}
	}
}

func TestAddMaintenanceRejectionLeavesHistoryUnchanged(t *testing.T) {
	v := newCar(t)
	today := NewDate(2025, time.March, 15)

	valid := Maintenance{Date: "2025-03-10", ServiceType: "Troca de óleo", Cost: ptrFloat(150), Status: StatusDone}
	if err := v.AddMaintenance(valid, today); err != nil {
		t.Fatalf("AddMaintenance error: %v", err)
	}

	invalid := Maintenance{Date: "2025-03-10", ServiceType: "Revisão", Cost: ptrFloat(-5), Status: StatusDone}
	if err := v.AddMaintenance(invalid, today); !errors.Is(err, ErrDoneInvalidCost) {
		t.Fatalf("expected ErrDoneInvalidCost, got %v", err)
	}
	if len(v.History) != 1 {
		t.Fatalf("history length = %d, want 1", len(v.History))
	}
}

func TestMaintenanceSummaryPartitions(t *testing.T) {
	v := newCar(t)
	today := NewDate(2025, time.March, 15)

	records := []Maintenance{
		{Date: "2025-02-01", ServiceType: "Troca de óleo", Cost: ptrFloat(150), Status: StatusDone},
		{Date: "2025-03-15", ServiceType: "Revisão de hoje", Status: StatusScheduled},
		{Date: "2025-04-01", ServiceType: "Revisão futura", Status: StatusScheduled},
		{Date: "2025-03-01", ServiceType: "Revisão perdida", Status: StatusScheduled},
	}
	for _, m := range records {
		if err := v.AddMaintenance(m, today); err != nil {
			t.Fatalf("AddMaintenance(%s) error: %v", m.ServiceType, err)
		}
	}

	s := v.Summary(today)
	if len(s.Done) != 1 {
		t.Fatalf("Done = %v, want 1 entry", s.Done)
	}
	if len(s.Upcoming) != 2 {
		t.Fatalf("Upcoming = %v, want 2 entries (today counts as upcoming)", s.Upcoming)
	}
	if len(s.Overdue) != 1 {
		t.Fatalf("Overdue = %v, want 1 entry", s.Overdue)
	}
}

func TestDescribe(t *testing.T) {
	v := newCar(t)
	if got := v.Describe(); got != "Carro: Fusca (azul)" {
		t.Fatalf("Describe() = %q, want %q", got, "Carro: Fusca (azul)")
	}

	s := newSports(t)
	if got := s.Describe(); got != "Esportivo: Ferrari (vermelha)" {
		t.Fatalf("Describe() = %q", got)
	}

	c := newTruck(t, 500)
	if got := c.Describe(); got != "Caminhao: Scania (branca)" {
		t.Fatalf("Describe() = %q", got)
	}
}
