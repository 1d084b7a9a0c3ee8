package model

import (
	"encoding/json"
	"fmt"
)

// VehicleSnapshot — снимок транспортного средства в формате хранения.
// Поле maxSpeed записывается для отображения, но при восстановлении
// игнорируется: предел скорости выводится из варианта и состояния турбо.
type VehicleSnapshot struct {
	ID            string        `json:"id"`
	Kind          Kind          `json:"kind"`
	Model         string        `json:"model"`
	Color         string        `json:"color"`
	IsRunning     bool          `json:"isRunning"`
	Speed         float64       `json:"speed"`
	MaxSpeed      float64       `json:"maxSpeed,omitempty"`
	TurboEngaged  bool          `json:"turboEngaged,omitempty"`
	CargoCapacity float64       `json:"cargoCapacity,omitempty"`
	CurrentLoad   float64       `json:"currentLoad,omitempty"`
	History       []Maintenance `json:"maintenanceHistory"`
}

// Describe возвращает однострочную подпись снимка для списка гаража.
func (s VehicleSnapshot) Describe() string {
	return fmt.Sprintf("%s: %s (%s)", s.Kind.Label(), s.Model, s.Color)
}

// Snapshot возвращает снимок текущего состояния транспортного средства.
// История копируется, чтобы снимок не делил память с живым объектом.
func (v *Vehicle) Snapshot() VehicleSnapshot {
	history := make([]Maintenance, len(v.History))
	copy(history, v.History)

	return VehicleSnapshot{
		ID:            v.ID,
		Kind:          v.Kind,
		Model:         v.Model,
		Color:         v.Color,
		IsRunning:     v.IsRunning,
		Speed:         v.Speed,
		MaxSpeed:      v.MaxSpeed(),
		TurboEngaged:  v.TurboEngaged,
		CargoCapacity: v.CargoCapacity,
		CurrentLoad:   v.CurrentLoad,
		History:       history,
	}
}

// VehicleFromSnapshot восстанавливает транспортное средство из снимка.
func VehicleFromSnapshot(s VehicleSnapshot) (*Vehicle, error) {
	switch s.Kind {
	case KindCar, KindSports, KindTruck:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}

	v := &Vehicle{
		ID:            s.ID,
		Kind:          s.Kind,
		Model:         s.Model,
		Color:         s.Color,
		IsRunning:     s.IsRunning,
		Speed:         s.Speed,
		TurboEngaged:  s.TurboEngaged,
		CargoCapacity: s.CargoCapacity,
		CurrentLoad:   s.CurrentLoad,
		History:       append([]Maintenance(nil), s.History...),
	}
	v.sortHistory()
	return v, nil
}

// EncodeFleet сериализует упорядоченный список транспортных средств
// в JSON-массив снимков для единственного слота хранения.
func EncodeFleet(vehicles []*Vehicle) ([]byte, error) {
	snapshots := make([]VehicleSnapshot, 0, len(vehicles))
	for _, v := range vehicles {
		snapshots = append(snapshots, v.Snapshot())
	}

	data, err := json.Marshal(snapshots)
	if err != nil {
		return nil, fmt.Errorf("marshal fleet: %w", err)
	}
	return data, nil
}

// DecodeFleet восстанавливает список транспортных средств из слота
// хранения. Снимки с неизвестным тегом kind пропускаются, skipped
// возвращает их число; структурно некорректный payload — ошибка.
func DecodeFleet(data []byte) (vehicles []*Vehicle, skipped int, err error) {
	var snapshots []VehicleSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, 0, fmt.Errorf("unmarshal fleet: %w", err)
	}

	vehicles = make([]*Vehicle, 0, len(snapshots))
	for _, s := range snapshots {
		v, err := VehicleFromSnapshot(s)
		if err != nil {
			skipped++
			continue
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, skipped, nil
}
