package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Kind описывает вариант транспортного средства. Значения совпадают
// с тегами формата хранения.
type Kind string

const (
	// KindCar — обычный автомобиль.
	KindCar Kind = "carro"
	// KindSports — спортивный автомобиль с турбо.
	KindSports Kind = "esportivo"
	// KindTruck — грузовик с ограниченной грузоподъёмностью.
	KindTruck Kind = "caminhao"
)

const (
	carMaxSpeed         = 180
	sportsMaxSpeed      = 250
	sportsTurboMaxSpeed = 320
	truckMaxSpeed       = 120

	turboBoostFactor = 1.5
	minCargoFactor   = 0.3
)

// Vehicle представляет транспортное средство гаража: закрытое множество
// вариантов с общим состоянием и полями варианта, выбираемыми по Kind.
type Vehicle struct {
	ID        string
	Kind      Kind
	Model     string
	Color     string
	IsRunning bool
	Speed     float64

	// Только для esportivo.
	TurboEngaged bool

	// Только для caminhao. CargoCapacity фиксируется при создании.
	CargoCapacity float64
	CurrentLoad   float64

	History []Maintenance
}

// NewVehicle создаёт транспортное средство указанного варианта.
// Для caminhao capacity обязана быть положительной, для остальных игнорируется.
func NewVehicle(kind Kind, model, color string, capacity float64) (*Vehicle, error) {
	if model == "" {
		return nil, ErrEmptyModel
	}
	if color == "" {
		return nil, ErrEmptyColor
	}

	v := &Vehicle{
		ID:    uuid.NewString(),
		Kind:  kind,
		Model: model,
		Color: color,
	}

	switch kind {
	case KindCar, KindSports:
	case KindTruck:
		if capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		v.CargoCapacity = capacity
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	return v, nil
}

// MaxSpeed возвращает текущий предел скорости. Предел выводится из
// варианта и состояния турбо, а не хранится, поэтому восстановленное
// из снимка состояние не может разойтись с ним.
func (v *Vehicle) MaxSpeed() float64 {
	switch v.Kind {
	case KindSports:
		if v.TurboEngaged {
			return sportsTurboMaxSpeed
		}
		return sportsMaxSpeed
	case KindTruck:
		return truckMaxSpeed
	default:
		return carMaxSpeed
	}
}

// TurnOn заводит двигатель.
func (v *Vehicle) TurnOn() error {
	if v.IsRunning {
		return ErrAlreadyRunning
	}
	v.IsRunning = true
	return nil
}

// TurnOff глушит двигатель. Требует полной остановки.
func (v *Vehicle) TurnOff() error {
	if !v.IsRunning {
		return ErrAlreadyStopped
	}
	if v.Speed > 0 {
		return ErrStopBeforeOff
	}
	v.IsRunning = false
	return nil
}

// Accelerate увеличивает скорость на delta с поправкой варианта:
// турбо умножает приращение, груз линейно снижает его, но не ниже
// минимального коэффициента. Скорость не превышает MaxSpeed.
func (v *Vehicle) Accelerate(delta float64) error {
	if delta < 0 {
		return ErrInvalidAmount
	}
	if !v.IsRunning {
		return ErrNotRunning
	}

	speed := v.Speed + delta*v.accelerationFactor()
	if max := v.MaxSpeed(); speed > max {
		speed = max
	}
	v.Speed = speed
	return nil
}

func (v *Vehicle) accelerationFactor() float64 {
	switch v.Kind {
	case KindSports:
		if v.TurboEngaged {
			return turboBoostFactor
		}
		return 1
	case KindTruck:
		factor := 1 - v.CurrentLoad/(v.CargoCapacity*2)
		if factor < minCargoFactor {
			factor = minCargoFactor
		}
		return factor
	default:
		return 1
	}
}

// Brake уменьшает скорость на delta, не опускаясь ниже нуля.
// stopped сообщает, что именно этот вызов довёл скорость до нуля:
// только такое, «устоявшееся», состояние стоит сохранять.
func (v *Vehicle) Brake(delta float64) (stopped bool, err error) {
	if delta < 0 {
		return false, ErrInvalidAmount
	}
	if v.Speed == 0 {
		return false, nil
	}

	v.Speed -= delta
	if v.Speed <= 0 {
		v.Speed = 0
		return true, nil
	}
	return false, nil
}

// EngageTurbo включает турбо и поднимает предел скорости.
func (v *Vehicle) EngageTurbo() error {
	if v.Kind != KindSports {
		return ErrTurboUnsupported
	}
	if !v.IsRunning {
		return ErrNotRunning
	}
	if v.TurboEngaged {
		return ErrTurboAlreadyOn
	}
	v.TurboEngaged = true
	return nil
}

// DisengageTurbo выключает турбо и возвращает базовый предел скорости.
// Текущая скорость при этом не ограничивается задним числом: предел
// действует только на последующие ускорения.
func (v *Vehicle) DisengageTurbo() error {
	if v.Kind != KindSports {
		return ErrTurboUnsupported
	}
	if !v.TurboEngaged {
		return ErrTurboAlreadyOff
	}
	v.TurboEngaged = false
	return nil
}

// LoadCargo добавляет груз. Двигатель обязан быть заглушён,
// итоговый груз не превышает грузоподъёмность.
func (v *Vehicle) LoadCargo(amount float64) error {
	if v.Kind != KindTruck {
		return ErrCargoUnsupported
	}
	if v.IsRunning {
		return ErrStopBeforeCargo
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if v.CurrentLoad+amount > v.CargoCapacity {
		return fmt.Errorf("%w: capacity %.0f kg", ErrOverCapacity, v.CargoCapacity)
	}
	v.CurrentLoad += amount
	return nil
}

// UnloadCargo снимает груз. Двигатель обязан быть заглушён,
// груз не опускается ниже нуля.
func (v *Vehicle) UnloadCargo(amount float64) error {
	if v.Kind != KindTruck {
		return ErrCargoUnsupported
	}
	if v.IsRunning {
		return ErrStopBeforeCargo
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if v.CurrentLoad-amount < 0 {
		return fmt.Errorf("%w: current load %.0f kg", ErrInsufficientLoad, v.CurrentLoad)
	}
	v.CurrentLoad -= amount
	return nil
}

// AddMaintenance проверяет запись и вставляет её в историю, сохраняя
// сортировку по возрастанию даты. При ошибке история не меняется.
func (v *Vehicle) AddMaintenance(m Maintenance, today Date) error {
	if err := m.Validate(today); err != nil {
		return err
	}
	v.History = append(v.History, m)
	v.sortHistory()
	return nil
}

// Записи без разбираемой даты уходят в конец.
func (v *Vehicle) sortHistory() {
	sort.SliceStable(v.History, func(i, j int) bool {
		di, okI := v.History[i].DateValue()
		dj, okJ := v.History[j].DateValue()
		if !okI {
			return false
		}
		if !okJ {
			return true
		}
		return di.Before(dj)
	})
}

// MaintenanceSummary разбивает историю на три отображаемых списка
// относительно today: выполненные, запланированные на сегодня и позже
// и просроченные (запланированные в прошлом либо с нечитаемой датой).
type MaintenanceSummary struct {
	Done     []string `json:"done"`
	Upcoming []string `json:"upcoming"`
	Overdue  []string `json:"overdue"`
}

// Summary возвращает сводку истории обслуживания относительно today.
func (v *Vehicle) Summary(today Date) MaintenanceSummary {
	s := MaintenanceSummary{
		Done:     []string{},
		Upcoming: []string{},
		Overdue:  []string{},
	}

	for _, m := range v.History {
		switch m.Status {
		case StatusDone:
			s.Done = append(s.Done, m.Format())
		case StatusScheduled:
			date, ok := m.DateValue()
			if ok && !date.Before(today) {
				s.Upcoming = append(s.Upcoming, m.Format())
			} else {
				s.Overdue = append(s.Overdue, m.Format())
			}
		}
	}

	return s
}

// Describe возвращает однострочную подпись для списка гаража.
func (v *Vehicle) Describe() string {
	return fmt.Sprintf("%s: %s (%s)", v.Kind.Label(), v.Model, v.Color)
}

// Label возвращает отображаемое имя варианта.
func (k Kind) Label() string {
	switch k {
	case KindSports:
		return "Esportivo"
	case KindTruck:
		return "Caminhao"
	default:
		return "Carro"
	}
}
