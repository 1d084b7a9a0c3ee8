// Package service реализует бизнес-логику гаража: упорядоченный парк
// транспортных средств, курсор выбора и персистентность снимка.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/garage-system/internal/model"
)

// ErrVehicleNotFound возвращается, если транспортное средство с указанным
// идентификатором отсутствует в парке.
var ErrVehicleNotFound = errors.New("vehicle not found")

// SnapshotStore описывает контракт слота хранения снимка парка.
type SnapshotStore interface {
	Close() error
	Save(ctx context.Context, payload []byte) error
	Load(ctx context.Context) ([]byte, error)
	Reset(ctx context.Context) error
}

// Service содержит состояние гаража. Все мутации выполняются атомарно
// под одной блокировкой: логически действует один актор — пользователь.
type Service struct {
	mu         sync.Mutex
	vehicles   []*model.Vehicle
	selectedID string

	store  SnapshotStore
	logger *zap.Logger
}

// NewService создаёт сервис гаража с указанным слотом хранения.
func NewService(store SnapshotStore, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// Restore загружает парк из слота хранения. Снимки с неизвестным kind
// пропускаются с предупреждением; структурно некорректный payload
// приводит к пустому парку и очистке слота, чтобы ошибка не повторялась
// при каждом старте.
func (s *Service) Restore(ctx context.Context) error {
	payload, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if payload == nil {
		return nil
	}

	vehicles, skipped, err := model.DecodeFleet(payload)
	if err != nil {
		s.logger.Error("stored fleet snapshot is corrupted, resetting slot", zap.Error(err))
		if resetErr := s.store.Reset(ctx); resetErr != nil {
			s.logger.Error("reset snapshot slot", zap.Error(resetErr))
		}
		return nil
	}
	if skipped > 0 {
		s.logger.Warn("skipped vehicles with unknown kind", zap.Int("count", skipped))
	}

	s.mu.Lock()
	s.vehicles = vehicles
	s.selectedID = ""
	s.mu.Unlock()
	return nil
}

// Запись снимка синхронная и best-effort: неудача логируется,
// состояние в памяти не откатывается.
func (s *Service) persistLocked(ctx context.Context) {
	payload, err := model.EncodeFleet(s.vehicles)
	if err != nil {
		s.logger.Error("encode fleet snapshot", zap.Error(err))
		return
	}
	if err := s.store.Save(ctx, payload); err != nil {
		s.logger.Warn("save fleet snapshot", zap.Error(err))
	}
}

func (s *Service) findLocked(id string) (*model.Vehicle, error) {
	for _, v := range s.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, ErrVehicleNotFound
}

// command выполняет операцию над транспортным средством и, если она
// имеет долговременный эффект, записывает снимок парка.
func (s *Service) command(ctx context.Context, id string, persist bool, op func(*model.Vehicle) error) (model.VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.findLocked(id)
	if err != nil {
		return model.VehicleSnapshot{}, err
	}
	if err := op(v); err != nil {
		return model.VehicleSnapshot{}, err
	}
	if persist {
		s.persistLocked(ctx)
	}
	return v.Snapshot(), nil
}

// CreateVehicle добавляет в парк новое транспортное средство указанного варианта.
func (s *Service) CreateVehicle(ctx context.Context, kind model.Kind, vehicleModel, color string, capacity float64) (model.VehicleSnapshot, error) {
	v, err := model.NewVehicle(kind, vehicleModel, color, capacity)
	if err != nil {
		return model.VehicleSnapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles = append(s.vehicles, v)
	s.persistLocked(ctx)
	return v.Snapshot(), nil
}

// Vehicles возвращает снимки всех транспортных средств в порядке добавления.
func (s *Service) Vehicles() []model.VehicleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := make([]model.VehicleSnapshot, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		snapshots = append(snapshots, v.Snapshot())
	}
	return snapshots
}

// Vehicle возвращает снимок транспортного средства по идентификатору.
func (s *Service) Vehicle(id string) (model.VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.findLocked(id)
	if err != nil {
		return model.VehicleSnapshot{}, err
	}
	return v.Snapshot(), nil
}

// Select устанавливает курсор выбора. Неразрешимый идентификатор
// сбрасывает выбор и возвращает ErrVehicleNotFound.
func (s *Service) Select(id string) (model.VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.findLocked(id)
	if err != nil {
		s.selectedID = ""
		return model.VehicleSnapshot{}, err
	}
	s.selectedID = v.ID
	return v.Snapshot(), nil
}

// Selected возвращает текущее выбранное транспортное средство.
// Выбор, более не указывающий на член парка, считается снятым.
func (s *Service) Selected() (model.VehicleSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedID == "" {
		return model.VehicleSnapshot{}, false
	}
	v, err := s.findLocked(s.selectedID)
	if err != nil {
		s.selectedID = ""
		return model.VehicleSnapshot{}, false
	}
	return v.Snapshot(), true
}

// TurnOn заводит двигатель и записывает снимок.
func (s *Service) TurnOn(ctx context.Context, id string) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, (*model.Vehicle).TurnOn)
}

// TurnOff глушит двигатель и записывает снимок.
func (s *Service) TurnOff(ctx context.Context, id string) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, (*model.Vehicle).TurnOff)
}

// Accelerate увеличивает скорость. Операция высокочастотная и снимок
// не записывает: сохраняется только устоявшееся состояние.
func (s *Service) Accelerate(ctx context.Context, id string, delta float64) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, false, func(v *model.Vehicle) error {
		return v.Accelerate(delta)
	})
}

// Brake уменьшает скорость; снимок записывается только когда именно
// этот вызов довёл скорость до нуля.
func (s *Service) Brake(ctx context.Context, id string, delta float64) (model.VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.findLocked(id)
	if err != nil {
		return model.VehicleSnapshot{}, err
	}
	stopped, err := v.Brake(delta)
	if err != nil {
		return model.VehicleSnapshot{}, err
	}
	if stopped {
		s.persistLocked(ctx)
	}
	return v.Snapshot(), nil
}

// EngageTurbo включает турбо и записывает снимок.
func (s *Service) EngageTurbo(ctx context.Context, id string) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, (*model.Vehicle).EngageTurbo)
}

// DisengageTurbo выключает турбо и записывает снимок.
func (s *Service) DisengageTurbo(ctx context.Context, id string) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, (*model.Vehicle).DisengageTurbo)
}

// LoadCargo загружает груз и записывает снимок.
func (s *Service) LoadCargo(ctx context.Context, id string, amount float64) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, func(v *model.Vehicle) error {
		return v.LoadCargo(amount)
	})
}

// UnloadCargo снимает груз и записывает снимок.
func (s *Service) UnloadCargo(ctx context.Context, id string, amount float64) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, func(v *model.Vehicle) error {
		return v.UnloadCargo(amount)
	})
}

// AddMaintenance добавляет запись об обслуживании и записывает снимок.
func (s *Service) AddMaintenance(ctx context.Context, id string, m model.Maintenance) (model.VehicleSnapshot, error) {
	return s.command(ctx, id, true, func(v *model.Vehicle) error {
		return v.AddMaintenance(m, model.Today())
	})
}

// MaintenanceSummary возвращает сводку истории обслуживания.
func (s *Service) MaintenanceSummary(id string) (model.MaintenanceSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.findLocked(id)
	if err != nil {
		return model.MaintenanceSummary{}, err
	}
	return v.Summary(model.Today()), nil
}

// Reminders возвращает напоминания об обслуживании на сегодня и завтра.
func (s *Service) Reminders() []model.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.UpcomingReminders(s.vehicles, model.Today())
}

// StartReminderScans запускает фоновый процесс, который периодически
// пишет в журнал напоминания о ближайших обслуживаниях. Первый проход
// выполняется сразу, не дожидаясь тика.
func (s *Service) StartReminderScans(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.logReminders()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.logReminders()
			}
		}
	}()
}

func (s *Service) logReminders() {
	for _, r := range s.Reminders() {
		s.logger.Info("maintenance reminder",
			zap.String("vehicleId", r.VehicleID),
			zap.String("due", string(r.Due)),
			zap.String("reminder", r.Format()),
		)
	}
}
