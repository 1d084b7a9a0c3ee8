// Package handler содержит HTTP-обработчики API гаражного сервиса.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/garage-system/internal/model"
	"github.com/mmeshcher/garage-system/internal/service"
	"github.com/mmeshcher/garage-system/internal/weather"
)

const defaultSpeedDelta = 10

// Garage определяет контракт бизнес-логики гаража, используемой HTTP-обработчиками.
type Garage interface {
	CreateVehicle(ctx context.Context, kind model.Kind, vehicleModel, color string, capacity float64) (model.VehicleSnapshot, error)
	Vehicles() []model.VehicleSnapshot
	Vehicle(id string) (model.VehicleSnapshot, error)
	Select(id string) (model.VehicleSnapshot, error)
	Selected() (model.VehicleSnapshot, bool)
	TurnOn(ctx context.Context, id string) (model.VehicleSnapshot, error)
	TurnOff(ctx context.Context, id string) (model.VehicleSnapshot, error)
	Accelerate(ctx context.Context, id string, delta float64) (model.VehicleSnapshot, error)
	Brake(ctx context.Context, id string, delta float64) (model.VehicleSnapshot, error)
	EngageTurbo(ctx context.Context, id string) (model.VehicleSnapshot, error)
	DisengageTurbo(ctx context.Context, id string) (model.VehicleSnapshot, error)
	LoadCargo(ctx context.Context, id string, amount float64) (model.VehicleSnapshot, error)
	UnloadCargo(ctx context.Context, id string, amount float64) (model.VehicleSnapshot, error)
	AddMaintenance(ctx context.Context, id string, m model.Maintenance) (model.VehicleSnapshot, error)
	MaintenanceSummary(id string) (model.MaintenanceSummary, error)
	Reminders() []model.Reminder
}

// Handler реализует HTTP-обработчики API гаражного сервиса.
type Handler struct {
	garage  Garage
	weather *weather.Client
	logger  *zap.Logger
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
// weatherClient может быть nil, если прокси прогноза не настроен.
func NewHandler(garage Garage, weatherClient *weather.Client, logger *zap.Logger) *Handler {
	return &Handler{
		garage:  garage,
		weather: weatherClient,
		logger:  logger,
	}
}

type vehicleResponse struct {
	model.VehicleSnapshot
	Description string `json:"description"`
}

func newVehicleResponse(s model.VehicleSnapshot) vehicleResponse {
	return vehicleResponse{VehicleSnapshot: s, Description: s.Describe()}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// writeDomainError переводит ошибку доменной операции в HTTP-статус
// согласно таксономии: некорректный ввод, конфликт состояния и
// нарушение пределов груза различимы для клиента.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrVehicleNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case model.IsValidationError(err):
		h.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case model.IsStateConflictError(err), model.IsCapacityError(err):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("garage operation error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}

type createVehicleRequest struct {
	Kind          model.Kind `json:"kind"`
	Model         string     `json:"model"`
	Color         string     `json:"color"`
	CargoCapacity float64    `json:"cargoCapacity"`
}

// CreateVehicle создаёт транспортное средство по заполненной форме.
func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	snapshot, err := h.garage.CreateVehicle(r.Context(), req.Kind, req.Model, req.Color, req.CargoCapacity)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, newVehicleResponse(snapshot))
}

// ListVehicles возвращает все транспортные средства в порядке добавления.
func (h *Handler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	snapshots := h.garage.Vehicles()

	resp := make([]vehicleResponse, 0, len(snapshots))
	for _, s := range snapshots {
		resp = append(resp, newVehicleResponse(s))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// GetVehicle возвращает полное состояние транспортного средства.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.garage.Vehicle(chi.URLParam(r, "vehicleID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newVehicleResponse(snapshot))
}

type selectRequest struct {
	ID string `json:"id"`
}

// Select устанавливает курсор выбора на транспортное средство.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	snapshot, err := h.garage.Select(req.ID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newVehicleResponse(snapshot))
}

// GetSelected возвращает текущее выбранное транспортное средство
// или 204, если выбор не установлен.
func (h *Handler) GetSelected(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.garage.Selected()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, newVehicleResponse(snapshot))
}

func (h *Handler) vehicleCommand(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (model.VehicleSnapshot, error)) {
	snapshot, err := op(r.Context(), chi.URLParam(r, "vehicleID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newVehicleResponse(snapshot))
}

// TurnOn заводит двигатель.
func (h *Handler) TurnOn(w http.ResponseWriter, r *http.Request) {
	h.vehicleCommand(w, r, h.garage.TurnOn)
}

// TurnOff глушит двигатель.
func (h *Handler) TurnOff(w http.ResponseWriter, r *http.Request) {
	h.vehicleCommand(w, r, h.garage.TurnOff)
}

type speedRequest struct {
	Delta float64 `json:"delta"`
}

// Значение по умолчанию повторяет шаг кнопок интерфейса.
func (h *Handler) decodeSpeedDelta(r *http.Request) (float64, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return defaultSpeedDelta, nil
	}
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, err
	}
	if req.Delta == 0 {
		return defaultSpeedDelta, nil
	}
	return req.Delta, nil
}

// Accelerate увеличивает скорость на delta (по умолчанию 10).
func (h *Handler) Accelerate(w http.ResponseWriter, r *http.Request) {
	delta, err := h.decodeSpeedDelta(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.vehicleCommand(w, r, func(ctx context.Context, id string) (model.VehicleSnapshot, error) {
		return h.garage.Accelerate(ctx, id, delta)
	})
}

// Brake уменьшает скорость на delta (по умолчанию 10).
func (h *Handler) Brake(w http.ResponseWriter, r *http.Request) {
	delta, err := h.decodeSpeedDelta(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.vehicleCommand(w, r, func(ctx context.Context, id string) (model.VehicleSnapshot, error) {
		return h.garage.Brake(ctx, id, delta)
	})
}

// EngageTurbo включает турбо спортивного автомобиля.
func (h *Handler) EngageTurbo(w http.ResponseWriter, r *http.Request) {
	h.vehicleCommand(w, r, h.garage.EngageTurbo)
}

// DisengageTurbo выключает турбо спортивного автомобиля.
func (h *Handler) DisengageTurbo(w http.ResponseWriter, r *http.Request) {
	h.vehicleCommand(w, r, h.garage.DisengageTurbo)
}

type cargoRequest struct {
	Amount float64 `json:"amount"`
}

// LoadCargo загружает груз в грузовик.
func (h *Handler) LoadCargo(w http.ResponseWriter, r *http.Request) {
	var req cargoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.vehicleCommand(w, r, func(ctx context.Context, id string) (model.VehicleSnapshot, error) {
		return h.garage.LoadCargo(ctx, id, req.Amount)
	})
}

// UnloadCargo снимает груз с грузовика.
func (h *Handler) UnloadCargo(w http.ResponseWriter, r *http.Request) {
	var req cargoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.vehicleCommand(w, r, func(ctx context.Context, id string) (model.VehicleSnapshot, error) {
		return h.garage.UnloadCargo(ctx, id, req.Amount)
	})
}

type maintenanceRequest struct {
	Date        string   `json:"date"`
	ServiceType string   `json:"serviceType"`
	Cost        *float64 `json:"cost"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
}

// AddMaintenance регистрирует выполненное или запланированное обслуживание.
func (h *Handler) AddMaintenance(w http.ResponseWriter, r *http.Request) {
	var req maintenanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	record := model.Maintenance{
		Date:        req.Date,
		ServiceType: req.ServiceType,
		Cost:        req.Cost,
		Description: req.Description,
		Status:      model.MaintenanceStatus(req.Status),
	}

	snapshot, err := h.garage.AddMaintenance(r.Context(), chi.URLParam(r, "vehicleID"), record)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, newVehicleResponse(snapshot))
}

// GetMaintenance возвращает сводку истории обслуживания.
func (h *Handler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	summary, err := h.garage.MaintenanceSummary(chi.URLParam(r, "vehicleID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

// GetReminders возвращает напоминания об обслуживании на сегодня и завтра.
func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	reminders := h.garage.Reminders()

	type reminderResponse struct {
		model.Reminder
		Text string `json:"text"`
	}
	resp := make([]reminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		resp = append(resp, reminderResponse{Reminder: rem, Text: rem.Format()})
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Forecast проксирует пятидневный прогноз погоды, пробрасывая ответ
// вышестоящего API как есть.
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "cidade")
	if city == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "city name is required"})
		return
	}

	raw, err := h.weather.Forecast(r.Context(), city)
	if err != nil {
		h.writeWeatherError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		h.logger.Error("write forecast response", zap.Error(err))
	}
}

// ForecastSummary возвращает прогноз, сгруппированный по дням.
func (h *Handler) ForecastSummary(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "cidade")
	if city == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "city name is required"})
		return
	}

	raw, err := h.weather.Forecast(r.Context(), city)
	if err != nil {
		h.writeWeatherError(w, err)
		return
	}

	forecast, err := weather.ParseForecast(raw)
	if err != nil {
		h.logger.Error("parse forecast", zap.Error(err), zap.String("city", city))
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "malformed forecast response"})
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		City string               `json:"city"`
		Days []weather.DaySummary `json:"days"`
	}{
		City: forecast.City.Name,
		Days: weather.SummarizeByDay(forecast),
	})
}

func (h *Handler) writeWeatherError(w http.ResponseWriter, err error) {
	var upstream *weather.UpstreamError
	switch {
	case errors.As(err, &upstream):
		h.writeJSON(w, upstream.StatusCode, errorResponse{Error: upstream.Message})
	case errors.Is(err, weather.ErrNotConfigured):
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("forecast request error", zap.Error(err))
		h.writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch weather forecast"})
	}
}
