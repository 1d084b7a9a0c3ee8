package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/garage-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware гаражного сервиса.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.CORS)
	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/garage", func(r chi.Router) {
			r.Post("/vehicles", h.CreateVehicle)
			r.Get("/vehicles", h.ListVehicles)

			r.Put("/selection", h.Select)
			r.Get("/selection", h.GetSelected)

			r.Get("/reminders", h.GetReminders)

			r.Route("/vehicles/{vehicleID}", func(r chi.Router) {
				r.Get("/", h.GetVehicle)

				r.Post("/on", h.TurnOn)
				r.Post("/off", h.TurnOff)
				r.Post("/accelerate", h.Accelerate)
				r.Post("/brake", h.Brake)

				r.Post("/turbo/on", h.EngageTurbo)
				r.Post("/turbo/off", h.DisengageTurbo)

				r.Post("/cargo/load", h.LoadCargo)
				r.Post("/cargo/unload", h.UnloadCargo)

				r.Post("/maintenance", h.AddMaintenance)
				r.Get("/maintenance", h.GetMaintenance)
			})
		})

		r.Get("/previsao/{cidade}", h.Forecast)
		r.Get("/previsao/{cidade}/resumo", h.ForecastSummary)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
