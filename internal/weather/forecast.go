package weather

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Forecast описывает нужную часть ответа OpenWeatherMap /forecast:
// пятидневный прогноз с шагом в три часа.
type Forecast struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []ForecastEntry `json:"list"`
}

// ForecastEntry — один трёхчасовой интервал прогноза.
type ForecastEntry struct {
	DtTxt string `json:"dt_txt"`
	Main  struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// DaySummary — сводка прогноза за один день: минимальная и максимальная
// температура, описание и иконка срединного интервала.
type DaySummary struct {
	Date        string  `json:"data"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Description string  `json:"descricao"`
	Icon        string  `json:"icone"`
	WeatherID   int     `json:"weatherId"`
}

// ParseForecast разбирает сырой ответ вышестоящего API.
func ParseForecast(raw json.RawMessage) (*Forecast, error) {
	var f Forecast
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	return &f, nil
}

// SummarizeByDay группирует трёхчасовые интервалы по календарным дням.
// Дни идут в порядке первого появления в списке прогноза.
func SummarizeByDay(f *Forecast) []DaySummary {
	if f == nil || len(f.List) == 0 {
		return []DaySummary{}
	}

	type dayBucket struct {
		temps   []float64
		entries []ForecastEntry
	}

	buckets := make(map[string]*dayBucket)
	var order []string

	for _, entry := range f.List {
		day, _, found := strings.Cut(entry.DtTxt, " ")
		if !found || len(entry.Weather) == 0 {
			continue
		}

		b, ok := buckets[day]
		if !ok {
			b = &dayBucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.temps = append(b.temps, entry.Main.Temp)
		b.entries = append(b.entries, entry)
	}

	summaries := make([]DaySummary, 0, len(order))
	for _, day := range order {
		b := buckets[day]

		min, max := b.temps[0], b.temps[0]
		for _, t := range b.temps[1:] {
			if t < min {
				min = t
			}
			if t > max {
				max = t
			}
		}

		// Срединный интервал примерно соответствует полудню.
		midday := b.entries[len(b.entries)/2].Weather[0]

		summaries = append(summaries, DaySummary{
			Date:        day,
			TempMin:     min,
			TempMax:     max,
			Description: midday.Description,
			Icon:        midday.Icon,
			WeatherID:   midday.ID,
		})
	}
	return summaries
}
