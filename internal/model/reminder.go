package model

import "fmt"

// ReminderDue указывает, когда наступает запланированное обслуживание.
type ReminderDue string

const (
	// DueToday — обслуживание назначено на сегодня.
	DueToday ReminderDue = "today"
	// DueTomorrow — обслуживание назначено на завтра.
	DueTomorrow ReminderDue = "tomorrow"
)

// Reminder — напоминание об одном запланированном обслуживании.
type Reminder struct {
	VehicleID    string      `json:"vehicleId"`
	VehicleModel string      `json:"vehicleModel"`
	ServiceType  string      `json:"serviceType"`
	Date         string      `json:"date"`
	Due          ReminderDue `json:"due"`
}

// Format возвращает строку напоминания для отображения пользователю.
func (r Reminder) Format() string {
	label := "HOJE"
	if r.Due == DueTomorrow {
		label = "AMANHÃ"
	}
	return fmt.Sprintf("%s: %s para %s", label, r.ServiceType, r.VehicleModel)
}

// UpcomingReminders обходит весь парк и собирает запланированные записи,
// дата которых равна today или следующему дню. Чистая функция без
// побочных эффектов; порядок следует порядку парка и историй.
func UpcomingReminders(vehicles []*Vehicle, today Date) []Reminder {
	tomorrow := today.AddDays(1)

	var reminders []Reminder
	for _, v := range vehicles {
		for _, m := range v.History {
			if m.Status != StatusScheduled {
				continue
			}
			date, ok := m.DateValue()
			if !ok {
				continue
			}

			var due ReminderDue
			switch {
			case date.Equal(today):
				due = DueToday
			case date.Equal(tomorrow):
				due = DueTomorrow
			default:
				continue
			}

			reminders = append(reminders, Reminder{
				VehicleID:    v.ID,
				VehicleModel: v.Model,
				ServiceType:  m.ServiceType,
				Date:         date.String(),
				Due:          due,
			})
		}
	}
	return reminders
}
