// Package model содержит доменные сущности умной гаражной системы.
package model

import "fmt"

// MaintenanceStatus описывает состояние записи об обслуживании.
type MaintenanceStatus string

const (
	// StatusDone — обслуживание уже выполнено.
	StatusDone MaintenanceStatus = "Realizada"
	// StatusScheduled — обслуживание запланировано.
	StatusScheduled MaintenanceStatus = "Agendada"
)

// Maintenance описывает одно событие обслуживания транспортного средства.
// Запись неизменяема после добавления в историю; правки моделируются заменой.
type Maintenance struct {
	Date        string            `json:"date"`
	ServiceType string            `json:"serviceType"`
	Cost        *float64          `json:"cost"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
}

// DateValue возвращает разобранную календарную дату записи.
// Для пустой или некорректной даты ok равен false: такие записи
// сортируются в конец и исключаются из сравнений по дням.
func (m Maintenance) DateValue() (Date, bool) {
	if m.Date == "" {
		return Date{}, false
	}
	d, err := ParseDate(m.Date)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// Validate проверяет запись относительно даты today и возвращает
// первую найденную причину некорректности.
func (m Maintenance) Validate(today Date) error {
	if m.ServiceType == "" {
		return ErrEmptyServiceType
	}
	if m.Date == "" {
		return ErrMissingDate
	}

	date, err := ParseDate(m.Date)
	if err != nil {
		return ErrInvalidDate
	}

	if m.Status != StatusDone && m.Status != StatusScheduled {
		return ErrInvalidStatus
	}

	if m.Status == StatusDone {
		if date.After(today) {
			return ErrDoneFutureDate
		}
		if m.Cost == nil || *m.Cost < 0 {
			return ErrDoneInvalidCost
		}
	}

	return nil
}

// Format возвращает строку записи для отображения пользователю:
// "<тип> em <дата> - R$<стоимость> (<описание>) [<статус>]".
// Стоимость выводится только для выполненных записей с заданной суммой.
func (m Maintenance) Format() string {
	dateText := "Data não definida"
	if d, ok := m.DateValue(); ok {
		dateText = d.FormatBR()
	}

	costText := ""
	if m.Status == StatusDone && m.Cost != nil {
		costText = fmt.Sprintf(" - R$%.2f", *m.Cost)
	}

	descText := ""
	if m.Description != "" {
		descText = fmt.Sprintf(" (%s)", m.Description)
	}

	return fmt.Sprintf("%s em %s%s%s [%s]", m.ServiceType, dateText, costText, descText, m.Status)
}
