package model

import "time"

const dateLayout = "2006-01-02"

// Date представляет календарную дату без компонента времени.
// Все сравнения выполняются по целым дням, что исключает ошибки
// усечения меток времени на границах часовых поясов.
type Date struct {
	t time.Time
}

// NewDate создаёт дату из года, месяца и дня.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает дату в формате YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// Today возвращает текущую дату по локальному времени процесса.
func Today() Date {
	year, month, day := time.Now().Date()
	return NewDate(year, month, day)
}

// AddDays возвращает дату, смещённую на указанное число дней.
func (d Date) AddDays(days int) Date {
	return Date{t: d.t.AddDate(0, 0, days)}
}

// Equal сообщает, совпадают ли даты.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Before сообщает, предшествует ли дата other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After сообщает, следует ли дата за other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// IsZero сообщает, является ли дата нулевым значением.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// String возвращает дату в формате YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// FormatBR возвращает дату в бразильском формате DD/MM/YYYY,
// как её отображает интерфейс.
func (d Date) FormatBR() string {
	return d.t.Format("02/01/2006")
}
