package model

import (
	"testing"
	"time"
)

func TestUpcomingReminders(t *testing.T) {
	today := NewDate(2025, time.March, 15)

	car := newCar(t)
	records := []Maintenance{
		{Date: "2025-03-15", ServiceType: "Revisão de hoje", Status: StatusScheduled},
		{Date: "2025-03-16", ServiceType: "Troca de pneus", Status: StatusScheduled},
		{Date: "2025-03-20", ServiceType: "Revisão distante", Status: StatusScheduled},
		{Date: "2025-03-15", ServiceType: "Já realizada", Cost: ptrFloat(100), Status: StatusDone},
	}
	for _, m := range records {
		if err := car.AddMaintenance(m, today); err != nil {
			t.Fatalf("AddMaintenance(%s) error: %v", m.ServiceType, err)
		}
	}

	reminders := UpcomingReminders([]*Vehicle{car}, today)
	if len(reminders) != 2 {
		t.Fatalf("got %d reminders, want 2: %+v", len(reminders), reminders)
	}

	if reminders[0].Due != DueToday || reminders[0].ServiceType != "Revisão de hoje" {
		t.Fatalf("unexpected first reminder: %+v", reminders[0])
	}
	if reminders[1].Due != DueTomorrow || reminders[1].ServiceType != "Troca de pneus" {
		t.Fatalf("unexpected second reminder: %+v", reminders[1])
	}

	if got := reminders[0].Format(); got != "HOJE: Revisão de hoje para Fusca" {
		t.Fatalf("Format() = %q", got)
	}
	if got := reminders[1].Format(); got != "AMANHÃ: Troca de pneus para Fusca" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestUpcomingRemindersExpireWithTime(t *testing.T) {
	today := NewDate(2025, time.March, 15)

	car := newCar(t)
	tomorrowRecord := Maintenance{Date: "2025-03-16", ServiceType: "Troca de pneus", Status: StatusScheduled}
	if err := car.AddMaintenance(tomorrowRecord, today); err != nil {
		t.Fatalf("AddMaintenance error: %v", err)
	}

	if got := UpcomingReminders([]*Vehicle{car}, today); len(got) != 1 {
		t.Fatalf("got %d reminders, want 1", len(got))
	}
	// Через два дня запись уже в прошлом и не попадает в напоминания.
	if got := UpcomingReminders([]*Vehicle{car}, today.AddDays(2)); len(got) != 0 {
		t.Fatalf("got %d reminders, want 0", len(got))
	}
}

func TestUpcomingRemindersEmptyFleet(t *testing.T) {
	if got := UpcomingReminders(nil, Today()); len(got) != 0 {
		t.Fatalf("got %d reminders, want 0", len(got))
	}
}
