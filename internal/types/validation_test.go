package types

import (
	"testing"
	"time"
)

func TestValidateScheduleName(t *testing.T) {
	t.Parallel()
	if err := ValidateScheduleName(ScheduleAppointments); err != nil {
		t.Fatalf("appointments: %v", err)
	}
	if err := ValidateScheduleName(ScheduleMedications); err != nil {
		t.Fatalf("medications: %v", err)
	}
	if err := ValidateScheduleName("diets"); err == nil {
		t.Fatal("expected error for unknown schedule")
	}
}

func TestValidateAddScheduleItem(t *testing.T) {
	t.Parallel()
	ok := AddScheduleItemRequest{Kind: KindAppointment, Title: "MRI", Date: time.Now()}
	if err := ValidateAddScheduleItem(ok); err != nil {
		t.Fatalf("valid appointment rejected: %v", err)
	}
	if err := ValidateAddScheduleItem(AddScheduleItemRequest{Kind: KindAppointment, Date: time.Now()}); err == nil {
		t.Fatal("missing title accepted")
	}
	if err := ValidateAddScheduleItem(AddScheduleItemRequest{Kind: KindMedication, Date: time.Now()}); err == nil {
		t.Fatal("missing name accepted")
	}
	if err := ValidateAddScheduleItem(AddScheduleItemRequest{Kind: KindAppointment, Title: "MRI"}); err == nil {
		t.Fatal("zero date accepted")
	}
	if err := ValidateAddScheduleItem(AddScheduleItemRequest{Kind: "vitamins"}); err == nil {
		t.Fatal("unknown kind accepted")
	}
}

func TestScheduleName_Singular(t *testing.T) {
	t.Parallel()
	if got := ScheduleAppointments.Singular(); got != "appointment" {
		t.Fatalf("Singular() = %q", got)
	}
	if got := ScheduleMedications.Singular(); got != "medication" {
		t.Fatalf("Singular() = %q", got)
	}
}

func TestScheduleName_Kind(t *testing.T) {
	t.Parallel()
	if ScheduleAppointments.Kind() != KindAppointment {
		t.Fatal("appointments kind mismatch")
	}
	if ScheduleMedications.Kind() != KindMedication {
		t.Fatal("medications kind mismatch")
	}
}
