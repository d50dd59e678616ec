package domain

import "testing"

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidStatus("SCHEDULED") {
		t.Error("unknown status must not be valid")
	}
}

func TestAppointment_AllowedActor(t *testing.T) {
	a := &Appointment{PatientID: "p1", DoctorID: "d1"}

	cases := []struct {
		name      string
		to        AppointmentStatus
		actorID   string
		actorRole string
		allowed   bool
	}{
		{"own doctor confirms", StatusConfirmed, "d1", RoleDoctor, true},
		{"other doctor confirms", StatusConfirmed, "d2", RoleDoctor, false},
		{"admin confirms", StatusConfirmed, "admin1", RoleAdmin, true},
		{"patient confirms own", StatusConfirmed, "p1", RolePatient, false},
		{"own doctor rejects", StatusRejected, "d1", RoleDoctor, true},
		{"own doctor completes", StatusCompleted, "d1", RoleDoctor, true},
		{"owning patient cancels", StatusCancelled, "p1", RolePatient, true},
		{"other patient cancels", StatusCancelled, "p2", RolePatient, false},
		{"doctor cancels", StatusCancelled, "d1", RoleDoctor, false},
		{"admin cancels", StatusCancelled, "admin1", RoleAdmin, true},
	}

	for _, tc := range cases {
		if got := a.AllowedActor(tc.to, tc.actorID, tc.actorRole); got != tc.allowed {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.allowed)
		}
	}
}

func TestDoctor_SlotAt(t *testing.T) {
	d := &Doctor{Slots: []TimeSlot{
		{ID: "s1", Date: "2024-05-20", Time: "09:00 AM"},
		{ID: "s2", Date: "2024-05-20", Time: "10:30 AM", IsBooked: true},
	}}

	if slot := d.SlotAt("2024-05-20", "10:30 AM"); slot == nil || slot.ID != "s2" {
		t.Fatalf("expected s2, got %+v", slot)
	}
	if slot := d.SlotAt("2024-05-21", "09:00 AM"); slot != nil {
		t.Fatalf("expected nil for unknown slot, got %+v", slot)
	}
}
