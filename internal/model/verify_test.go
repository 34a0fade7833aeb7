package model

import "testing"

func TestVerifyTypeLabel(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Password"},
		{1, "Fingerprint"},
		{2, "Card"},
		{3, "Face"},
		{4, "Iris"},
		{15, "Palm"},
		{5, "Unknown"},
		{99, "Unknown"},
		{-1, "Unknown"},
	}
	for _, tc := range cases {
		if got := VerifyTypeLabel(tc.code); got != tc.want {
			t.Fatalf("VerifyTypeLabel(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestVerifyCodeBadge(t *testing.T) {
	cases := []struct {
		code     int
		text     string
		severity Severity
	}{
		{0, "Check In", SeveritySuccess},
		{1, "Check Out", SeverityDanger},
		{2, "Break Out", SeverityWarning},
		{3, "Break In", SeverityInfo},
		{4, "OT In", SeverityInfo},
		{5, "OT Out", SeverityInfo},
		{99, "Unknown", SeverityInfo},
		{-7, "Unknown", SeverityInfo},
	}
	for _, tc := range cases {
		b := VerifyCodeBadge(tc.code)
		if b.Text != tc.text || b.Severity != tc.severity {
			t.Fatalf("VerifyCodeBadge(%d) = %+v, want {%s %s}", tc.code, b, tc.text, tc.severity)
		}
	}
}

func TestUserDisplayNameAndInitial(t *testing.T) {
	cases := []struct {
		user    User
		name    string
		initial string
	}{
		{User{Username: "bob", FirstName: "Bob", LastName: "Smith"}, "Bob Smith", "B"},
		{User{Username: "bob"}, "bob", "B"},
		{User{Username: "bob", FirstName: "Bob"}, "bob", "B"}, // имя без фамилии не используется
		{User{Username: "ядвига"}, "ядвига", "Я"},
		{User{}, "", ""},
	}
	for _, tc := range cases {
		if got := tc.user.DisplayName(); got != tc.name {
			t.Fatalf("DisplayName(%+v) = %q, want %q", tc.user, got, tc.name)
		}
		if got := tc.user.AvatarInitial(); got != tc.initial {
			t.Fatalf("AvatarInitial(%+v) = %q, want %q", tc.user, got, tc.initial)
		}
	}
}

func TestRecordFallbacks(t *testing.T) {
	r := AttendanceRecord{}
	if r.Username() != "Unknown" || r.EmployeeID() != "-" || r.DeviceName() != "Unknown Device" {
		t.Fatalf("fallbacks = %q %q %q", r.Username(), r.EmployeeID(), r.DeviceName())
	}
	r = AttendanceRecord{
		User:   &UserRef{Username: "bob", EmployeeID: "EMP-2"},
		Device: &DeviceRef{Name: "Main Entrance"},
	}
	if r.Username() != "bob" || r.EmployeeID() != "EMP-2" || r.DeviceName() != "Main Entrance" {
		t.Fatalf("values = %q %q %q", r.Username(), r.EmployeeID(), r.DeviceName())
	}
}
