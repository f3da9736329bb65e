package schedule

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", at(9, 0), false},
		{"9:05", at(9, 5), false},
		{"00:00", at(0, 0), false},
		{"23:59", at(23, 59), false},
		{" 10:30 ", at(10, 30), false},
		{"24:00", TimeOfDay{}, true},
		{"99:99", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"-1:30", TimeOfDay{}, true},
		{"12", TimeOfDay{}, true},
		{"12:30:00", TimeOfDay{}, true},
		{"ab:cd", TimeOfDay{}, true},
		{"", TimeOfDay{}, true},
	}

	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		start TimeOfDay
		add   int
		want  TimeOfDay
	}{
		{at(9, 0), 25, at(9, 25)},
		{at(9, 45), 25, at(10, 10)},
		{at(23, 50), 25, at(0, 15)}, // wraps past midnight
		{at(0, 0), 24 * 60, at(0, 0)},
		{at(12, 0), 0, at(12, 0)},
	}

	for _, tc := range cases {
		if got := tc.start.AddMinutes(tc.add); got != tc.want {
			t.Errorf("%v + %dmin = %v, want %v", tc.start, tc.add, got, tc.want)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := at(9, 5).String(); got != "09:05" {
		t.Errorf("String() = %q, want %q", got, "09:05")
	}
	if got := at(23, 59).String(); got != "23:59" {
		t.Errorf("String() = %q, want %q", got, "23:59")
	}
}

func TestParseEndSpec(t *testing.T) {
	cases := []struct {
		in      string
		want    EndCondition
		wantErr bool
	}{
		{"17:00", EndAtTime(at(17, 0)), false},
		{"9:30", EndAtTime(at(9, 30)), false},
		{"5", EndAtCount(5), false},
		{"0", EndAtCount(0), false},
		{"120", EndAtCount(120), false},
		{"-3", EndCondition{}, true},
		{"abc", EndCondition{}, true},
		{"25:99", EndCondition{}, true}, // bad time, not an integer either
		{"", EndCondition{}, true},
	}

	for _, tc := range cases {
		got, err := ParseEndSpec(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseEndSpec(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseEndSpec(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseEndSpec(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
