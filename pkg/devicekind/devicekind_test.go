package devicekind

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		machine string
		want    Kind
	}{
		{machine: "Redmi-Phone", want: Phone},
		{machine: "android-9f3a", want: Phone},
		{machine: "My Mobile", want: Phone},
		{machine: "IQOO Neo5", want: Phone},
		{machine: "iq13-handset", want: Phone},
		{machine: "DESKTOP-A1B2C3", want: Desktop},
		{machine: "work-laptop", want: Desktop},
		{machine: "", want: Desktop},
	}

	for _, tt := range tests {
		t.Run(tt.machine, func(t *testing.T) {
			if got := Detect(tt.machine); got != tt.want {
				t.Errorf("Detect(%q) = %v, want %v", tt.machine, got, tt.want)
			}
		})
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	if Detect("ANDROID") != Phone {
		t.Error("Detect(ANDROID) should be phone")
	}
	if Detect("PhOnE-x") != Phone {
		t.Error("Detect(PhOnE-x) should be phone")
	}
}

func TestKindString(t *testing.T) {
	if Phone.String() != "phone" {
		t.Errorf("Phone.String() = %s", Phone.String())
	}
	if Desktop.String() != "desktop" {
		t.Errorf("Desktop.String() = %s", Desktop.String())
	}
}
