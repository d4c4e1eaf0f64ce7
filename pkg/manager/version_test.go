package manager

import "testing"

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  Version
		ok    bool
	}{
		{"4.1.2", Version{4, 1, 2}, true},
		{"Homebrew 4.1.2", Version{4, 1, 2}, true},
		{"pip 23.0.1 from /usr/lib/python3", Version{23, 0, 1}, true},
		{"10.2", Version{10, 2, 0}, true},
		{"7", Version{7, 0, 0}, true},
		{"v1.2.3-beta.4", Version{1, 2, 3}, true},
		{"Pacman v6.0.2 - libalpm v13.0.2", Version{6, 0, 2}, true},
		{"no digits here", Version{}, false},
		{"", Version{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseVersion(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseVersion(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{1, 2, 3}, Version{1, 2, 3}, 0},
		{Version{1, 2, 3}, Version{1, 2, 4}, -1},
		{Version{2, 0, 0}, Version{1, 9, 9}, 1},
		{Version{1, 3, 0}, Version{1, 2, 9}, 1},
		{Version{0, 0, 0}, Version{0, 0, 1}, -1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("(%v).Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	v := Version{6, 0, 2}
	if v.String() != "6.0.2" {
		t.Errorf("String() = %q, want %q", v.String(), "6.0.2")
	}
	if !(Version{}).IsZero() {
		t.Error("zero version should report IsZero")
	}
	if (Version{0, 0, 1}).IsZero() {
		t.Error("0.0.1 should not report IsZero")
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("\n\n  hello world  \nsecond"); got != "hello world" {
		t.Errorf("firstLine() = %q", got)
	}
	if got := firstLine("   \n\t\n"); got != "" {
		t.Errorf("firstLine() on blanks = %q, want empty", got)
	}
}
