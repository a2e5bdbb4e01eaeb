package gitignore

import "testing"

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern  string
		dirOnly  bool
		negation bool
		anchored bool
		want     string
	}{
		{"*.pyc", false, false, false, `(^|[/])[^/]*\.pyc$`},
		{"root.txt", false, false, true, `^root\.txt$`},
		{"a/**/b", false, false, true, `^a[/](.*[/])?b$`},
		{"foo/**", false, false, true, `^foo[/].*$`},
		{"build", true, false, false, `(^|[/])build($|/)`},
		{"build", true, true, false, `(^|[/])build/$`},
		{"?at", false, false, false, `(^|[/])[^/]at$`},
		{"a[!bc]d", false, false, false, `(^|[/])a[^bc]d$`},
		{"a[^x]d", false, false, false, `(^|[/])a[\^x]d$`},
		{"a[b", false, false, false, `(^|[/])a\[b$`},
		{"", false, false, true, `^$`},
	}
	for _, tt := range tests {
		got := translate(tt.pattern, tt.dirOnly, tt.negation, tt.anchored)
		if got != tt.want {
			t.Errorf("translate(%q, dir:%v, neg:%v, anch:%v) = %q, want %q",
				tt.pattern, tt.dirOnly, tt.negation, tt.anchored, got, tt.want)
		}
	}
}

func TestTranslateClassStripsSeparator(t *testing.T) {
	t.Parallel()

	// A separator inside a class is stripped, never matched literally.
	got := translate("a[x/y]b", false, false, true)
	want := `^a[xy]b$`
	if got != want {
		t.Errorf("translate = %q, want %q", got, want)
	}
}

func TestStripTrailingSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"name", "name"},
		{"name   ", "name"},
		{`name\ `, "name "},
		{`name\ \ `, "name  "},
		// The rightmost unescaped space goes first; the escaped one then
		// disables stripping for the rest of the scan.
		{`name\  `, "name "},
		// The first two positions are never stripped.
		{"a ", "a "},
		{"  ", "  "},
	}
	for _, tt := range tests {
		if got := stripTrailingSpaces(tt.in); got != tt.want {
			t.Errorf("stripTrailingSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
