package schedule

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalize_SpacePipeBecomesTabPipe(t *testing.T) {
	got := Normalize("Task | 5")
	want := "Task\t|　5"
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
	i := strings.IndexByte(got, '|')
	if got[i-1] != '\t' {
		t.Fatalf("expected tab before separator, got %q", got)
	}
	if r, _ := utf8.DecodeRuneInString(got[i+1:]); r != '　' {
		t.Fatalf("expected full-width space after separator, got %q", r)
	}
}

func TestNormalize_Table(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "no pipe untouched", in: "Header\twith  tabs", want: "Header\twith  tabs"},
		{name: "canonical kept", in: "a\t|　1", want: "a\t|　1"},
		{name: "no space before pipe", in: "a|1", want: "a|1"},
		{name: "pipe then space only", in: "a| 1", want: "a|　1"},
		{name: "stray tab collapses", in: "a\tb | 1", want: "a b\t|　1"},
		{name: "tab after pipe collapses", in: "a |\t1", want: "a\t|　1"},
		{name: "first separator only", in: "a | b | 1", want: "a\t|　b |　1"},
		{name: "existing tab pipe wins", in: "a | b\t| 1", want: "a |　b\t|　1"},
		{name: "full-width space before pipe", in: "a　| 1", want: "a\t|　1"},
		{name: "next line is not a separator", in: "a\u0085| 1", want: "a\u0085|　1"},
		{name: "multi line", in: "x | 1\n\nheader\n[x]y | 2", want: "x\t|　1\n\nheader\n[x]y\t|　2"},
		{name: "trailing newline kept", in: "x | 1\n", want: "x\t|　1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Write report | 25\n[x]Email boss | 5\nBrainstorm | 10",
		"a\t\tb | 1",
		"a |\tb |\t| c",
		"| |",
		"a| |b",
		"\t|\t|\t",
		"a　|　| 3",
		"x\r| 1\r\ny | 2",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestNormalize_PreservesRuneCountPerLine(t *testing.T) {
	in := "Deep work | 50\n\tstretch |\t5\nno separator here"
	out := Normalize(in)
	inLines := strings.Split(in, "\n")
	outLines := strings.Split(out, "\n")
	if len(inLines) != len(outLines) {
		t.Fatalf("line count changed: %d -> %d", len(inLines), len(outLines))
	}
	for i := range inLines {
		if a, b := utf8.RuneCountInString(inLines[i]), utf8.RuneCountInString(outLines[i]); a != b {
			t.Fatalf("line %d rune count %d -> %d (%q)", i, a, b, outLines[i])
		}
	}
}

func FuzzNormalize_Idempotent(f *testing.F) {
	for _, seed := range []string{"", "a | 1", "a\t\t|\t b", "[x]a | 2\nb| 3", "| \t|"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: once=%q twice=%q", s, once, twice)
		}
	})
}
