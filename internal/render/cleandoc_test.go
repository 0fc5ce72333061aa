package render

import "testing"

func TestCleanDoc(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank only", " \n\t\n", ""},
		{"single line", "  hello  ", "hello"},
		{"continuation joins with space", "first half\nsecond half", "first half second half"},
		{"single blank becomes newline", "para one\n\npara two", "para one\npara two"},
		{"multiple blanks become one blank", "para one\n\n\n\npara two", "para one\n\npara two"},
		{"crlf line endings", "a\r\nb\rc", "a b c"},
		{"leading and trailing blanks dropped", "\n\nbody\n\n", "body"},
		{
			"block comment stars stripped",
			" * line one\n * line two\n *\n * line three",
			"line one line two\nline three",
		},
		{
			"mixed lines keep stars",
			" * starred\nplain",
			"* starred plain",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanDoc(tc.in); got != tc.want {
				t.Fatalf("CleanDoc(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
