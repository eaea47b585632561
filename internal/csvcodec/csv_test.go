package csvcodec_test

import (
	"reflect"
	"testing"

	"github.com/iho/concilia/internal/csvcodec"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		sep  rune
		want [][]string
	}{
		{
			name: "quoted field with separator",
			text: "desc,valor\n\"um, dois\",3",
			want: [][]string{{"desc", "valor"}, {"um, dois", "3"}},
		},
		{
			name: "doubled quote is a literal quote",
			text: "\"she said \"\"hi\"\"\",2",
			want: [][]string{{`she said "hi"`, "2"}},
		},
		{
			name: "crlf line endings",
			text: "a,b\r\nc,d\r\n",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "newline inside quotes",
			text: "\"line1\nline2\",x",
			want: [][]string{{"line1\nline2", "x"}},
		},
		{
			name: "trailing field without newline",
			text: "a,b\nc,d",
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "trailing separator emits empty field",
			text: "a,",
			want: [][]string{{"a", ""}},
		},
		{
			name: "unterminated quote at end of input",
			text: "a,\"dangling",
			want: [][]string{{"a", "dangling"}},
		},
		{
			name: "semicolon separator",
			text: "a;b\nc;d",
			sep:  ';',
			want: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "blank line between rows",
			text: "a\n\nb",
			want: [][]string{{"a"}, {""}, {"b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := csvcodec.Parse(tt.text, tt.sep)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	rows := [][]string{
		{"date", "description", "amount"},
		{"2020-12-25", "um, dois", "3"},
		{"2020-12-26", `quote "here"`, "-7.50"},
		{"", "multi\nline", "0"},
		{"2020-12-27", "semi;colon", "1"},
	}

	got := csvcodec.Write(rows, ',')

	want := "date,description,amount\n" +
		"2020-12-25,\"um, dois\",3\n" +
		"2020-12-26,\"quote \"\"here\"\"\",-7.50\n" +
		",\"multi\nline\",0\n" +
		"2020-12-27,\"semi;colon\",1"

	if got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		sep  rune
	}{
		{
			name: "plain fields",
			rows: [][]string{{"a", "b"}, {"c", "d"}},
			sep:  ',',
		},
		{
			name: "fields with separators quotes and newlines",
			rows: [][]string{
				{"um, dois", `tr"es`, "a;b"},
				{"line1\nline2", "", "-1.23"},
			},
			sep: ',',
		},
		{
			name: "semicolon separator",
			rows: [][]string{{"a,b", "c;d"}, {"e", "f"}},
			sep:  ';',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := csvcodec.Parse(csvcodec.Write(tt.rows, tt.sep), tt.sep)
			if !reflect.DeepEqual(got, tt.rows) {
				t.Errorf("round trip changed rows: got %#v, want %#v", got, tt.rows)
			}
		})
	}
}
