package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"abate", "v.", "1"},
		{"candid", "adj.", "12"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"abate   v.     1",
		"candid  adj.  12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	rows := [][]string{
		{"頻寬", "x"},
		{"ab", "y"},
	}
	got := Format(rows, nil)
	want := []string{
		"頻寬  x",
		"ab    y",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n%q\nwant\n%q", got, want)
	}
}

func TestFormatMaxTruncates(t *testing.T) {
	got := FormatMax([][]string{{"bandwidth", "n."}}, nil, []int{5})
	if got[0] != "band…  n." {
		t.Fatalf("unexpected row %q", got[0])
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestTruncateAndPad(t *testing.T) {
	if got := Truncate("延遲時間", 5); got != "延遲…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected untouched text, got %q", got)
	}
	if got := Pad("頻", 4); got != "頻  " {
		t.Fatalf("unexpected pad %q", got)
	}
}
