package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "Date"}, {title: "WPM", right: true}, {title: "Acc", right: true}}
	rows := [][]string{
		{"Mar 01", "112", "97%"},
		{"Mar 02 10:00", "8", "100%"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date         WPM  Acc" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Mar 01       112  97%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Mar 02 10:00   8 100%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]column{{title: "Name"}, {title: "Note"}}, [][]string{{"a"}})
	if lines[1] != "a" {
		t.Fatalf("expected trailing padding trimmed, got %q", lines[1])
	}
}
