package calendar

import (
	"testing"

	"tableflip.dev/noter/pkg/timeutil"
)

func TestGrid(t *testing.T) {
	// June 2024 starts on a Saturday and spans six rows.
	grid := Grid(timeutil.MustDate("2024-06-20"))
	if len(grid) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(grid))
	}
	if grid[0][6] != 1 || grid[0][5] != 0 {
		t.Fatalf("unexpected first week %v", grid[0])
	}
	last := grid[5]
	if last[0] != 30 || last[1] != 0 {
		t.Fatalf("unexpected last week %v", last)
	}
	for _, w := range grid {
		if len(w) != 7 {
			t.Fatalf("ragged week %v", w)
		}
	}

	// February 2026 starts on a Sunday and fills exactly four rows.
	if got := len(Grid(timeutil.MustDate("2026-02-01"))); got != 4 {
		t.Fatalf("expected 4 weeks, got %d", got)
	}
	if Grid(timeutil.Date{}) != nil {
		t.Fatal("expected nil grid for zero date")
	}
}

func TestRenderPlain(t *testing.T) {
	out := Render(timeutil.MustDate("2026-02-10"), []Day{{Day: 10, Open: 2}}, Options{ShowHeader: true})
	want := "February 2026\n" + weekdays + "\n" +
		" 1  2  3  4  5  6  7\n" +
		" 8  9 10 11 12 13 14\n" +
		"15 16 17 18 19 20 21\n" +
		"22 23 24 25 26 27 28"
	if out != want {
		t.Fatalf("got\n%s\nwant\n%s", out, want)
	}
}
