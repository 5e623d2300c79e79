package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func newSession(t *testing.T) *app.Service {
	t.Helper()
	clock := timeutil.FixedClock(time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))
	svc, err := app.Open(store.NewMemory(), store.DefaultConfig(), app.WithClock(clock))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return svc
}

func TestReportListsCompletedNotes(t *testing.T) {
	ctx := context.Background()
	svc := newSession(t)
	mon := timeutil.MustDate("2024-06-10")
	wed := timeutil.MustDate("2024-06-12")

	a, err := svc.Add(&mon, "Ship release")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(&wed, "Write notes"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.SetCompleted(ctx, a.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}

	var out bytes.Buffer
	r := Report{Service: svc, Since: mon, Out: &out}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Done 2024-06-10 to 2024-06-15 - 1 note", "Monday, 10 June", "[x] Ship release", "1 completed, 1 still open"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Write notes") {
		t.Errorf("open note listed as done:\n%s", got)
	}
}

func TestReportEmptyRange(t *testing.T) {
	svc := newSession(t)
	var out bytes.Buffer
	r := Report{Service: svc, Out: &out}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(out.String(), "nothing completed in this range") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestReportRequiresSession(t *testing.T) {
	r := Report{}
	if err := r.Do(context.Background()); err == nil {
		t.Fatal("expected error without session")
	}
}
