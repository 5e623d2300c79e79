package future

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/store"
)

func init() {
	color.NoColor = true
}

func TestFuturePrintsListAndSummary(t *testing.T) {
	svc, err := app.Open(store.NewMemory(), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, text := range []string{"Learn Go", "Visit Lisbon"} {
		if _, err := svc.Add(nil, text); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	var out bytes.Buffer
	f := Future{Service: svc, Out: &out}
	if err := f.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Future - 2 notes", "[ ] Learn Go", "[ ] Visit Lisbon", "Work is not a wolf"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}
