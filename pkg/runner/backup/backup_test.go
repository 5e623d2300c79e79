package backup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/store"
	"tableflip.dev/noter/pkg/timeutil"
)

func newSession(t *testing.T) *app.Service {
	t.Helper()
	cfg := store.DefaultConfig()
	cfg.WindowSize = 3
	clock := timeutil.FixedClock(time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))
	svc, err := app.Open(store.NewMemory(), cfg, app.WithClock(clock))
	require.NoError(t, err)
	return svc
}

func TestExportJSONAndYAML(t *testing.T) {
	svc := newSession(t)
	today := svc.Today()
	_, err := svc.Add(&today, "Backup me")
	require.NoError(t, err)

	var out bytes.Buffer
	e := Export{Service: svc, Out: &out}
	require.NoError(t, e.Do(context.Background()))
	assert.Contains(t, out.String(), `"notes_2024-06-15"`)
	assert.True(t, strings.HasSuffix(out.String(), "\n"))

	out.Reset()
	e = Export{Service: svc, YAML: true, Out: &out}
	require.NoError(t, e.Do(context.Background()))
	assert.Contains(t, out.String(), "notes_2024-06-15:")
	assert.Contains(t, out.String(), "text: Backup me")
}

func TestExportAllIncludesOldDays(t *testing.T) {
	svc := newSession(t)
	old := timeutil.MustDate("2023-01-01")
	_, err := svc.Add(&old, "Ancient")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, (&Export{Service: svc, Out: &out}).Do(context.Background()))
	assert.NotContains(t, out.String(), "Ancient")

	out.Reset()
	require.NoError(t, (&Export{Service: svc, All: true, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "Ancient")
}

func TestRoundTripThroughFile(t *testing.T) {
	src := newSession(t)
	today := src.Today()
	_, err := src.Add(&today, "Carry over")
	require.NoError(t, err)
	_, _, err = src.Journal.Save("j1", "Dear diary")
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "backup.yaml")
	require.NoError(t, (&Export{Service: src, YAML: true, File: file}).Do(context.Background()))

	dst := newSession(t)
	var out bytes.Buffer
	require.NoError(t, (&Import{Service: dst, File: file, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "import complete")

	got := dst.Repo.LoadNotes(today)
	require.Len(t, got, 1)
	assert.Equal(t, "Carry over", got[0].Text)
	e, ok := dst.Journal.Get("j1")
	require.True(t, ok)
	assert.Equal(t, "Dear diary", e.Content)
}

func TestImportFromReaderAcceptsJSON(t *testing.T) {
	svc := newSession(t)
	in := strings.NewReader(`{"future_notes":[{"id":"f1","text":"Someday","isCompleted":false}]}`)
	require.NoError(t, (&Import{Service: svc, In: in, Out: &bytes.Buffer{}}).Do(context.Background()))
	got := svc.Repo.LoadFutureNotes()
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
}

func TestImportRejectsMalformed(t *testing.T) {
	svc := newSession(t)
	today := svc.Today()
	_, err := svc.Add(&today, "Keep")
	require.NoError(t, err)

	for name, doc := range map[string]string{
		"empty":      "   ",
		"not yaml":   "{[",
		"not object": "- a\n- b\n",
		"bad bucket": "notes_2024-06-15: 3\n",
	} {
		t.Run(name, func(t *testing.T) {
			err := (&Import{Service: svc, In: strings.NewReader(doc), Out: &bytes.Buffer{}}).Do(context.Background())
			assert.Error(t, err)
			got := svc.Repo.LoadNotes(today)
			require.Len(t, got, 1)
			assert.Equal(t, "Keep", got[0].Text)
		})
	}
}

func TestImportMissingFile(t *testing.T) {
	svc := newSession(t)
	err := (&Import{Service: svc, File: filepath.Join(t.TempDir(), "nope.json")}).Do(context.Background())
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, os.IsNotExist(statErr))
}
