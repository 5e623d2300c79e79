// Package info prints where noter keeps its data and what it holds.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/noter/pkg/app"
	"tableflip.dev/noter/pkg/repository"
)

type Info struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show info, no session")
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	cfg := n.Service.Config()

	if override := os.Getenv("NOTER_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "NOTER_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "NOTER_CONFIG_PATH env var not set")
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("path:", cfg.BasePath())
	tbl.AddRow("window.size:", cfg.WindowSize)
	tbl.AddRow("window.expand:", cfg.ExpandStep)
	tbl.AddRow("window.threshold:", cfg.Threshold)
	tbl.AddRow("overdue.lookback:", cfg.Lookback)
	tbl.AddRow("export.window:", cfg.ExportWindow)
	tbl.AddRow("log.level:", cfg.Level())
	_, _ = fmt.Fprintln(out, tbl)

	counts := map[repository.Kind]int{}
	var unknown []string
	for _, k := range n.Service.Repo.Store().Keys(ctx) {
		kind, _, ok := repository.ParseKey(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		counts[kind]++
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out, "Buckets:")
	if len(counts) == 0 {
		_, _ = fmt.Fprintln(out, "  no buckets")
	}
	for _, kind := range []repository.Kind{repository.KindDateNotes, repository.KindFutureNotes, repository.KindJournal} {
		if c := counts[kind]; c > 0 {
			_, _ = fmt.Fprintf(out, "  %s: %d\n", kind, c)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		_, _ = fmt.Fprintf(out, "  unrecognized: %s\n", k)
	}

	st := n.Service.Repo.Cache().Stats()
	_, _ = fmt.Fprintf(out, "Cache: %d days cached, %d hits, %d misses\n", st.Dates, st.Hits, st.Misses)

	_, _ = fmt.Fprintln(out, "Today:", n.Service.TodaySummary())
	n.Service.RefreshOverdueNotes()
	_, _ = fmt.Fprintln(out, "Overdue:", n.Service.Overdue.Summary())
	return nil
}
