package app

import (
	"tableflip.dev/noter/pkg/note"
	"tableflip.dev/noter/pkg/timeutil"
)

// ReportSection groups the completed notes of one day.
type ReportSection struct {
	Date  timeutil.Date
	Notes []note.Note
}

// ReportResult lists completed notes for a range of days.
type ReportResult struct {
	Since    timeutil.Date
	Until    timeutil.Date
	Sections []ReportSection
	Total    int
	Open     int
}

// Report collects completed notes between since and until inclusive, oldest
// day first. Open counts the notes still unfinished in the same range.
func (s *Service) Report(since, until timeutil.Date) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	res := ReportResult{Since: since, Until: until}
	for d := since; !d.After(until); d = d.AddDays(1) {
		var done []note.Note
		for _, n := range s.Repo.LoadNotes(d) {
			switch {
			case n.IsBlank():
			case n.IsCompleted:
				done = append(done, n)
			default:
				res.Open++
			}
		}
		if len(done) == 0 {
			continue
		}
		res.Sections = append(res.Sections, ReportSection{Date: d, Notes: done})
		res.Total += len(done)
	}
	return res
}
