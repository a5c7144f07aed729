package pipeline

import (
	"github.com/VoteScope/VS-Dashboards/internal/dataset"
)

// MarginRow is one county with its computed margin for a single election.
// Margin is NaN when the county reported zero total votes.
type MarginRow struct {
	dataset.CountyRecord
	Margin float64
}

// ShiftRow is one county matched across two elections, with the margin of
// each period and their difference. Winner reflects the current period.
type ShiftRow struct {
	FIPS       string
	CountyName string
	State      string
	TotalVotes int
	MarginCur  float64
	MarginPrev float64
	Shift      float64
	Winner     string
}

// Margins computes the per-county margin for every row of a single election
// table, preserving file order. Every output row carries its metric fully
// computed; undefined margins are carried as NaN rather than dropped.
func Margins(t *dataset.CountyTable) []MarginRow {
	if t == nil {
		return nil
	}
	out := make([]MarginRow, 0, len(t.Records))
	for _, rec := range t.Records {
		out = append(out, MarginRow{
			CountyRecord: rec,
			Margin:       Margin(rec.VotesGOP, rec.VotesDem, rec.TotalVotes),
		})
	}
	return out
}

// JoinMargins inner-joins two election tables on FIPS and computes the margin
// shift for every matched county. Output order follows cur; counties present
// in only one table are omitted, which is a documented property of the join,
// not an error. When prev is nil the result is empty — use Margins for
// single-period views.
func JoinMargins(cur, prev *dataset.CountyTable) []ShiftRow {
	if cur == nil || prev == nil {
		return nil
	}

	prevByFIPS := make(map[string]dataset.CountyRecord, len(prev.Records))
	for _, rec := range prev.Records {
		prevByFIPS[rec.FIPS] = rec
	}

	out := make([]ShiftRow, 0, len(cur.Records))
	for _, rec := range cur.Records {
		p, ok := prevByFIPS[rec.FIPS]
		if !ok {
			continue
		}
		mCur := Margin(rec.VotesGOP, rec.VotesDem, rec.TotalVotes)
		mPrev := Margin(p.VotesGOP, p.VotesDem, p.TotalVotes)
		out = append(out, ShiftRow{
			FIPS:       rec.FIPS,
			CountyName: rec.CountyName,
			State:      rec.State,
			TotalVotes: rec.TotalVotes,
			MarginCur:  mCur,
			MarginPrev: mPrev,
			Shift:      Shift(mCur, mPrev),
			Winner:     Winner(mCur),
		})
	}
	return out
}
