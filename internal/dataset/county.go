package dataset

import "io"

// CountyRecord is one county's result row for a single presidential election.
// FIPS is always five digits, zero-padded at load.
type CountyRecord struct {
	FIPS       string
	CountyName string
	State      string
	VotesGOP   int
	VotesDem   int
	TotalVotes int
}

// CountyTable holds all valid rows loaded from one election-results CSV,
// in file order. Excluded counts the rows dropped because a numeric cell
// failed coercion or the vote counts were inconsistent; dropped rows are
// never partially repaired.
type CountyTable struct {
	Year     int
	Records  []CountyRecord
	Excluded int
}

// CountySchema describes the expected columns of a county-level results CSV,
// with the header spellings used by the common published datasets.
var CountySchema = Schema{
	Name: "county_results",
	Columns: []Column{
		{Name: "fips", Type: ColString, Aliases: []string{"GEOID", "fips", "county_fips", "county_fips_code", "fips_code", "countyFIPS"}},
		{Name: "county_name", Type: ColString, Aliases: []string{"county_name", "NAME", "county"}},
		{Name: "state", Type: ColString, Aliases: []string{"state_name", "state", "state_po"}},
		{Name: "votes_gop", Type: ColInt, Aliases: []string{"votes_gop", "gop_votes", "rep_votes", "republican_votes", "trump_votes"}},
		{Name: "votes_dem", Type: ColInt, Aliases: []string{"votes_dem", "dem_votes", "democrat_votes", "biden_votes", "harris_votes"}},
		{Name: "total_votes", Type: ColInt, Aliases: []string{"total_votes", "votes_total", "total", "ballots"}},
	},
}

// LoadCounties reads a county-level results CSV for the given election year.
// A missing required column is fatal for the dataset and surfaces as a
// *MissingColumnError; individual rows that fail coercion are excluded whole.
// An empty CSV yields an empty table.
func LoadCounties(r io.Reader, year int) (*CountyTable, error) {
	header, rows, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	t := &CountyTable{Year: year}
	if len(rows) == 0 {
		return t, nil
	}

	idx, err := CountySchema.Resolve(header)
	if err != nil {
		return nil, err
	}

	for _, rec := range rows {
		gop, okG := parseCount(field(rec, idx["votes_gop"]))
		dem, okD := parseCount(field(rec, idx["votes_dem"]))
		total, okT := parseCount(field(rec, idx["total_votes"]))
		fips := field(rec, idx["fips"])
		if !okG || !okD || !okT || fips == "" {
			t.Excluded++
			continue
		}
		// Total may exceed the two-party sum (third parties), never undercut it.
		if total < gop+dem {
			t.Excluded++
			continue
		}
		t.Records = append(t.Records, CountyRecord{
			FIPS:       PadFIPS(fips),
			CountyName: field(rec, idx["county_name"]),
			State:      field(rec, idx["state"]),
			VotesGOP:   gop,
			VotesDem:   dem,
			TotalVotes: total,
		})
	}
	return t, nil
}

// LoadCountiesFile is the file-path variant of LoadCounties.
func LoadCountiesFile(path string, year int) (*CountyTable, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCounties(f, year)
}
