package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fath2boinc/internal/common"
)

const (
	cpidA = "0123456789abcdef0123456789abcdef"
	cpidB = "ABCDEF0123456789ABCDEF0123456789"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestParse_SingleRow(t *testing.T) {
	deltas, stats, err := Parse(strings.NewReader("team_GRC_" + cpidA + "\t100.0\tx\ty\n"))
	require.NoError(t, err)

	assert.Equal(t, Deltas{cpidA: 100}, deltas)
	assert.Equal(t, 1, stats.Lines)
	assert.Equal(t, 1, stats.Accepted)
	assert.Zero(t, stats.SkippedTotal())
}

func TestParse_Filtering(t *testing.T) {
	in := lines(
		"Tue Oct 19 10:00:00 GMT 2026",
		"name\tnewcredit\tsum(total)\tid",
		"team_ABC_"+cpidA+"\t10\t1\t1",
		"GRC_"+cpidA+"\t10\t1\t1",
		"team_GRC_nothexnothexnothexnothexnothexno\t10\t1\t1",
		"team_GRC_"+cpidA+"\t10\t1",
		"alice_GRC_"+cpidB+"\t25.5\t3\t99",
	)

	deltas, stats, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, Deltas{cpidB: 25.5}, deltas)
	assert.Equal(t, 7, stats.Lines)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, map[SkipReason]int{
		SkipFieldCount: 2,
		SkipHeader:     1,
		SkipTag:        1,
		SkipNameParts:  1,
		SkipCPID:       1,
	}, stats.Skipped)
	assert.Equal(t, 6, stats.SkippedTotal())
}

func TestParse_SanitizesName(t *testing.T) {
	in := lines(
		"<na,me>\ta\tb\tc",
		"<evil>_GRC_"+cpidA+"\t1\tb\tc",
		"team_G,R<C>_"+cpidB+"\t2\tb\tc",
	)

	deltas, stats, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, Deltas{cpidA: 1, cpidB: 2}, deltas)
	assert.Equal(t, 1, stats.Skipped[SkipHeader])
}

func TestParse_ExtraUnderscorePrefixes(t *testing.T) {
	deltas, _, err := Parse(strings.NewReader("a_b_c_GRC_" + cpidA + "\t3\tx\ty\n"))
	require.NoError(t, err)
	assert.Equal(t, Deltas{cpidA: 3}, deltas)
}

func TestParse_SumsRowsPerCPID(t *testing.T) {
	in := lines(
		"one_GRC_"+cpidA+"\t30\tx\ty",
		"two_GRC_"+cpidA+"\t70\tx\ty",
	)
	reversed := lines(
		"two_GRC_"+cpidA+"\t70\tx\ty",
		"one_GRC_"+cpidA+"\t30\tx\ty",
	)

	d1, _, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	d2, _, err := Parse(strings.NewReader(reversed))
	require.NoError(t, err)

	assert.Equal(t, Deltas{cpidA: 100}, d1)
	assert.Equal(t, d1, d2)
}

func TestParse_CRLF(t *testing.T) {
	deltas, _, err := Parse(strings.NewReader("team_GRC_" + cpidA + "\t5\tx\ty\r\n"))
	require.NoError(t, err)
	assert.Equal(t, Deltas{cpidA: 5}, deltas)
}

func TestParse_MalformedScoreIsFatal(t *testing.T) {
	for _, score := range []string{"abc", "", "NaN", "inf"} {
		t.Run(score, func(t *testing.T) {
			in := lines(
				"ok_GRC_"+cpidB+"\t1\tx\ty",
				"bad_GRC_"+cpidA+"\t"+score+"\tx\ty",
			)
			deltas, _, err := Parse(strings.NewReader(in))
			require.ErrorIs(t, err, common.ErrMalformedSummary)
			assert.Contains(t, err.Error(), "line 2")
			assert.Nil(t, deltas)
		})
	}
}

func TestParse_BadScoreOnFilteredRowIsIgnored(t *testing.T) {
	deltas, stats, err := Parse(strings.NewReader("team_ABC_" + cpidA + "\tnotanumber\tx\ty\n"))
	require.NoError(t, err)
	assert.Empty(t, deltas)
	assert.Equal(t, 1, stats.Skipped[SkipTag])
}

func TestParse_Empty(t *testing.T) {
	deltas, stats, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, deltas)
	assert.Zero(t, stats.Lines)
}

func TestParse_SumOverflowIsFatal(t *testing.T) {
	in := lines(
		"a_GRC_"+cpidA+"\t1e308\tx\ty",
		"b_GRC_"+cpidA+"\t1e308\tx\ty",
	)

	deltas, _, err := Parse(strings.NewReader(in))
	require.ErrorIs(t, err, common.ErrMalformedSummary)
	assert.Contains(t, err.Error(), "line 2")
	assert.Nil(t, deltas)
}

func TestParse_LargeFiniteSumsAreKept(t *testing.T) {
	in := lines(
		"a_GRC_"+cpidA+"\t1e308\tx\ty",
		"b_GRC_"+cpidB+"\t1e308\tx\ty",
	)

	deltas, _, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Deltas{cpidA: 1e308, cpidB: 1e308}, deltas)
}

func TestParse_OversizeLineIsSkipped(t *testing.T) {
	long := "team_ABC_" + cpidB + "\t" + strings.Repeat("9", 2<<20) + "\tx\ty"
	in := lines(long, "team_GRC_"+cpidA+"\t5\tx\ty")

	deltas, stats, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, Deltas{cpidA: 5}, deltas)
	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 1, stats.Skipped[SkipOversize])
}

func TestParse_LastLineWithoutNewline(t *testing.T) {
	deltas, stats, err := Parse(strings.NewReader("team_GRC_" + cpidA + "\t5\tx\ty"))
	require.NoError(t, err)
	assert.Equal(t, Deltas{cpidA: 5}, deltas)
	assert.Equal(t, 1, stats.Lines)
}
