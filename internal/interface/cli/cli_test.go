package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-quality-analyzer/internal/domain/entity"
	"flight-quality-analyzer/internal/usecase"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args,
		"--csv", filepath.Join("testdata", "flights.csv"),
		"--timezones", filepath.Join("testdata", "airport_timezones.txt"),
	))

	err := cmd.Execute()
	return buf.String(), err
}

func TestAnalyzeTextReport(t *testing.T) {
	out, err := runCLI(t, "analyze")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "analyze_text", []byte(out))
}

func TestAnalyzeJSONReport(t *testing.T) {
	out, err := runCLI(t, "analyze", "--format", "json", "--checks", "checkroutelogic,time")
	require.NoError(t, err)

	var report usecase.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, []entity.CheckKind{entity.CheckRoute, entity.CheckTime}, report.Checks)
	assert.Equal(t, 10, report.Records)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 11, report.Skipped[0].ID)

	require.Len(t, report.Findings, 3)
	assert.Equal(t, entity.CheckRoute, report.Findings[0].Check)
	assert.Equal(t, []int{6}, report.Findings[0].RecordIDs)
	assert.Equal(t, []int{7}, report.Findings[1].RecordIDs)
	assert.Equal(t, []int{10}, report.Findings[2].RecordIDs)
}

func TestAnalyzeAllBreaksStillFindsTheSameChains(t *testing.T) {
	out, err := runCLI(t, "analyze", "--checks", "sequence", "--all-breaks")
	require.NoError(t, err)

	assert.Contains(t, out, "flight ID 3 (AY201) arrives at LHR but next flight ID 4 (AY202) departs from ARN")
	assert.Contains(t, out, "2 findings, 10 records analyzed, 1 skipped, 0 degraded")
}

func TestAnalyzeUnknownCheck(t *testing.T) {
	_, err := runCLI(t, "analyze", "--checks", "weather")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecase.ErrUnknownCheck)
}

func TestAnalyzeAbortPolicy(t *testing.T) {
	_, err := runCLI(t, "analyze", "--policy", "abort")
	require.Error(t, err)

	var malformed *usecase.MalformedTimestampError
	assert.ErrorAs(t, err, &malformed)
	assert.Equal(t, "bad-date", malformed.Value)
}

func TestInvalidFormat(t *testing.T) {
	_, err := runCLI(t, "analyze", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestChainsText(t *testing.T) {
	out, err := runCLI(t, "chains")
	require.NoError(t, err)

	assert.Equal(t,
		"4\tOH-LVB\tAY202\tARN -> HEL\t2024-05-01 14:00:00\n"+
			"9\tOH-LVE\tAY401\tHEL -> ARN\t2024-05-02 07:00:00\n",
		out)
}

func TestFlightsJSON(t *testing.T) {
	out, err := runCLI(t, "flights", "--format", "json")
	require.NoError(t, err)

	var batch usecase.Batch
	require.NoError(t, json.Unmarshal([]byte(out), &batch))

	require.Len(t, batch.Records, 10)
	assert.Equal(t, "2024-05-01T05:00:00Z", batch.Records[0].DepartureUTC.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, entity.NormalizationUnresolved, batch.Records[9].DepartureNormalization)
	assert.Equal(t, entity.NormalizationConverted, batch.Records[9].ArrivalNormalization)
}

func TestMissingCSV(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"flights", "--csv", filepath.Join(t.TempDir(), "missing.csv")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open flights csv")
}
