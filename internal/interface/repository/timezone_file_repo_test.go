package repository

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"flight-quality-analyzer/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimezoneText(t *testing.T) {
	input := `# code zone
hel Europe/Helsinki

ARN    Europe/Stockholm
JFK America/New_York trailing
LHR
`
	zones, err := ParseTimezoneText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []entity.Timezone{
		{AirportCode: "HEL", TzName: "Europe/Helsinki"},
		{AirportCode: "ARN", TzName: "Europe/Stockholm"},
	}, zones)
}

func TestParseTimezoneYAML(t *testing.T) {
	input := `
HEL: Europe/Helsinki
jfk: America/New_York
`
	zones, err := ParseTimezoneYAML(strings.NewReader(input))
	require.NoError(t, err)

	sort.Slice(zones, func(i, j int) bool { return zones[i].AirportCode < zones[j].AirportCode })
	assert.Equal(t, []entity.Timezone{
		{AirportCode: "HEL", TzName: "Europe/Helsinki"},
		{AirportCode: "JFK", TzName: "America/New_York"},
	}, zones)
}

func TestParseTimezoneYAML_Empty(t *testing.T) {
	zones, err := ParseTimezoneYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestParseTimezoneYAML_Invalid(t *testing.T) {
	_, err := ParseTimezoneYAML(strings.NewReader("- just\n- a list\n"))
	assert.Error(t, err)
}

func TestFileTimezoneRepository(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "zones.txt")
	yamlPath := filepath.Join(dir, "zones.yaml")
	require.NoError(t, os.WriteFile(textPath, []byte("HEL Europe/Helsinki\n"), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("ARN: Europe/Stockholm\n"), 0o644))

	ctx := context.Background()

	zones, err := NewFileTimezoneRepository(textPath).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "HEL", zones[0].AirportCode)
	assert.Equal(t, "Europe/Helsinki", zones[0].TzName)

	zones, err = NewFileTimezoneRepository(yamlPath).ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, "ARN", zones[0].AirportCode)
	assert.Equal(t, "Europe/Stockholm", zones[0].TzName)

	_, err = NewFileTimezoneRepository(filepath.Join(dir, "missing.txt")).ListAll(ctx)
	assert.Error(t, err)
}
