package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", date)

	_, err = ParseDate("07/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "07-Mar-2024 (Thursday)", FormatDisplayDate("2024-03-07"))
	assert.Equal(t, "garbage", FormatDisplayDate("garbage"))
}

func TestSetZone_RejectsUnknown(t *testing.T) {
	assert.Error(t, SetZone("Mars/Olympus"))
}
