package place

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"台中市":  "臺中市",
		"臺中市":  "臺中市",
		"台北市":  "臺北市",
		" 台南市": "臺南市",
		"高雄市":  "高雄市",
		"":     "",
	}
	for in, want := range cases {
		require.Equal(t, want, Normalize(in))
	}
}

func TestIsValid(t *testing.T) {
	require.True(t, IsValid("臺中市"))
	require.True(t, IsValid("連江縣"))
	require.False(t, IsValid("台中市"), "unnormalized spelling is not valid")
	require.False(t, IsValid("東京都"))
	require.False(t, IsValid(""))
}

func TestEveryCityHasStations(t *testing.T) {
	for _, city := range Cities() {
		id, ok := UVStationID(city)
		require.True(t, ok, city)
		require.NotEmpty(t, id, city)

		name, ok := ObservationStation(city)
		require.True(t, ok, city)
		require.NotEmpty(t, name, city)
	}
}
