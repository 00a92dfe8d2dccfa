package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func annotatedPlatform() *Platform {
	return &Platform{
		Accession: "GPL570",
		Title:     "U133 Plus 2.0",
		Columns: []Column{
			{Position: 1, Name: "ID"},
			{Position: 2, Name: "GB_ACC"},
			{Position: 3, Name: "Gene Symbol"},
		},
		InternalData: []Row{
			{"ID": "1007_s_at", "GB_ACC": "U48705", "Gene Symbol": "DDR1"},
			{"ID": "1053_at", "GB_ACC": "M87338", "Gene Symbol": "RFC2"},
			{"ID": "117_at", "GB_ACC": "X51757", "Gene Symbol": ""},
		},
	}
}

func TestPlatformProbeGeneMapping(t *testing.T) {
	t.Parallel()

	t.Run("maps probes through the chosen column", func(t *testing.T) {
		t.Parallel()
		mapping, err := annotatedPlatform().ProbeGeneMapping(2)
		require.NoError(t, err)
		require.Equal(t, map[string]string{
			"1007_s_at": "DDR1",
			"1053_at":   "RFC2",
			"117_at":    "",
		}, mapping)
	})

	t.Run("rejects the probe column itself", func(t *testing.T) {
		t.Parallel()
		_, err := annotatedPlatform().ProbeGeneMapping(0)
		require.Error(t, err)
	})

	t.Run("rejects out of range columns", func(t *testing.T) {
		t.Parallel()
		_, err := annotatedPlatform().ProbeGeneMapping(3)
		require.Error(t, err)
	})

	t.Run("rejects platforms without annotation tables", func(t *testing.T) {
		t.Parallel()
		p := &Platform{Accession: "GPL570"}
		_, err := p.ProbeGeneMapping(1)
		require.Error(t, err)
	})
}

func TestPlatformIsMalformed(t *testing.T) {
	t.Parallel()

	require.True(t, (&Platform{Accession: "GPL1"}).IsMalformed())
	require.False(t, (&Platform{Accession: "GPL1", Title: "t"}).IsMalformed())
}

func TestPlatformEqual(t *testing.T) {
	t.Parallel()

	a := annotatedPlatform()
	b := annotatedPlatform()
	require.True(t, a.Equal(b))

	b.InternalData[1]["Gene Symbol"] = "OTHER"
	require.False(t, a.Equal(b))

	var nilPlatform *Platform
	require.False(t, a.Equal(nil))
	require.True(t, nilPlatform.Equal(nil))
}
