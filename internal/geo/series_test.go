package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeriesAllPlatforms(t *testing.T) {
	t.Parallel()

	gpl570 := &Platform{Accession: "GPL570", Title: "U133 Plus 2.0"}
	gpl96 := &Platform{Accession: "GPL96", Title: "U133A"}

	series := &Series{
		Accession: "GSE1",
		Platforms: []*Platform{gpl570},
		Samples: []*Sample{
			{Accession: "GSM1", Platform: gpl570},
			{Accession: "GSM2", Platform: gpl96},
			{Accession: "GSM3", Platform: &Platform{Accession: "GPL570", Title: "U133 Plus 2.0"}},
			{Accession: "GSM4"},
		},
	}

	platforms := series.AllPlatforms()
	require.Len(t, platforms, 2)
	require.Equal(t, "GPL570", platforms[0].Accession)
	require.Equal(t, "GPL96", platforms[1].Accession)
}

func TestSeriesOrganisms(t *testing.T) {
	t.Parallel()

	series := &Series{
		Samples: []*Sample{
			{Channels: []Channel{{Organisms: []Organism{{TaxID: "9606", SciName: "Homo sapiens"}}}}},
			{Channels: []Channel{{Organisms: []Organism{
				{TaxID: "10090", SciName: "Mus musculus"},
				{TaxID: "9606", SciName: "Homo sapiens"},
			}}}},
		},
	}

	require.Equal(t, []Organism{
		{TaxID: "9606", SciName: "Homo sapiens"},
		{TaxID: "10090", SciName: "Mus musculus"},
	}, series.Organisms())
}

func TestSeriesHasExperimentType(t *testing.T) {
	t.Parallel()

	series := &Series{
		ExperimentTypes: []ExperimentType{
			{Title: "Expression profiling by array"},
			{Title: "Genome variation profiling by array"},
		},
	}
	require.True(t, series.HasExperimentType("Expression profiling by array"))
	require.False(t, series.HasExperimentType("Methylation profiling by array"))
}

func TestSeriesPlatformClinical(t *testing.T) {
	t.Parallel()

	series := &Series{
		Samples: []*Sample{
			{Accession: "GSM1", PlatformRef: "GPL570", Channels: []Channel{{Source: "a"}}},
			{Accession: "GSM2", PlatformRef: "GPL96", Channels: []Channel{{Source: "b"}}},
			{Accession: "GSM3", PlatformRef: "GPL570", Channels: []Channel{{Source: "c"}}},
		},
	}

	rows := series.PlatformClinical("GPL570")
	require.Len(t, rows, 2)
	require.Equal(t, "GSM1", rows[0][0].Value)
	require.Equal(t, "GSM3", rows[1][0].Value)

	require.Len(t, series.Clinical(), 3)
}

func TestSeriesSampleCount(t *testing.T) {
	t.Parallel()

	series := &Series{
		SampleRefs: []string{"GSM1", "GSM2"},
	}
	require.Equal(t, 0, series.SampleCount())

	series.Samples = []*Sample{{Accession: "GSM1"}, {Accession: "GSM2"}}
	require.Equal(t, 2, series.SampleCount())
}
