package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleOrganisms(t *testing.T) {
	t.Parallel()

	sample := &Sample{
		Channels: []Channel{
			{
				Position: 1,
				Organisms: []Organism{
					{TaxID: "9606", SciName: "Homo sapiens"},
					{TaxID: "10090", SciName: "Mus musculus"},
				},
			},
			{
				Position: 2,
				Organisms: []Organism{
					{TaxID: "9606", SciName: "Homo sapiens"},
					{TaxID: "10116", SciName: "Rattus norvegicus"},
				},
			},
		},
	}

	require.Equal(t, []Organism{
		{TaxID: "9606", SciName: "Homo sapiens"},
		{TaxID: "10090", SciName: "Mus musculus"},
		{TaxID: "10116", SciName: "Rattus norvegicus"},
	}, sample.Organisms())
}

func TestSampleClinicalSingleChannel(t *testing.T) {
	t.Parallel()

	sample := &Sample{
		Accession:   "GSM1",
		Title:       "tumor 1",
		PlatformRef: "GPL570",
		Channels: []Channel{{
			Position:  1,
			Source:    "breast tumor",
			Organisms: []Organism{{TaxID: "9606", SciName: "Homo sapiens"}},
			Characteristics: []Characteristic{
				{Tag: "tissue", Value: "breast"},
				{Tag: "age", Value: "45"},
			},
			Molecule: "total RNA",
		}},
	}

	require.Equal(t, []ClinicalField{
		{Key: "accession", Value: "GSM1"},
		{Key: "title", Value: "tumor 1"},
		{Key: "platform", Value: "GPL570"},
		{Key: "source", Value: "breast tumor"},
		{Key: "organism", Value: "Homo sapiens"},
		{Key: "tissue", Value: "breast"},
		{Key: "age", Value: "45"},
		{Key: "molecule", Value: "total RNA"},
	}, sample.Clinical())
}

func TestSampleClinicalDuplicateTags(t *testing.T) {
	t.Parallel()

	sample := &Sample{
		Accession:   "GSM1",
		Title:       "t",
		PlatformRef: "GPL1",
		Channels: []Channel{{
			Position: 1,
			Source:   "s",
			Characteristics: []Characteristic{
				{Tag: "age", Value: "45"},
				{Tag: "tissue", Value: "breast"},
				{Tag: "age", Value: "46"},
				{Tag: "age", Value: "47"},
			},
			Molecule: "total RNA",
		}},
	}

	fields := sample.Clinical()
	var keys []string
	for _, field := range fields {
		keys = append(keys, field.Key)
	}
	require.Equal(t, []string{
		"accession", "title", "platform", "source", "organism",
		"age_1", "tissue", "age_2", "age_3", "molecule",
	}, keys)
}

func TestSampleClinicalTwoChannels(t *testing.T) {
	t.Parallel()

	t.Run("distinct sources and molecules are joined", func(t *testing.T) {
		t.Parallel()
		sample := &Sample{
			Accession:   "GSM1",
			Title:       "t",
			PlatformRef: "GPL1",
			Channels: []Channel{
				{
					Position:        1,
					Source:          "tumor",
					Organisms:       []Organism{{TaxID: "9606", SciName: "Homo sapiens"}},
					Characteristics: []Characteristic{{Tag: "tissue", Value: "breast"}},
					Molecule:        "total RNA",
				},
				{
					Position:        2,
					Source:          "reference",
					Organisms:       []Organism{{TaxID: "9606", SciName: "Homo sapiens"}},
					Characteristics: []Characteristic{{Tag: "tissue", Value: "pooled"}},
					Molecule:        "polyA RNA",
				},
			},
		}

		require.Equal(t, []ClinicalField{
			{Key: "accession", Value: "GSM1"},
			{Key: "title", Value: "t"},
			{Key: "platform", Value: "GPL1"},
			{Key: "source", Value: "tumor || reference"},
			{Key: "organism", Value: "Homo sapiens"},
			{Key: "ch1_tissue", Value: "breast"},
			{Key: "ch2_tissue", Value: "pooled"},
			{Key: "molecule", Value: "total RNA || polyA RNA"},
		}, sample.Clinical())
	})

	t.Run("shared source and molecule collapse", func(t *testing.T) {
		t.Parallel()
		sample := &Sample{
			Accession:   "GSM2",
			Title:       "t",
			PlatformRef: "GPL1",
			Channels: []Channel{
				{Position: 1, Source: "liver", Molecule: "total RNA"},
				{Position: 2, Source: "liver", Molecule: "total RNA"},
			},
		}

		fields := sample.Clinical()
		byKey := make(map[string]string)
		for _, field := range fields {
			byKey[field.Key] = field.Value
		}
		require.Equal(t, "liver", byKey["source"])
		require.Equal(t, "total RNA", byKey["molecule"])
	})
}

func TestSampleEqual(t *testing.T) {
	t.Parallel()

	a := &Sample{
		Accession:    "GSM1",
		Title:        "t",
		ChannelCount: 1,
		Channels:     []Channel{{Position: 1, Source: "s"}},
		PlatformRef:  "GPL1",
		ReleaseDate:  MustDate("2016-09-14"),
	}
	b := &Sample{
		Accession:    "GSM1",
		Title:        "t",
		ChannelCount: 1,
		Channels:     []Channel{{Position: 1, Source: "s"}},
		PlatformRef:  "GPL1",
		ReleaseDate:  MustDate("2016-09-14"),
	}
	require.True(t, a.Equal(b))

	b.Channels[0].Source = "other"
	require.False(t, a.Equal(b))

	require.False(t, a.Equal(nil))
	var nilSample *Sample
	require.True(t, nilSample.Equal(nil))
}
