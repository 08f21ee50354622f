package genes

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestStandardizeObservationsCollision(t *testing.T) {

	tbl := testTable(t)

	obs := NewObservationSet()
	obs.Set("obs1", "tp53", "up")
	obs.Set("obs1", "TP53", "down")

	out := tbl.StandardizeObservations(obs)

	assert.Equal(t, []string{"obs1"}, out.IDs())
	assert.Equal(t, []GeneStatus{{Gene: "TP53", Status: "down"}}, out.Genes("obs1"))

	// reversed input order reverses the winner
	obs = NewObservationSet()
	obs.Set("obs1", "TP53", "down")
	obs.Set("obs1", "tp53", "up")

	out = tbl.StandardizeObservations(obs)
	assert.Equal(t, []GeneStatus{{Gene: "TP53", Status: "up"}}, out.Genes("obs1"))
}

func TestStandardizeObservationsOrder(t *testing.T) {

	tbl := testTable(t)

	obs := NewObservationSet()
	obs.Set("treated", "p53", 1)
	obs.Set("treated", "mdm2", 0)
	obs.Set("treated", "lfs1", -1)
	obs.Add("empty")
	obs.Set("control", "gab", "flat")

	out := tbl.StandardizeObservations(obs)

	assert.Equal(t, []string{"treated", "empty", "control"}, out.IDs())
	assert.Equal(t, []GeneStatus{
		{Gene: "TP53", Status: -1},
		{Gene: "MDM2", Status: 0},
	}, out.Genes("treated"))
	assert.Empty(t, out.Genes("empty"))

	status, ok := out.Get("control", "A1BG")
	require.True(t, ok)
	assert.Equal(t, "flat", status)

	// input untouched
	_, ok = obs.Get("treated", "TP53")
	assert.False(t, ok)
	assert.Len(t, obs.Genes("treated"), 3)

	assert.Nil(t, tbl.StandardizeObservations(nil))
}

func TestStandardizeObservationsFromGeneInfo(t *testing.T) {

	geneInfo := writeGeneInfo(t, t.TempDir(), "gene_info")

	obs := NewObservationSet()
	obs.Set("obs1", "c-k-ras", "up")

	out, err := StandardizeObservations(obs, geneInfo, GeneInfoOptions{})
	require.NoError(t, err)

	status, ok := out.Get("obs1", "KRAS")
	require.True(t, ok)
	assert.Equal(t, "up", status)
}

func TestReadObservations(t *testing.T) {

	dir := t.TempDir()

	files := map[string]string{
		"obs.yaml": "obs1:\n  tp53: up\n  MDM2: down\nobs2:\n  kras: up\n",
		"obs.json": `{"obs1": {"tp53": "up", "MDM2": "down"}, "obs2": {"kras": "up"}}`,
		"obs.toml": "[obs1]\ntp53 = \"up\"\nMDM2 = \"down\"\n\n[obs2]\nkras = \"up\"\n",
	}

	for name, txt := range files {
		fpath := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(fpath, []byte(txt), 0644))

		obs, err := ReadObservations(fpath)
		require.NoError(t, err, name)

		assert.Equal(t, 2, obs.Len(), name)
		assert.ElementsMatch(t, []string{"obs1", "obs2"}, obs.IDs(), name)

		status, ok := obs.Get("obs1", "tp53")
		assert.True(t, ok, name)
		assert.Equal(t, "up", status, name)

		status, ok = obs.Get("obs1", "MDM2")
		assert.True(t, ok, name)
		assert.Equal(t, "down", status, name)
	}

	// order is kept for YAML and JSON
	for _, name := range []string{"obs.yaml", "obs.json"} {
		obs, err := ReadObservations(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, []string{"obs1", "obs2"}, obs.IDs(), name)
		genes := obs.Genes("obs1")
		require.Len(t, genes, 2)
		assert.Equal(t, "tp53", genes[0].Gene, name)
		assert.Equal(t, "MDM2", genes[1].Gene, name)
	}
}

func TestReadObservationsErrors(t *testing.T) {

	dir := t.TempDir()

	bad := map[string]string{
		"list.yaml": "- tp53\n- mdm2\n",
		"flat.yaml": "obs1: up\n",
		"flat.json": `{"obs1": "up"}`,
		"obs.csv":   "obs1,tp53,up\n",
	}

	for name, txt := range bad {
		fpath := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(fpath, []byte(txt), 0644))

		_, err := ReadObservations(fpath)
		assert.Error(t, err, name)
	}

	_, err := ReadObservations(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteObservations(t *testing.T) {

	obs := NewObservationSet()
	obs.Set("obs2", "TP53", "down")
	obs.Set("obs2", "KRAS", "up")
	obs.Set("obs1", "MDM2", "flat")

	var buf bytes.Buffer
	require.NoError(t, WriteObservations(&buf, obs))

	back, err := yamlToObservations(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"obs2", "obs1"}, back.IDs())
	assert.Equal(t, obs.Genes("obs2"), back.Genes("obs2"))
	assert.Equal(t, obs.Genes("obs1"), back.Genes("obs1"))
}
