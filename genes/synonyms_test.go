package genes

import (
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type stringTable struct {
	input    string
	expected string
}

func stringTestMatch(t *testing.T, name string, proc func(str string) string, data []stringTable) {

	t.Helper()

	for _, test := range data {
		actual := proc(test.input)
		if actual != test.expected {
			t.Errorf("%s(%s) = %s, expected %s", name, test.input, actual, test.expected)
		}
	}
}

const geneInfoHeader = "#tax_id\tGeneID\tSymbol\tLocusTag\tSynonyms\tdbXrefs\tchromosome\tmap_location\tdescription\ttype_of_gene\tSymbol_from_nomenclature_authority\tFull_name_from_nomenclature_authority\tNomenclature_status\tOther_designations\tModification_date\tFeature_type"

// geneInfoLine builds a 16-column NCBI gene_info row
func geneInfoLine(symbol, synonyms, authority string) string {

	cols := []string{"9606", "1", symbol, "-", synonyms, "-", "17", "17p13.1", "-", "protein-coding", authority, "-", "O", "-", "20240101", "-"}
	return strings.Join(cols, "\t")
}

var geneInfoRows = []string{
	geneInfoHeader,
	geneInfoLine("TP53", "BCC7|LFS1|P53|TRP53", "TP53"),
	geneInfoLine("TP53BP1", "53BP1|p202|TP53", "TP53BP1"),
	geneInfoLine("A1BG", "A1B|ABG|GAB|HYST2477", "A1BG"),
	geneInfoLine("GAB1", "GAB|GAB-1", "GAB1"),
	geneInfoLine("NEWENTRY", "-", "-"),
	geneInfoLine("MIR21", "-", "MIR21"),
	geneInfoLine("KRAS", "C-K-RAS|KRAS2", "-"),
}

func geneInfoText() string {

	return strings.Join(geneInfoRows, "\n") + "\n"
}

// writeGeneInfo saves the test gene_info, gzipped if name ends in .gz
func writeGeneInfo(t *testing.T, dir, name string) string {

	t.Helper()

	fpath := filepath.Join(dir, name)

	if !strings.HasSuffix(name, ".gz") {
		require.NoError(t, os.WriteFile(fpath, []byte(geneInfoText()), 0644))
		return fpath
	}

	file, err := os.Create(fpath)
	require.NoError(t, err)
	gz := pgzip.NewWriter(file)
	_, err = gz.Write([]byte(geneInfoText()))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, file.Close())

	return fpath
}

func testTable(t *testing.T) *SynonymTable {

	t.Helper()

	tbl, err := ReadSynonymTable(strings.NewReader(geneInfoText()), GeneInfoOptions{Strict: true})
	require.NoError(t, err)

	return tbl
}

func TestResolve(t *testing.T) {

	tbl := testTable(t)

	stringTestMatch(t, "Resolve",
		tbl.Resolve,
		[]stringTable{
			{"TP53", "TP53"},
			{"tp53", "TP53"},
			{"p53", "TP53"},
			{"Trp53", "TP53"},
			{"53bp1", "TP53BP1"},
			{"P202", "TP53BP1"},
			{"c-k-ras", "KRAS"},
			{"mir21", "MIR21"},
			{"FOOBAR123", "FOOBAR123"},
			{"foobar123", "FOOBAR123"},
			{"-", "-"},
		})
}

func TestResolveIdempotent(t *testing.T) {

	tbl := testTable(t)

	for _, name := range []string{"p53", "LFS1", "gab-1", "HYST2477", "unknown"} {
		once := tbl.Resolve(name)
		assert.Equal(t, once, tbl.Resolve(once), name)
	}
}

func TestResolveNilTable(t *testing.T) {

	var tbl *SynonymTable

	assert.Equal(t, "TP53", tbl.Resolve("tp53"))
	assert.Equal(t, "TP53", ReferenceName("tp53", nil))
	assert.Equal(t, 0, tbl.Len())
	assert.False(t, tbl.IsSymbol("TP53"))
}

func TestSymbolsMapToThemselves(t *testing.T) {

	tbl := testTable(t)

	for _, sym := range []string{"TP53", "TP53BP1", "A1BG", "GAB1", "MIR21", "KRAS"} {
		assert.True(t, tbl.IsSymbol(sym), sym)
		assert.Equal(t, sym, tbl.Resolve(sym))
	}

	// placeholder rows are not genes
	assert.False(t, tbl.IsSymbol("NEWENTRY"))
	assert.Equal(t, 6, tbl.SymbolCount())
}

func TestAliasCollisions(t *testing.T) {

	// comma-separated aliases in a two-column file
	opts := GeneInfoOptions{SymbolField: 1, SynonymFields: []int{2}, SynonymDelimiter: ",", Quiet: true}

	read := func(txt string) *SynonymTable {
		tbl, err := ReadSynonymTable(strings.NewReader(txt), opts)
		require.NoError(t, err)
		return tbl
	}

	// a symbol listed earlier as an alias still maps to itself
	tbl := read("TP53\tP53,TUMOR1\nTUMOR1\tX\n")
	assert.Equal(t, "TUMOR1", tbl.Resolve("TUMOR1"))
	assert.Equal(t, "TP53", tbl.Resolve("P53"))
	assert.Equal(t, "TUMOR1", tbl.Resolve("x"))

	// an alias naming a known symbol is dropped
	tbl = read("TUMOR1\tX\nTP53\tP53,TUMOR1\n")
	assert.Equal(t, "TUMOR1", tbl.Resolve("TUMOR1"))

	// first writer wins among aliases
	tbl = read("ALPHA\tSHARED\nBETA\tSHARED\n")
	assert.Equal(t, "ALPHA", tbl.Resolve("shared"))
	tbl = read("BETA\tSHARED\nALPHA\tSHARED\n")
	assert.Equal(t, "BETA", tbl.Resolve("shared"))

	// ambiguous NCBI alias keeps the first gene
	assert.Equal(t, "A1BG", testTable(t).Resolve("GAB"))
}

func TestMalformedRecordSkipped(t *testing.T) {

	txt := geneInfoHeader + "\n" + geneInfoLine("TP53", "P53", "TP53") + "\n9606\t2\tBROKEN\n\n" + geneInfoLine("", "ORPHAN", "-") + "\n" + geneInfoLine("KRAS", "KRAS2", "-") + "\n"

	tbl, err := ReadSynonymTable(strings.NewReader(txt), GeneInfoOptions{Quiet: true})
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Skipped())
	assert.Equal(t, "TP53", tbl.Resolve("p53"))
	assert.Equal(t, "KRAS", tbl.Resolve("kras2"))
	assert.Equal(t, "ORPHAN", tbl.Resolve("orphan"))
}

func TestMalformedRecordStrict(t *testing.T) {

	txt := geneInfoHeader + "\n" + geneInfoLine("TP53", "P53", "TP53") + "\n9606\t2\tBROKEN\n"

	tbl, err := ReadSynonymTable(strings.NewReader(txt), GeneInfoOptions{Strict: true})
	require.Error(t, err)
	assert.Nil(t, tbl)
	assert.True(t, errors.Is(err, ErrMalformedRecord))

	var merr *MalformedRecordError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, 3, merr.Line)
	assert.Equal(t, 3, merr.Columns)
	assert.Equal(t, 11, merr.Want)
}

func TestScanGeneInfoInvalidFields(t *testing.T) {

	called := false
	proc := func(rec GeneRecord) { called = true }

	for _, opts := range []GeneInfoOptions{
		{SymbolField: 1, SynonymFields: []int{0}},
		{SymbolField: 1, SynonymFields: []int{2, -1}},
		{SymbolField: -1},
	} {
		_, err := ScanGeneInfo(strings.NewReader("TP53\tP53\n"), opts, proc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidField))
	}

	assert.False(t, called)
}

func TestScanGeneInfo(t *testing.T) {

	var recs []GeneRecord

	skipped, err := ScanGeneInfo(strings.NewReader(geneInfoText()), GeneInfoOptions{}, func(rec GeneRecord) {
		recs = append(recs, rec)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)

	require.Len(t, recs, 6)
	assert.Equal(t, "TP53BP1", recs[1].Symbol)
	assert.Equal(t, 3, recs[1].Line)
	assert.Equal(t, []string{"53BP1", "P202", "TP53", "TP53BP1"}, recs[1].Synonyms)
	assert.Equal(t, []string{"C-K-RAS", "KRAS2", "-"}, recs[5].Synonyms)
}

func TestBuildSynonymTableGzip(t *testing.T) {

	dir := t.TempDir()

	plain, err := BuildSynonymTable(writeGeneInfo(t, dir, "gene_info"), GeneInfoOptions{})
	require.NoError(t, err)

	zipped, err := BuildSynonymTable(writeGeneInfo(t, dir, "gene_info.gz"), GeneInfoOptions{})
	require.NoError(t, err)

	assert.Equal(t, plain.names, zipped.names)
	assert.Equal(t, "TP53", zipped.Resolve("lfs1"))

	// nothing staged next to the input
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestBuildSynonymTableMissingFile(t *testing.T) {

	_, err := BuildSynonymTable(filepath.Join(t.TempDir(), "absent"), GeneInfoOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveAndLoadSynonymTable(t *testing.T) {

	tbl := testTable(t)

	fpath := filepath.Join(t.TempDir(), "synonyms.txt")
	file, err := os.Create(fpath)
	require.NoError(t, err)
	_, err = tbl.WriteTo(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	loaded, err := LoadSynonymTable(fpath)
	require.NoError(t, err)

	assert.Equal(t, tbl.Len(), loaded.Len())
	assert.Equal(t, tbl.SymbolCount(), loaded.SymbolCount())
	for _, name := range []string{"p53", "GAB", "53BP1", "KRAS", "FOOBAR123"} {
		assert.Equal(t, tbl.Resolve(name), loaded.Resolve(name), name)
	}
}
