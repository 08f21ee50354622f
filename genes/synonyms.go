// ===========================================================================
//
//                            PUBLIC DOMAIN NOTICE
//            National Center for Biotechnology Information (NCBI)
//
//  This software/database is a "United States Government Work" under the
//  terms of the United States Copyright Act. It was written as part of
//  the author's official duties as a United States Government employee and
//  thus cannot be copyrighted. This software/database is freely available
//  to the public for use. The National Library of Medicine and the U.S.
//  Government do not place any restriction on its use or reproduction.
//  We would, however, appreciate having the NCBI and the author cited in
//  any work or product based on this material.
//
//  Although all reasonable efforts have been taken to ensure the accuracy
//  and reliability of the software and data, the NLM and the U.S.
//  Government do not and cannot warrant the performance or results that
//  may be obtained by using this software or data. The NLM and the U.S.
//  Government disclaim all warranties, express or implied, including
//  warranties of performance, merchantability or fitness for any particular
//  purpose.
//
// ===========================================================================
//
// File Name:  synonyms.go
//
// ==========================================================================

package genes

import (
	"bufio"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"io"
	"maps"
	"slices"
	"strings"
)

// SynonymTable maps every known gene name, uppercased, to its canonical NCBI symbol.
//
// Alias resolution is order dependent. NCBI lists some aliases under more than one
// gene, and the table keeps the first mapping it sees. Canonical symbols always win:
// a symbol maps to itself even if an earlier record listed it as an alias, and a later
// alias with the same text as a known symbol is dropped. Reordering the input file can
// therefore change which gene an ambiguous alias resolves to.
//
// A table is not modified after it is built.
type SynonymTable struct {
	names   map[string]string
	symbols map[string]bool
	skipped int
}

// newSynonymTable returns an empty table
func newSynonymTable() *SynonymTable {

	return &SynonymTable{
		names:   make(map[string]string),
		symbols: make(map[string]bool),
	}
}

// addRecord applies one gene record, symbol and synonyms already uppercased
func (t *SynonymTable) addRecord(symbol string, synonyms []string) {

	t.names[symbol] = symbol
	t.symbols[symbol] = true

	for _, syn := range synonyms {
		if syn == "-" || syn == symbol {
			continue
		}
		if t.symbols[syn] {
			continue
		}
		if _, ok := t.names[syn]; ok {
			continue
		}
		t.names[syn] = symbol
	}
}

// ReadSynonymTable builds a synonym table from gene information read from inp
func ReadSynonymTable(inp io.Reader, opts GeneInfoOptions) (*SynonymTable, error) {

	tbl := newSynonymTable()

	skipped, err := ScanGeneInfo(inp, opts, func(rec GeneRecord) {
		tbl.addRecord(rec.Symbol, rec.Synonyms)
	})
	if err != nil {
		return nil, err
	}

	tbl.skipped = skipped

	if skipped > 0 && !opts.Quiet {
		DisplayWarning("Skipped %s in gene information", Plural(skipped, "malformed record"))
	}

	return tbl, nil
}

// BuildSynonymTable builds a synonym table from a gene_info file, optionally gzipped
func BuildSynonymTable(geneInfo string, opts GeneInfoOptions) (*SynonymTable, error) {

	inp, err := openDataFile(geneInfo)
	if err != nil {
		return nil, err
	}
	defer inp.Close()

	tbl, err := ReadSynonymTable(inp, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "building synonym table from '%s'", geneInfo)
	}

	return tbl, nil
}

// upperGene case-folds a gene name for table lookup
func upperGene(name string) string {

	return cases.Upper(language.Und).String(name)
}

// Resolve returns the canonical symbol for name, or the uppercased name if it is not
// in the table. Lookup is case-insensitive.
func (t *SynonymTable) Resolve(name string) string {

	name = upperGene(name)

	if t == nil {
		return name
	}

	if ref, ok := t.names[name]; ok {
		return ref
	}

	return name
}

// ReferenceName returns the reference name of a gene using the given table
func ReferenceName(name string, tbl *SynonymTable) string {

	return tbl.Resolve(name)
}

// IsSymbol reports whether name is a canonical symbol
func (t *SynonymTable) IsSymbol(name string) bool {

	if t == nil {
		return false
	}

	return t.symbols[upperGene(name)]
}

// Len returns the number of names, symbols included, the table can resolve
func (t *SynonymTable) Len() int {

	if t == nil {
		return 0
	}

	return len(t.names)
}

// SymbolCount returns the number of distinct canonical symbols
func (t *SynonymTable) SymbolCount() int {

	if t == nil {
		return 0
	}

	return len(t.symbols)
}

// Skipped returns the number of malformed records ignored while building the table
func (t *SynonymTable) Skipped() int {

	if t == nil {
		return 0
	}

	return t.skipped
}

// WriteTo writes the table as two tab-separated columns, name and symbol, sorted by name
func (t *SynonymTable) WriteTo(w io.Writer) (int64, error) {

	if t == nil || w == nil {
		return 0, nil
	}

	wrtr := bufio.NewWriter(w)

	total := int64(0)
	for _, name := range slices.Sorted(maps.Keys(t.names)) {
		n, err := wrtr.WriteString(name + "\t" + t.names[name] + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, wrtr.Flush()
}

// LoadSynonymTable reads a table saved by WriteTo. Lines that do not have exactly two
// columns are ignored. A name that maps to itself is taken as a canonical symbol.
func LoadSynonymTable(fpath string) (*SynonymTable, error) {

	inFile, err := openDataFile(fpath)
	if err != nil {
		return nil, err
	}
	defer inFile.Close()

	tbl := newSynonymTable()

	scanr := bufio.NewScanner(inFile)

	for scanr.Scan() {

		line := strings.TrimRight(scanr.Text(), "\r")
		cols := strings.Split(line, "\t")
		if len(cols) != 2 {
			continue
		}
		name := upperGene(cols[0])
		symbol := upperGene(cols[1])
		if name == "" || symbol == "" {
			continue
		}

		tbl.names[name] = symbol
		if name == symbol {
			tbl.symbols[symbol] = true
		}
	}

	if err := scanr.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading synonym table '%s'", fpath)
	}

	return tbl, nil
}
