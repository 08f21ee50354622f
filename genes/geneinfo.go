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
// File Name:  geneinfo.go
//
// ==========================================================================

package genes

import (
	"bufio"
	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
)

// NCBI gene_info layout, 1-based field numbers as used by cut and awk
const (
	GeneInfoSymbolField    = 3  // Symbol
	GeneInfoSynonymsField  = 5  // Synonyms
	GeneInfoAuthorityField = 11 // Symbol_from_nomenclature_authority
)

// GeneInfoOptions selects the columns read from a gene information file and the
// policy for lines that do not have them. The zero value reads NCBI gene_info.
type GeneInfoOptions struct {
	// SymbolField is the 1-based field holding the canonical symbol, 0 for the default
	SymbolField int
	// SynonymFields are 1-based fields holding secondary-delimited aliases
	SynonymFields []int
	// Delimiter separates fields, tab by default
	Delimiter string
	// SynonymDelimiter separates aliases within a synonym field, "|" by default
	SynonymDelimiter string
	// Strict aborts on the first malformed line instead of skipping it
	Strict bool
	// Quiet suppresses warnings for skipped lines
	Quiet bool
}

func (o GeneInfoOptions) withDefaults() GeneInfoOptions {

	if o.SymbolField < 1 {
		o.SymbolField = GeneInfoSymbolField
	}
	if len(o.SynonymFields) < 1 {
		o.SynonymFields = []int{GeneInfoSynonymsField, GeneInfoAuthorityField}
	}
	if o.Delimiter == "" {
		o.Delimiter = "\t"
	}
	if o.SynonymDelimiter == "" {
		o.SynonymDelimiter = "|"
	}

	return o
}

// validate rejects field numbers that cannot name a column. Zero selects the
// NCBI default for SymbolField only.
func (o GeneInfoOptions) validate() error {

	if o.SymbolField < 0 {
		return errors.Wrapf(ErrInvalidField, "symbol field %d is not a valid 1-based field", o.SymbolField)
	}
	for _, fld := range o.SynonymFields {
		if fld < 1 {
			return errors.Wrapf(ErrInvalidField, "synonym field %d is not a valid 1-based field", fld)
		}
	}

	return nil
}

// minColumns is the number of fields a line needs to be usable
func (o GeneInfoOptions) minColumns() int {

	most := o.SymbolField
	for _, fld := range o.SynonymFields {
		if fld > most {
			most = fld
		}
	}

	return most
}

// GeneRecord holds the fields of one gene_info line used for synonym resolution.
// Symbol and Synonyms are uppercased, Synonyms may still contain "-" placeholders.
type GeneRecord struct {
	Line     int
	Symbol   string
	Synonyms []string
}

// ScanGeneInfo reads gene information lines and passes each usable record to proc in
// input order. Header and comment lines beginning with '#' are ignored, as are NCBI
// NEWENTRY placeholders. Lines without enough fields, or with an empty symbol, are
// skipped with a warning and counted, unless opts.Strict is set, in which case the
// scan stops with a *MalformedRecordError.
func ScanGeneInfo(inp io.Reader, opts GeneInfoOptions, proc func(rec GeneRecord)) (int, error) {

	if inp == nil || proc == nil {
		return 0, nil
	}

	if err := opts.validate(); err != nil {
		return 0, err
	}

	opts = opts.withDefaults()
	want := opts.minColumns()

	skipped := 0
	row := 0

	reject := func(merr *MalformedRecordError) error {
		if opts.Strict {
			return merr
		}
		skipped++
		if !opts.Quiet {
			DisplayWarning("Skipping %s", merr.Error())
		}
		return nil
	}

	scanr := bufio.NewScanner(inp)

	// allow very long synonym lists
	const bufferSize = 1024 * 1024
	buf := make([]byte, bufferSize)
	scanr.Buffer(buf, bufferSize)

	for scanr.Scan() {

		line := scanr.Text()

		row++

		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, opts.Delimiter)
		if len(cols) < want {
			if err := reject(&MalformedRecordError{Line: row, Columns: len(cols), Want: want}); err != nil {
				return skipped, err
			}
			continue
		}

		symbol := upperGene(strings.TrimSpace(cols[opts.SymbolField-1]))
		if symbol == "NEWENTRY" {
			continue
		}
		if symbol == "" || symbol == "-" {
			if err := reject(&MalformedRecordError{Line: row, Columns: len(cols), Want: want, Reason: "missing gene symbol"}); err != nil {
				return skipped, err
			}
			continue
		}

		var syns []string
		for _, fld := range opts.SynonymFields {
			for _, str := range strings.Split(cols[fld-1], opts.SynonymDelimiter) {
				str = strings.TrimSpace(str)
				if str == "" {
					continue
				}
				syns = append(syns, upperGene(str))
			}
		}

		proc(GeneRecord{Line: row, Symbol: symbol, Synonyms: syns})
	}

	if err := scanr.Err(); err != nil {
		return skipped, errors.Wrapf(err, "reading gene information at line %d", row+1)
	}

	return skipped, nil
}

// gzipReadCloser closes both the decompressor and the underlying file
type gzipReadCloser struct {
	*pgzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {

	err := g.Reader.Close()
	ferr := g.file.Close()
	if err != nil {
		return err
	}

	return ferr
}

// openDataFile opens a plain or gzip-compressed (".gz") data file
func openDataFile(fpath string) (io.ReadCloser, error) {

	file, err := os.Open(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open '%s'", fpath)
	}

	if !strings.HasSuffix(fpath, ".gz") {
		return file, nil
	}

	gz, err := pgzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "unable to decompress '%s'", fpath)
	}

	return &gzipReadCloser{Reader: gz, file: file}, nil
}
