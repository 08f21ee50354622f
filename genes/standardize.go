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
// File Name:  standardize.go
//
// ==========================================================================

package genes

import (
	"github.com/pkg/errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// StandardizedSuffix is appended to an input file name to form the output file name
const StandardizedSuffix = "_standardized"

// Interaction is a directed pairwise interaction between two genes, with attributes
// such as "sign" (+1 activation, -1 inhibition)
type Interaction struct {
	Source string
	Target string
	Attrs  map[string]any
}

// StandardizeTriples returns a copy of the interactions with source and target replaced
// by their canonical symbols. Order, length, and attributes are preserved.
func (t *SynonymTable) StandardizeTriples(triples []Interaction) []Interaction {

	if triples == nil {
		return nil
	}

	res := make([]Interaction, 0, len(triples))

	for _, itr := range triples {
		res = append(res, Interaction{
			Source: t.Resolve(itr.Source),
			Target: t.Resolve(itr.Target),
			Attrs:  maps.Clone(itr.Attrs),
		})
	}

	return res
}

// StandardizeTriples builds a synonym table from geneInfo and standardizes the
// interactions with it. The table is rebuilt on every call; to process several
// collections, build it once with BuildSynonymTable and use the table methods.
func StandardizeTriples(triples []Interaction, geneInfo string, opts GeneInfoOptions) ([]Interaction, error) {

	tbl, err := BuildSynonymTable(geneInfo, opts)
	if err != nil {
		return nil, err
	}

	return tbl.StandardizeTriples(triples), nil
}

// StandardizeLines rewrites the listed 0-based columns of each non-blank line of txt
// through the table. Other columns are copied verbatim. Every output line ends with a
// newline, and a trailing carriage return is removed.
func (t *SynonymTable) StandardizeLines(txt string, columns []int, sep string) ([]string, error) {

	if sep == "" {
		return nil, ErrEmptySeparator
	}

	cols := slices.Sorted(slices.Values(columns))
	cols = slices.Compact(cols)
	for _, col := range cols {
		if col < 0 {
			return nil, &ColumnIndexError{Column: col}
		}
	}

	var res []string

	row := 0
	for _, line := range strings.Split(txt, "\n") {

		row++

		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		flds := strings.Split(line, sep)

		for _, col := range cols {
			if col >= len(flds) {
				return nil, &ColumnIndexError{Line: row, Column: col, Count: len(flds)}
			}
			flds[col] = t.Resolve(flds[col])
		}

		res = append(res, strings.Join(flds, sep)+"\n")
	}

	return res, nil
}

// StandardizeFile writes a copy of pathIn, named pathIn plus "_standardized", with the
// gene names in the listed 0-based columns replaced by their canonical symbols. Blank
// lines are dropped. It fails with ErrOutputExists rather than replace an existing
// file, and it never leaves a partial output file behind.
func (t *SynonymTable) StandardizeFile(pathIn string, columns []int, sep string) (string, error) {

	pathOut := pathIn + StandardizedSuffix

	if _, err := os.Lstat(pathOut); err == nil {
		return "", errors.Wrapf(ErrOutputExists, "'%s'", pathOut)
	}

	info, err := os.Stat(pathIn)
	if err != nil {
		return "", errors.Wrapf(err, "unable to read '%s'", pathIn)
	}
	warnIfLarge(pathIn, info.Size())

	byt, err := os.ReadFile(pathIn)
	if err != nil {
		return "", errors.Wrapf(err, "unable to read '%s'", pathIn)
	}

	lines, err := t.StandardizeLines(string(byt), columns, sep)
	if err != nil {
		return "", errors.Wrapf(err, "standardizing '%s'", pathIn)
	}

	if err := publishFile(pathOut, strings.Join(lines, "")); err != nil {
		return "", err
	}

	return pathOut, nil
}

// StandardizeFile builds a synonym table from geneInfo and standardizes one file with
// it, returning the output path. The table is rebuilt on every call.
func StandardizeFile(pathIn, geneInfo string, columns []int, sep string, opts GeneInfoOptions) (string, error) {

	pathOut := pathIn + StandardizedSuffix

	// refuse early, before spending time on the table
	if _, err := os.Lstat(pathOut); err == nil {
		return "", errors.Wrapf(ErrOutputExists, "'%s'", pathOut)
	}

	tbl, err := BuildSynonymTable(geneInfo, opts)
	if err != nil {
		return "", err
	}

	return tbl.StandardizeFile(pathIn, columns, sep)
}

// publishFile writes txt to a staging file next to fpath, then links it into place.
// The link fails if fpath already exists, and the staging file is always removed.
func publishFile(fpath, txt string) error {

	dir, base := filepath.Split(fpath)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return errors.Wrapf(err, "unable to create staging file for '%s'", fpath)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(txt); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to write '%s'", fpath)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "unable to write '%s'", fpath)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "unable to write '%s'", fpath)
	}

	if err := os.Link(tmpName, fpath); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.Wrapf(ErrOutputExists, "'%s'", fpath)
		}
		return errors.Wrapf(err, "unable to create '%s'", fpath)
	}

	return nil
}
