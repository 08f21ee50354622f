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
// File Name:  regulon.go
//
// ==========================================================================

package genes

import (
	"bufio"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// confidenceLevels lists the accepted DoRothEA confidence arguments, each a cumulative
// range starting at the most reliable level A
var confidenceLevels = map[string][]string{
	"A":     {"A"},
	"AB":    {"A", "B"},
	"ABC":   {"A", "B", "C"},
	"ABCD":  {"A", "B", "C", "D"},
	"ABCDE": {"A", "B", "C", "D", "E"},
}

// ParseConfidence expands a confidence argument such as "AB" into its levels
func ParseConfidence(str string) ([]string, error) {

	lvls, ok := confidenceLevels[strings.ToUpper(strings.TrimSpace(str))]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidConfidence, "'%s'", str)
	}

	return append([]string(nil), lvls...), nil
}

// ParseOrganism maps "human" or "mouse" to the DoRothEA dataset suffix, "hs" or "mm"
func ParseOrganism(str string) (string, error) {

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "human":
		return "hs", nil
	case "mouse":
		return "mm", nil
	}

	return "", errors.Wrapf(ErrInvalidOrganism, "'%s'", str)
}

// SIFName returns "<source>_<confidence>_<organism>_<YYYYMMDD>.sif"
func SIFName(source, confidence, organism string, date time.Time) string {

	return fmt.Sprintf("%s_%s_%s_%s.sif", source, confidence, organism, date.Format("20060102"))
}

// ExtractRegulon reads a tab-delimited regulon table with a header naming the tf,
// confidence, target, and mor columns, and returns the interactions at the requested
// confidence, with the mode of regulation stored as the "sign" attribute
func ExtractRegulon(inp io.Reader, confidence string) ([]Interaction, error) {

	lvls, err := ParseConfidence(confidence)
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool)
	for _, lvl := range lvls {
		keep[lvl] = true
	}

	scanr := bufio.NewScanner(inp)

	// locate columns by name
	if !scanr.Scan() {
		if err := scanr.Err(); err != nil {
			return nil, errors.Wrap(err, "reading regulon header")
		}
		return nil, errors.New("regulon table is empty")
	}

	// R's write.table quotes strings unless told otherwise
	unquote := func(str string) string {
		return strings.Trim(str, "\" ")
	}

	index := make(map[string]int)
	for i, str := range strings.Split(strings.TrimRight(scanr.Text(), "\r"), "\t") {
		index[strings.ToLower(unquote(str))] = i
	}

	var pos [4]int
	for i, name := range []string{"tf", "confidence", "target", "mor"} {
		idx, ok := index[name]
		if !ok {
			return nil, errors.Errorf("regulon table lacks '%s' column", name)
		}
		pos[i] = idx
	}
	tfPos, confPos, tgtPos, morPos := pos[0], pos[1], pos[2], pos[3]
	need := max(tfPos, confPos, tgtPos, morPos) + 1

	var res []Interaction

	row := 1
	for scanr.Scan() {

		line := strings.TrimRight(scanr.Text(), "\r")

		row++

		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < need {
			return nil, errors.Errorf("regulon line %d: found %d columns, need %d", row, len(cols), need)
		}

		if !keep[unquote(cols[confPos])] {
			continue
		}

		sign, err := parseSign(unquote(cols[morPos]))
		if err != nil {
			return nil, errors.Wrapf(err, "regulon line %d", row)
		}

		res = append(res, Interaction{
			Source: unquote(cols[tfPos]),
			Target: unquote(cols[tgtPos]),
			Attrs:  map[string]any{"sign": sign},
		})
	}

	if err := scanr.Err(); err != nil {
		return nil, errors.Wrap(err, "reading regulon table")
	}

	return res, nil
}

// parseSign accepts whole-number modes of regulation, e.g. "-1" or "1.0"
func parseSign(str string) (int, error) {

	if n, err := strconv.Atoi(str); err == nil {
		return n, nil
	}

	flt, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, errors.Errorf("mode of regulation '%s' is not a number", str)
	}

	if math.IsInf(flt, 0) || flt != math.Trunc(flt) {
		return 0, errors.Errorf("mode of regulation '%s' is not a whole number", str)
	}

	return int(flt), nil
}

// ReadSIF reads source, sign, target lines
func ReadSIF(inp io.Reader) ([]Interaction, error) {

	var res []Interaction

	scanr := bufio.NewScanner(inp)

	row := 0
	for scanr.Scan() {

		line := strings.TrimRight(scanr.Text(), "\r")

		row++

		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) != 3 {
			return nil, errors.Wrapf(ErrMalformedSIF, "line %d has %d columns", row, len(cols))
		}

		sign, err := parseSign(cols[1])
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedSIF, "line %d: %s", row, err.Error())
		}

		res = append(res, Interaction{
			Source: cols[0],
			Target: cols[2],
			Attrs:  map[string]any{"sign": sign},
		})
	}

	if err := scanr.Err(); err != nil {
		return nil, errors.Wrap(err, "reading SIF")
	}

	return res, nil
}

// formatSIF renders interactions as source, sign, target lines
func formatSIF(triples []Interaction) (string, error) {

	var buffer strings.Builder

	for i, itr := range triples {
		sign, ok := itr.Attrs["sign"]
		if !ok {
			return "", errors.Wrapf(ErrMalformedSIF, "interaction %d (%s, %s) has no sign", i+1, itr.Source, itr.Target)
		}
		buffer.WriteString(itr.Source)
		buffer.WriteString("\t")
		buffer.WriteString(fmt.Sprint(sign))
		buffer.WriteString("\t")
		buffer.WriteString(itr.Target)
		buffer.WriteString("\n")
	}

	return buffer.String(), nil
}

// WriteSIF writes interactions as source, sign, target lines
func WriteSIF(w io.Writer, triples []Interaction) error {

	txt, err := formatSIF(triples)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, txt)
	return err
}

// ExportRegulon filters a regulon table file, optionally gzipped, to the given
// confidence and writes it into dir as a DoRothEA SIF file named by SIFName. An
// existing file is never replaced. It returns the path written.
func ExportRegulon(regulon, dir, organism, confidence string, date time.Time) (string, error) {

	if _, err := ParseOrganism(organism); err != nil {
		return "", err
	}
	if _, err := ParseConfidence(confidence); err != nil {
		return "", err
	}

	inp, err := openDataFile(regulon)
	if err != nil {
		return "", err
	}
	defer inp.Close()

	triples, err := ExtractRegulon(inp, confidence)
	if err != nil {
		return "", errors.Wrapf(err, "extracting from '%s'", regulon)
	}

	txt, err := formatSIF(triples)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	fpath := filepath.Join(dir, SIFName("dorothea", strings.ToUpper(strings.TrimSpace(confidence)), strings.ToLower(strings.TrimSpace(organism)), date))

	if err := publishFile(fpath, txt); err != nil {
		return "", err
	}

	return fpath, nil
}
