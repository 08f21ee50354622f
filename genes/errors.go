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
// File Name:  errors.go
//
// ==========================================================================

package genes

import (
	"fmt"
	"github.com/pkg/errors"
)

// Sentinel errors, match with errors.Is
var (
	ErrMalformedRecord   = errors.New("malformed gene information record")
	ErrOutputExists      = errors.New("output file already exists")
	ErrInvalidColumn     = errors.New("invalid column index")
	ErrInvalidField      = errors.New("invalid gene information field")
	ErrEmptySeparator    = errors.New("empty field separator")
	ErrInvalidConfidence = errors.New("confidence must be one of A, AB, ABC, ABCD, ABCDE")
	ErrInvalidOrganism   = errors.New("organism must be human or mouse")
	ErrMalformedSIF      = errors.New("malformed SIF line")
)

// MalformedRecordError describes a gene_info line that lacks the expected columns
type MalformedRecordError struct {
	Line    int
	Columns int
	Want    int
	Reason  string
}

func (e *MalformedRecordError) Error() string {

	if e.Reason != "" {
		return fmt.Sprintf("gene information line %d: %s", e.Line, e.Reason)
	}

	return fmt.Sprintf("gene information line %d: found %d columns, need at least %d", e.Line, e.Columns, e.Want)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// ColumnIndexError reports a requested column that does not exist on a line
type ColumnIndexError struct {
	Line   int
	Column int
	Count  int
}

func (e *ColumnIndexError) Error() string {

	if e.Line < 1 {
		return fmt.Sprintf("column %d is not a valid 0-based index", e.Column)
	}

	return fmt.Sprintf("line %d has %d columns, cannot standardize column %d", e.Line, e.Count, e.Column)
}

func (e *ColumnIndexError) Unwrap() error {
	return ErrInvalidColumn
}
