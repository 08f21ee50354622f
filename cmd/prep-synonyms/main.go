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
// File Name:  main.go
//
// ==========================================================================

package main

import (
	"bufio"
	"genenorm/genes"
	"os"
)

// prep-synonyms reads NCBI gene_info on stdin and writes the synonym table on stdout
// as name, symbol pairs. genenorm -synonyms loads the result without reparsing.
//
//   zcat Homo_sapiens.gene_info.gz | prep-synonyms > synonyms.txt

func createSynonyms(strict bool) {

	tbl, err := genes.ReadSynonymTable(os.Stdin, genes.GeneInfoOptions{Strict: strict})
	if err != nil {
		genes.DisplayError("%s", err.Error())
		os.Exit(1)
	}

	if tbl.SymbolCount() < 1 {
		genes.DisplayError("Unrecognized contents in gene_info")
		os.Exit(1)
	}

	wrtr := bufio.NewWriter(os.Stdout)

	if _, err := tbl.WriteTo(wrtr); err != nil {
		genes.DisplayError("%s", err.Error())
		os.Exit(1)
	}

	wrtr.Flush()
}

func main() {

	strict := false

	for _, str := range os.Args[1:] {
		switch str {
		case "-strict":
			strict = true
		default:
			genes.DisplayError("Unrecognized argument '%s'", str)
			os.Exit(1)
		}
	}

	createSynonyms(strict)
}
