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
	"fmt"
	"genenorm/genes"
	"os"
	"strconv"
	"strings"
	"time"
)

const genenormHelp = `
genenorm -geneinfo Homo_sapiens.gene_info.gz [-strict] [-quiet] [-stats] <command>

Configuration

  -config        YAML or TOML settings file (default from GENENORM_CONFIG)
  -geneinfo      NCBI gene_info file, plain or gzipped
  -synonyms      Saved synonym table from prep-synonyms, used instead of -geneinfo
  -strict        Abort on malformed gene_info lines instead of skipping them
  -quiet         Do not warn about skipped lines
  -stats         Print table and host statistics to stderr

Commands

  -resolve       Print the reference symbol of each remaining argument
  -file          Write <file>_standardized with gene columns replaced
    -columns     Comma-separated 0-based columns (default 0)
    -sep         Field separator (default '\t')
  -triples       Standardize a SIF file, write result to stdout
  -observations  Standardize a YAML, TOML, or JSON observation file, write YAML to stdout
  -extract       Write a DoRothEA SIF file from a local regulon table
    -organism    human or mouse (default human)
    -confidence  A, AB, ABC, ABCD, or ABCDE (default AB)
    -output      Output directory (default current directory)

Examples

  genenorm -geneinfo Homo_sapiens.gene_info.gz -resolve tp53 p53 FOOBAR123

  genenorm -geneinfo Homo_sapiens.gene_info.gz -file network.sif -columns 0,2

  genenorm -extract dorothea_hs.tsv -organism human -confidence ABC -output sif/
`

// getStringArg returns the value following a flag, exiting if it is missing
func getStringArg(args []string, name string) string {

	if len(args) < 2 || args[1] == "" {
		genes.DisplayError("%s is missing", name)
		os.Exit(1)
	}

	return args[1]
}

// parseColumns converts "0,2" to column indices
func parseColumns(str string) []int {

	var cols []int

	for _, item := range strings.Split(str, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		num, err := strconv.Atoi(item)
		if err != nil {
			genes.DisplayError("Unrecognized column number '%s'", item)
			os.Exit(1)
		}
		cols = append(cols, num)
	}

	return cols
}

func main() {

	// skip past executable name
	args := os.Args[1:]

	if len(args) < 1 {
		genes.DisplayError("No command-line arguments supplied to genenorm")
		os.Exit(1)
	}

	if args[0] == "-help" || args[0] == "--help" {
		fmt.Fprint(os.Stdout, genenormHelp)
		return
	}

	// configuration file first, so command-line arguments can override it
	cfgPath := genes.FindConfig()
	for i, str := range args {
		if str == "-config" && i+1 < len(args) {
			cfgPath = args[i+1]
		}
	}

	cfg := &genes.Config{}
	if cfgPath != "" {
		loaded, err := genes.LoadConfig(cfgPath)
		if err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}

	synonyms := ""
	stts := false

	command := ""
	target := ""
	var names []string

	columns := cfg.Columns
	sep := cfg.Separator
	organism := "human"
	confidence := "AB"
	outDir := "."

	for len(args) > 0 {

		switch args[0] {

		case "-config":
			// already loaded above
			getStringArg(args, "Configuration file name")
			args = args[1:]
		case "-geneinfo":
			cfg.GeneInfo = getStringArg(args, "Gene information file name")
			args = args[1:]
		case "-synonyms":
			synonyms = getStringArg(args, "Synonym table file name")
			args = args[1:]
		case "-strict":
			cfg.Strict = true
		case "-quiet":
			cfg.Quiet = true
		case "-stats", "-stat":
			stts = true

		case "-columns":
			columns = parseColumns(getStringArg(args, "Column list"))
			args = args[1:]
		case "-sep":
			sep = genes.ConvertSlash(getStringArg(args, "Field separator"))
			args = args[1:]
		case "-organism":
			organism = getStringArg(args, "Organism")
			args = args[1:]
		case "-confidence":
			confidence = getStringArg(args, "Confidence level")
			args = args[1:]
		case "-output":
			outDir = getStringArg(args, "Output directory")
			args = args[1:]

		case "-file", "-triples", "-observations", "-extract":
			if command != "" {
				genes.DisplayError("Only one command allowed, found %s and %s", command, args[0])
				os.Exit(1)
			}
			command = args[0]
			target = getStringArg(args, command+" file name")
			args = args[1:]

		case "-resolve":
			if command != "" {
				genes.DisplayError("Only one command allowed, found %s and -resolve", command)
				os.Exit(1)
			}
			command = args[0]
			// remaining arguments are gene names
			names = args[1:]
			args = nil
			continue

		default:
			genes.DisplayError("Unrecognized argument '%s'", args[0])
			os.Exit(1)
		}

		// skip past argument
		args = args[1:]
	}

	if command == "" {
		genes.DisplayError("No command supplied, use -help for a list")
		os.Exit(1)
	}

	// regulon extraction does not need gene information
	if command == "-extract" {
		fpath, err := genes.ExportRegulon(target, outDir, organism, confidence, time.Now())
		if err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}
		genes.DisplayNote("Wrote %s", fpath)
		return
	}

	// refuse before the expensive table build
	if command == "-file" {
		pathOut := target + genes.StandardizedSuffix
		if _, err := os.Lstat(pathOut); err == nil {
			genes.DisplayError("%s '%s'", genes.ErrOutputExists.Error(), pathOut)
			os.Exit(1)
		}
	}

	var tbl *genes.SynonymTable
	var err error

	switch {
	case synonyms != "":
		tbl, err = genes.LoadSynonymTable(synonyms)
	case cfg.GeneInfo != "":
		tbl, err = genes.BuildSynonymTable(cfg.GeneInfo, cfg.GeneInfoOptions())
	default:
		genes.DisplayError("Gene information file is missing, use -geneinfo or -synonyms")
		os.Exit(1)
	}
	if err != nil {
		genes.DisplayError("%s", err.Error())
		os.Exit(1)
	}

	if stts {
		genes.PrintStats(os.Stderr, tbl)
	}

	wrtr := bufio.NewWriter(os.Stdout)
	defer wrtr.Flush()

	switch command {

	case "-resolve":
		if len(names) < 1 {
			scanr := bufio.NewScanner(os.Stdin)
			for scanr.Scan() {
				names = append(names, scanr.Text())
			}
		}
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			wrtr.WriteString(tbl.Resolve(name) + "\n")
		}

	case "-file":
		if len(columns) < 1 {
			columns = []int{0}
		}
		if sep == "" {
			sep = "\t"
		}
		fpath, err := tbl.StandardizeFile(target, columns, sep)
		if err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}
		genes.DisplayNote("Wrote %s", fpath)

	case "-triples":
		inFile, err := os.Open(target)
		if err != nil {
			genes.DisplayError("Unable to open '%s' - %s", target, err.Error())
			os.Exit(1)
		}
		triples, err := genes.ReadSIF(inFile)
		inFile.Close()
		if err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}
		if err := genes.WriteSIF(wrtr, tbl.StandardizeTriples(triples)); err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}

	case "-observations":
		obs, err := genes.ReadObservations(target)
		if err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}
		if err := genes.WriteObservations(wrtr, tbl.StandardizeObservations(obs)); err != nil {
			genes.DisplayError("%s", err.Error())
			os.Exit(1)
		}
	}
}
