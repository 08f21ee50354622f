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
// File Name:  utils.go
//
// ==========================================================================

package genes

import (
	"fmt"
	"github.com/fatih/color"
	"github.com/gedex/inflector"
	"github.com/klauspost/cpuid"
	"github.com/pbnjay/memory"
	"io"
	"os"
	"strings"
)

// console labels, rendered in reverse video on a terminal
var (
	errorLabel = color.New(color.FgRed, color.Bold, color.ReverseVideo)
	errorText  = color.New(color.FgRed, color.Bold)
	warnLabel  = color.New(color.FgBlue, color.Bold, color.ReverseVideo)
	warnText   = color.New(color.FgBlue, color.Bold)
	noteText   = color.New(color.FgGreen)
)

// DisplayError prints a message to stderr with a highlighted ERROR label
func DisplayError(format string, params ...any) {

	str := fmt.Sprintf(format, params...)
	fmt.Fprintf(color.Error, "\n%s %s\n", errorLabel.Sprint(" ERROR: "), errorText.Sprint(str))
}

// DisplayWarning prints a message to stderr with a highlighted WARNING label
func DisplayWarning(format string, params ...any) {

	str := fmt.Sprintf(format, params...)
	fmt.Fprintf(color.Error, "\n%s %s\n", warnLabel.Sprint(" WARNING: "), warnText.Sprint(str))
}

// DisplayNote prints an informational message to stderr
func DisplayNote(format string, params ...any) {

	str := fmt.Sprintf(format, params...)
	fmt.Fprintf(color.Error, "%s\n", noteText.Sprint(str))
}

// Plural returns the count followed by the singular or plural form of the noun
func Plural(count int, noun string) string {

	if count == 1 {
		return fmt.Sprintf("%d %s", count, inflector.Singularize(noun))
	}

	return fmt.Sprintf("%d %s", count, inflector.Pluralize(noun))
}

// ConvertSlash expands backslash escapes typed on the command line, e.g. '\t' for a tab separator
func ConvertSlash(str string) string {

	if !strings.Contains(str, "\\") {
		return str
	}

	var buffer strings.Builder

	isSlash := false
	for _, ch := range str {
		if isSlash {
			switch ch {
			case 'n':
				buffer.WriteRune('\n')
			case 'r':
				buffer.WriteRune('\r')
			case 't':
				buffer.WriteRune('\t')
			case '\\':
				buffer.WriteRune('\\')
			default:
				buffer.WriteRune('\\')
				buffer.WriteRune(ch)
			}
			isSlash = false
		} else if ch == '\\' {
			isSlash = true
		} else {
			buffer.WriteRune(ch)
		}
	}

	// trailing backslash is kept literally
	if isSlash {
		buffer.WriteRune('\\')
	}

	return buffer.String()
}

// warnIfLarge reports input files that are fully read into memory and exceed half of physical memory
func warnIfLarge(fpath string, size int64) {

	total := memory.TotalMemory()
	if total == 0 || size <= 0 {
		return
	}

	if uint64(size) > total/2 {
		DisplayWarning("File '%s' is %d bytes, more than half of physical memory (%d bytes)", fpath, size, total)
	}
}

// PrintStats writes a short report on the synonym table and the host it was built on
func PrintStats(w io.Writer, tbl *SynonymTable) {

	if w == nil {
		w = os.Stderr
	}

	if tbl != nil {
		fmt.Fprintf(w, "Names\t%d\n", tbl.Len())
		fmt.Fprintf(w, "Symbols\t%d\n", tbl.SymbolCount())
		fmt.Fprintf(w, "Skipped\t%s\n", Plural(tbl.Skipped(), "record"))
	}

	brand := strings.TrimSpace(cpuid.CPU.BrandName)
	if brand != "" {
		fmt.Fprintf(w, "CPU\t%s\n", brand)
	}
	fmt.Fprintf(w, "Cores\t%d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)

	if total := memory.TotalMemory(); total > 0 {
		fmt.Fprintf(w, "Memory\t%d MB\n", total/(1024*1024))
	}
}
