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
// File Name:  observations.go
//
// ==========================================================================

package genes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/goccy/go-yaml"
	"github.com/komkom/toml"
	"github.com/pkg/errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GeneStatus is one gene of an observation and its status, which is never interpreted
type GeneStatus struct {
	Gene   string
	Status any
}

// geneStatuses keeps gene keys in insertion order
type geneStatuses struct {
	genes  []string
	status map[string]any
}

// ObservationSet maps observation identifiers to genes and their statuses. Both levels
// keep insertion order, and setting an existing gene replaces its status in place.
type ObservationSet struct {
	ids []string
	obs map[string]*geneStatuses
}

// NewObservationSet returns an empty set
func NewObservationSet() *ObservationSet {

	return &ObservationSet{obs: make(map[string]*geneStatuses)}
}

// Add creates an empty observation if id is not yet present
func (o *ObservationSet) Add(id string) {

	if _, ok := o.obs[id]; ok {
		return
	}

	o.ids = append(o.ids, id)
	o.obs[id] = &geneStatuses{status: make(map[string]any)}
}

// Set records the status of a gene in an observation, overwriting an earlier value
func (o *ObservationSet) Set(id, gene string, status any) {

	o.Add(id)

	gs := o.obs[id]
	if _, ok := gs.status[gene]; !ok {
		gs.genes = append(gs.genes, gene)
	}
	gs.status[gene] = status
}

// Get returns the status of a gene in an observation
func (o *ObservationSet) Get(id, gene string) (any, bool) {

	gs, ok := o.obs[id]
	if !ok {
		return nil, false
	}

	val, ok := gs.status[gene]
	return val, ok
}

// IDs returns the observation identifiers in insertion order
func (o *ObservationSet) IDs() []string {

	return append([]string(nil), o.ids...)
}

// Genes returns the genes of an observation in insertion order
func (o *ObservationSet) Genes(id string) []GeneStatus {

	gs, ok := o.obs[id]
	if !ok {
		return nil
	}

	res := make([]GeneStatus, 0, len(gs.genes))
	for _, gene := range gs.genes {
		res = append(res, GeneStatus{Gene: gene, Status: gs.status[gene]})
	}

	return res
}

// Len returns the number of observations
func (o *ObservationSet) Len() int {

	return len(o.ids)
}

// StandardizeObservations returns a copy of obs with every gene replaced by its
// canonical symbol. Statuses are copied unchanged. When two genes of one observation
// resolve to the same symbol, the status of the later one is kept, at the position of
// the earlier one.
func (t *SynonymTable) StandardizeObservations(obs *ObservationSet) *ObservationSet {

	if obs == nil {
		return nil
	}

	res := NewObservationSet()

	for _, id := range obs.ids {
		res.Add(id)
		gs := obs.obs[id]
		for _, gene := range gs.genes {
			res.Set(id, t.Resolve(gene), gs.status[gene])
		}
	}

	return res
}

// StandardizeObservations builds a synonym table from geneInfo and standardizes the
// observations with it. The table is rebuilt on every call.
func StandardizeObservations(obs *ObservationSet, geneInfo string, opts GeneInfoOptions) (*ObservationSet, error) {

	tbl, err := BuildSynonymTable(geneInfo, opts)
	if err != nil {
		return nil, err
	}

	return tbl.StandardizeObservations(obs), nil
}

// ReadObservations loads an observation set from a YAML, TOML, or JSON file, chosen
// by extension. The file is a mapping of observation identifiers to mappings of gene
// names to statuses.
func ReadObservations(fpath string) (*ObservationSet, error) {

	byt, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read '%s'", fpath)
	}

	var obs *ObservationSet

	switch strings.ToLower(filepath.Ext(fpath)) {
	case ".yaml", ".yml":
		obs, err = yamlToObservations(byt)
	case ".toml":
		obs, err = jsonToObservations(toml.New(bytes.NewReader(byt)))
	case ".json":
		obs, err = jsonToObservations(bytes.NewReader(byt))
	default:
		return nil, errors.Errorf("unrecognized observation file type '%s'", fpath)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing '%s'", fpath)
	}

	return obs, nil
}

// yamlToObservations decodes with ordered maps so gene order survives
func yamlToObservations(byt []byte) (*ObservationSet, error) {

	var doc any
	if err := yaml.UnmarshalWithOptions(byt, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}

	obs := NewObservationSet()

	if doc == nil {
		return obs, nil
	}

	outer, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, errors.New("observations must be a mapping")
	}

	for _, item := range outer {
		id := fmt.Sprint(item.Key)
		obs.Add(id)
		if item.Value == nil {
			continue
		}
		inner, ok := item.Value.(yaml.MapSlice)
		if !ok {
			return nil, errors.Errorf("observation '%s' must be a mapping of genes", id)
		}
		for _, gene := range inner {
			obs.Set(id, fmt.Sprint(gene.Key), gene.Value)
		}
	}

	return obs, nil
}

// jsonToObservations walks the token stream so object key order is kept
func jsonToObservations(inp io.Reader) (*ObservationSet, error) {

	dec := json.NewDecoder(inp)
	dec.UseNumber()

	obs := NewObservationSet()

	expectDelim := func(want json.Delim) error {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if dlm, ok := tok.(json.Delim); !ok || dlm != want {
			return errors.Errorf("expected '%s', found '%v'", want, tok)
		}
		return nil
	}

	readKey := func() (string, error) {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		key, ok := tok.(string)
		if !ok {
			return "", errors.Errorf("expected key, found '%v'", tok)
		}
		return key, nil
	}

	if err := expectDelim('{'); err != nil {
		if err == io.EOF {
			return obs, nil
		}
		return nil, err
	}

	for dec.More() {
		id, err := readKey()
		if err != nil {
			return nil, err
		}
		obs.Add(id)
		if err := expectDelim('{'); err != nil {
			return nil, errors.Wrapf(err, "observation '%s'", id)
		}
		for dec.More() {
			gene, err := readKey()
			if err != nil {
				return nil, err
			}
			var status any
			if err := dec.Decode(&status); err != nil {
				return nil, err
			}
			obs.Set(id, gene, status)
		}
		if err := expectDelim('}'); err != nil {
			return nil, err
		}
	}

	if err := expectDelim('}'); err != nil {
		return nil, err
	}

	return obs, nil
}

// WriteObservations writes the set as YAML, keeping order
func WriteObservations(w io.Writer, obs *ObservationSet) error {

	if w == nil || obs == nil {
		return nil
	}

	doc := yaml.MapSlice{}
	for _, id := range obs.ids {
		inner := yaml.MapSlice{}
		for _, gs := range obs.Genes(id) {
			inner = append(inner, yaml.MapItem{Key: gs.Gene, Value: gs.Status})
		}
		doc = append(doc, yaml.MapItem{Key: id, Value: inner})
	}

	byt, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encoding observations")
	}

	_, err = w.Write(byt)
	return err
}
