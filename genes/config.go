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
// File Name:  config.go
//
// ==========================================================================

package genes

import (
	"bytes"
	"encoding/json"
	"github.com/goccy/go-yaml"
	"github.com/komkom/toml"
	"github.com/pkg/errors"
	"os"
	"path/filepath"
	"strings"
)

// ConfigEnv names the environment variable that points to a configuration file
const ConfigEnv = "GENENORM_CONFIG"

// Config holds settings shared by the command-line tools. Field numbers for gene_info
// are 1-based, columns to standardize are 0-based.
type Config struct {
	GeneInfo      string `yaml:"geneinfo" json:"geneinfo"`
	SymbolField   int    `yaml:"symbol_field" json:"symbol_field"`
	SynonymFields []int  `yaml:"synonym_fields" json:"synonym_fields"`
	Strict        bool   `yaml:"strict" json:"strict"`
	Quiet         bool   `yaml:"quiet" json:"quiet"`
	Columns       []int  `yaml:"columns" json:"columns"`
	Separator     string `yaml:"separator" json:"separator"`
}

// LoadConfig reads a YAML (.yaml, .yml) or TOML (.toml) configuration file
func LoadConfig(fpath string) (*Config, error) {

	byt, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read configuration '%s'", fpath)
	}

	cfg := &Config{}

	switch strings.ToLower(filepath.Ext(fpath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(byt, cfg)
	case ".toml":
		// the TOML reader streams the document as JSON
		err = json.NewDecoder(toml.New(bytes.NewReader(byt))).Decode(cfg)
	default:
		return nil, errors.Errorf("unrecognized configuration file type '%s'", fpath)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parsing configuration '%s'", fpath)
	}

	if err := cfg.GeneInfoOptions().validate(); err != nil {
		return nil, errors.Wrapf(err, "configuration '%s'", fpath)
	}

	cfg.Separator = ConvertSlash(cfg.Separator)

	return cfg, nil
}

// FindConfig returns the configuration file named by GENENORM_CONFIG, or "" if unset
func FindConfig() string {

	return strings.TrimSpace(os.Getenv(ConfigEnv))
}

// GeneInfoOptions returns the gene_info parsing options selected by the configuration
func (c *Config) GeneInfoOptions() GeneInfoOptions {

	if c == nil {
		return GeneInfoOptions{}
	}

	return GeneInfoOptions{
		SymbolField:   c.SymbolField,
		SynonymFields: c.SynonymFields,
		Strict:        c.Strict,
		Quiet:         c.Quiet,
	}
}
