package diagfmt

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"globalint/internal/diag"
	"globalint/internal/rules"
	"globalint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool              sarifTool         `json:"tool"`
	AutomationDetails sarifAutomation   `json:"automationDetails"`
	Invocations       []sarifInvocation `json:"invocations,omitempty"`
	Results           []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name,omitempty"`
	ShortDescription     sarifText         `json:"shortDescription"`
	FullDescription      *sarifText        `json:"fullDescription,omitempty"`
	DefaultConfiguration sarifRuleDefaults `json:"defaultConfiguration"`
}

type sarifRuleDefaults struct {
	Level string `json:"level"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifAutomation struct {
	GUID string `json:"guid"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool     `json:"executionSuccessful"`
	Arguments           []string `json:"arguments,omitempty"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifText       `json:"message"`
	Locations        []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	ID               *int                  `json:"id,omitempty"`
	Message          *sarifText            `json:"message,omitempty"`
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0).
// The driver rules always list the four locale rules, other codes are
// appended as they occur.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	b := sarifBuilder{fs: fs, base: meta.BaseDir, index: make(map[diag.Code]int)}
	if b.base == "" {
		b.base, _ = os.Getwd()
	}
	for _, code := range diag.RuleCodes() {
		b.rule(code)
	}

	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		res := sarifResult{
			RuleID:    d.Code.Name(),
			RuleIndex: b.rule(d.Code),
			Level:     sarifLevel(d.Severity),
			Message:   sarifText{Text: d.Message},
		}
		if loc, ok := b.location(d.Primary); ok {
			res.Locations = []sarifLocation{loc}
		}
		for i, n := range d.Notes {
			loc, ok := b.location(n.Span)
			if !ok {
				continue
			}
			id := i + 1
			loc.ID = &id
			loc.Message = &sarifText{Text: n.Msg}
			res.RelatedLocations = append(res.RelatedLocations, loc)
		}
		results = append(results, res)
	}

	name := meta.ToolName
	if name == "" {
		name = "globalint"
	}
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           name,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          b.rules,
		}},
		AutomationDetails: sarifAutomation{GUID: uuid.NewString()},
		Invocations:       []sarifInvocation{{ExecutionSuccessful: true, Arguments: meta.InvocationArgs}},
		Results:           results,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

type sarifBuilder struct {
	fs    *source.FileSet
	base  string
	rules []sarifRule
	index map[diag.Code]int
}

func (b *sarifBuilder) rule(code diag.Code) int {
	if idx, ok := b.index[code]; ok {
		return idx
	}
	r := sarifRule{
		ID:                   code.Name(),
		ShortDescription:     sarifText{Text: code.Title()},
		DefaultConfiguration: sarifRuleDefaults{Level: "warning"},
	}
	if info, ok := rules.Lookup(rules.ID(code.Rule())); ok {
		r.Name = info.ID.Short()
		r.FullDescription = &sarifText{Text: info.Help}
	} else if code == diag.IOLoadFileError {
		r.DefaultConfiguration.Level = "error"
	}
	b.index[code] = len(b.rules)
	b.rules = append(b.rules, r)
	return b.index[code]
}

func (b *sarifBuilder) location(sp source.Span) (sarifLocation, bool) {
	f := fileOf(b.fs, sp)
	if f == nil {
		return sarifLocation{}, false
	}
	loc := sarifLocation{PhysicalLocation: sarifPhysicalLocation{
		ArtifactLocation: sarifArtifact{URI: b.uri(f.Path)},
	}}
	if len(f.Content) > 0 {
		start, end := b.fs.Resolve(sp)
		loc.PhysicalLocation.Region = &sarifRegion{
			StartLine: start.Line, StartColumn: start.Col,
			EndLine: end.Line, EndColumn: end.Col,
		}
	}
	return loc, true
}

func (b *sarifBuilder) uri(path string) string {
	if filepath.IsAbs(path) && b.base != "" {
		rel, err := filepath.Rel(b.base, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.ToSlash(rel)
		}
		return "file://" + filepath.ToSlash(path)
	}
	return filepath.ToSlash(path)
}
