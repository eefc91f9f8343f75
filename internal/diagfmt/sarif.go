package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"bwqlint/internal/diag"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

// SarifLog is the root SARIF document.
type SarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Results     []sarifResult     `json:"results"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifRule struct {
	ID               string     `json:"id"`
	Name             string     `json:"name,omitempty"`
	ShortDescription *sarifText `json:"shortDescription,omitempty"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
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
	CharOffset  uint32 `json:"charOffset"`
	CharLength  uint32 `json:"charLength"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
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

// sarifRuleID prefers the rule name; lexer and parser failures fall back
// to their code.
func sarifRuleID(d diag.Diagnostic) string {
	if d.Rule != "" {
		return d.Rule
	}
	return d.Code.ID()
}

// BuildSarif assembles a SARIF 2.1.0 log with a single run. Rules appear
// in first-use order.
func BuildSarif(files []FileDiagnostics, meta SarifRunMeta) SarifLog {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
		}},
		Results: []sarifResult{},
	}
	ruleIndex := map[string]int{}
	success := true

	for _, fd := range files {
		uri := filepath.ToSlash(fd.displayPath(meta.PathMode, meta.BaseDir))
		if fd.Err != nil {
			success = false
			continue
		}
		for _, d := range fd.Diagnostics {
			id := sarifRuleID(d)
			idx, ok := ruleIndex[id]
			if !ok {
				idx = len(run.Tool.Driver.Rules)
				ruleIndex[id] = idx
				rule := sarifRule{ID: id, Name: d.Kind()}
				if desc := meta.RuleDescriptions[id]; desc != "" {
					rule.ShortDescription = &sarifText{Text: desc}
				} else if d.Rule == "" {
					rule.ShortDescription = &sarifText{Text: d.Code.Title()}
				}
				run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, rule)
			}
			if d.IsError() {
				success = false
			}

			res := sarifResult{
				RuleID:    id,
				RuleIndex: idx,
				Level:     sarifLevel(d.Severity),
				Message:   sarifText{Text: d.Message},
			}
			loc := sarifLocation{PhysicalLocation: sarifPhysical{ArtifactLocation: sarifArtifact{URI: uri}}}
			if d.Span.Start.Line > 0 {
				loc.PhysicalLocation.Region = &sarifRegion{
					StartLine:   d.Span.Start.Line,
					StartColumn: d.Span.Start.Column,
					EndLine:     d.Span.End.Line,
					EndColumn:   d.Span.End.Column,
					CharOffset:  d.Span.Start.Offset,
					CharLength:  d.Span.Len(),
				}
			}
			res.Locations = []sarifLocation{loc}
			run.Results = append(run.Results, res)
		}
	}

	run.Invocations = []sarifInvocation{{Arguments: meta.InvocationArgs, ExecutionSuccessful: success}}
	return SarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}}
}

// Sarif writes a SARIF 2.1.0 log.
func Sarif(w io.Writer, files []FileDiagnostics, meta SarifRunMeta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildSarif(files, meta))
}
