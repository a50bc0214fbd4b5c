// Package study exposes the structured learning modules for the EU AI Act
// and the preset question each module asks the QA pipeline.
package study

import (
	"fmt"
	"strings"
)

// Module is one topic in the study path. Key is a stable slug used by the
// explain endpoint; Question is the preset prompt sent to the QA pipeline
// when the user asks for a deeper explanation.
type Module struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Summary  string `json:"summary"`
	Question string `json:"question"`
}

// Catalog holds the ordered module set.
type Catalog struct {
	modules []Module
	byKey   map[string]*Module
}

// NewCatalog builds the catalog from the built-in module set.
func NewCatalog() *Catalog {
	ms := defaultModules()
	byKey := make(map[string]*Module, len(ms))
	for i := range ms {
		byKey[ms[i].Key] = &ms[i]
	}
	return &Catalog{modules: ms, byKey: byKey}
}

// Modules returns every module in recommended study order.
func (c *Catalog) Modules() []Module {
	out := make([]Module, len(c.modules))
	copy(out, c.modules)
	return out
}

// Lookup returns the module with the given key.
func (c *Catalog) Lookup(key string) (*Module, error) {
	m, ok := c.byKey[key]
	if !ok {
		return nil, fmt.Errorf("unknown study module %q", key)
	}
	return m, nil
}

func moduleKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func defaultModules() []Module {
	sections := []struct {
		name     string
		summary  string
		question string
	}{
		{
			name:     "Introduction",
			summary:  "Overview of the EU AI Act, its scope, objectives, and fundamental principles for regulating artificial intelligence systems.",
			question: "What is the EU AI Act and what are its main objectives and scope?",
		},
		{
			name:     "Risk Categories",
			summary:  "Classification of AI systems into different risk categories: unacceptable, high-risk, limited risk, and minimal risk.",
			question: "How are AI systems classified into different risk categories under the EU AI Act?",
		},
		{
			name:     "Prohibited Uses",
			summary:  "AI practices that are considered unacceptable and prohibited under the regulation.",
			question: "What AI practices are prohibited and considered unacceptable under the EU AI Act?",
		},
		{
			name:     "High-Risk Obligations",
			summary:  "Comprehensive requirements and obligations for providers and users of high-risk AI systems.",
			question: "What are the main obligations and requirements for high-risk AI systems under the EU AI Act?",
		},
		{
			name:     "GPAI Models",
			summary:  "Special provisions for General Purpose AI (GPAI) models and foundation models.",
			question: "How does the EU AI Act regulate General Purpose AI (GPAI) models and foundation models?",
		},
		{
			name:     "Penalties and Enforcement",
			summary:  "Enforcement mechanisms, penalties, and compliance requirements under the regulation.",
			question: "What are the penalties and enforcement mechanisms under the EU AI Act?",
		},
	}

	out := make([]Module, len(sections))
	for i, s := range sections {
		out[i] = Module{
			Key:      moduleKey(s.name),
			Name:     s.name,
			Summary:  s.summary,
			Question: s.question,
		}
	}
	return out
}
