// Package pipeline chains the drafting components end to end: blueprint,
// section extraction, prompt building, generation and assembly.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/draftsmith/draftsmith/internal/assemble"
	"github.com/draftsmith/draftsmith/internal/blueprint"
	"github.com/draftsmith/draftsmith/internal/docio"
	"github.com/draftsmith/draftsmith/internal/draft"
	"github.com/draftsmith/draftsmith/internal/extract"
	"github.com/draftsmith/draftsmith/internal/formatting"
	"github.com/draftsmith/draftsmith/internal/providers"
	"github.com/draftsmith/draftsmith/internal/store"
)

// Formatting assignment modes.
const (
	AssignLLM    = "llm"
	AssignCyclic = "cyclic"
)

// Request is one drafting job.
type Request struct {
	Sample1     string
	Sample2     string
	CaseSummary string

	// Reference is the optional style-reference document. When set and
	// DocxOutput is true, its formatting is transferred to the output.
	Reference *docio.Document

	// DocxOutput requests a formatted .docx in addition to the flowing
	// text draft.
	DocxOutput bool
}

// Result is the outcome of a drafting run.
type Result struct {
	RequestID  string               `json:"request_id"`
	Blueprint  *blueprint.Blueprint `json:"blueprint"`
	FinalDraft string               `json:"final_draft"`
	Docx       []byte               `json:"-"`
}

// Pipeline wires the drafting components around one text generator.
type Pipeline struct {
	generator *blueprint.Generator
	extractor *extract.Extractor
	engine    *draft.Engine
	assigner  *formatting.Assigner
	templates *store.TemplateStore
	logger    *slog.Logger

	// assignMode selects how formatting specs map to sections when a
	// reference document is present: AssignLLM asks the model and falls
	// back to cyclic on failure; AssignCyclic skips the model entirely.
	assignMode string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithTemplateStore enables persistence of blueprint and sample templates.
func WithTemplateStore(ts *store.TemplateStore) Option {
	return func(p *Pipeline) { p.templates = ts }
}

// WithAssignMode sets the formatting assignment mode.
func WithAssignMode(mode string) Option {
	return func(p *Pipeline) {
		if mode == AssignCyclic {
			p.assignMode = AssignCyclic
		}
	}
}

// New creates a pipeline over the given text generator.
func New(llm providers.TextGenerator, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		generator:  blueprint.NewGenerator(llm, logger),
		extractor:  extract.NewExtractor(llm, logger),
		engine:     draft.NewEngine(llm, logger),
		assigner:   formatting.NewAssigner(llm, logger),
		logger:     logger,
		assignMode: AssignLLM,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run executes the full drafting flow for one request.
func (p *Pipeline) Run(ctx context.Context, req *Request) (*Result, error) {
	requestID := uuid.New().String()
	log := p.logger.With("request_id", requestID)

	bp := p.generator.Generate(ctx, req.Sample1, req.Sample2)
	if bp.FallbackUsed {
		log.Warn("blueprint fell back to template sections", "error", bp.Error)
	}
	log.Info("blueprint ready", "sections", len(bp.Sections))

	progress := func(name string, index, total int) {
		log.Info("extracting section", "section", name, "index", index, "total", total)
	}
	t1 := p.extractor.Extract(ctx, req.Sample1, bp, progress)
	t2 := p.extractor.Extract(ctx, req.Sample2, bp, nil)

	templates := mergeTemplates(bp, t1, t2)

	if p.templates != nil {
		if err := p.templates.Save(requestID, bp, templates); err != nil {
			log.Error("failed to persist templates", "error", err)
		}
	}

	builder := draft.Builder{}
	purposes := make(map[string]string, len(bp.Sections))
	for _, s := range bp.Sections {
		purposes[s.Name] = s.Purpose
	}
	prompts := builder.BuildAll(bp.Names(), purposes, templates)

	sections, err := p.engine.GenerateSections(ctx, bp, prompts, req.CaseSummary)
	if err != nil {
		return nil, fmt.Errorf("draft generation failed: %w", err)
	}

	result := &Result{
		RequestID:  requestID,
		Blueprint:  bp,
		FinalDraft: assemble.AssembleText(bp, sections),
	}

	if req.DocxOutput {
		docx, err := p.assembleDocx(ctx, bp, sections, req.Reference, log)
		if err != nil {
			return nil, err
		}
		result.Docx = docx
	}
	return result, nil
}

func (p *Pipeline) assembleDocx(ctx context.Context, bp *blueprint.Blueprint, sections map[string]string, ref *docio.Document, log *slog.Logger) ([]byte, error) {
	var specs []formatting.Spec
	if ref != nil {
		specs = formatting.ExtractSpecs(ref)
		log.Info("formatting specs extracted", "count", len(specs))
	}

	var assignment map[string]int
	if p.assignMode == AssignLLM && len(specs) > 0 {
		assignment = p.assigner.Assign(ctx, bp.Names(), specs)
		if assignment == nil {
			log.Warn("formatting assignment unavailable, using cyclic mapping")
		}
	}

	data, err := assemble.NewDocxAssembler(specs).Assemble(bp, sections, assignment)
	if err != nil {
		return nil, fmt.Errorf("docx assembly failed: %w", err)
	}
	return data, nil
}

// mergeTemplates joins both samples' extracted text per section.
func mergeTemplates(bp *blueprint.Blueprint, t1, t2 map[string]string) map[string]string {
	templates := make(map[string]string, len(bp.Sections))
	for _, name := range bp.Names() {
		part1, part2 := t1[name], t2[name]
		if part1 == "" && part2 == "" {
			templates[name] = ""
			continue
		}
		templates[name] = strings.TrimSpace(part1 + "\n" + part2)
	}
	return templates
}
