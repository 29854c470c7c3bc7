package analysis

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/c360studio/readyspec/annotate"
	"github.com/c360studio/readyspec/catalog"
)

// Engine runs the full analysis pipeline: annotate, detect on both axes,
// score, suggest. It is stateless per call — the only shared resource is the
// catalog store, which is read through a single snapshot per analysis — so
// any number of analyses may run concurrently.
type Engine struct {
	annotator annotate.Annotator
	catalogs  *catalog.Store
	logger    *slog.Logger
}

// New creates an engine. A nil annotator uses the built-in Lexical annotator;
// a nil store uses the built-in default catalog.
func New(annotator annotate.Annotator, catalogs *catalog.Store, logger *slog.Logger) *Engine {
	if annotator == nil {
		annotator = annotate.NewLexical()
	}
	if catalogs == nil {
		catalogs = catalog.NewStore(nil, logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{annotator: annotator, catalogs: catalogs, logger: logger}
}

// Catalogs exposes the engine's catalog store (for reload endpoints and
// watchers).
func (e *Engine) Catalogs() *catalog.Store { return e.catalogs }

// resultNamespace is the UUIDv5 namespace for result IDs. IDs are derived
// from (catalog version, input text), so identical input against an unchanged
// catalog yields a bit-identical result — Analyze stays a pure function.
var resultNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("readyspec.analysis.result"))

// Analyze runs one analysis. Empty or whitespace-only input is not an error:
// it yields zero findings and maximal readiness, since "nothing to analyze"
// and "no issues found" are the same observable state. An annotator failure
// is terminal and returned as an error.
func (e *Engine) Analyze(text string) (*Result, error) {
	snapshot := e.catalogs.Current()

	if strings.TrimSpace(text) == "" {
		return e.assemble(snapshot, text, nil), nil
	}

	tokens, err := e.annotator.Annotate(text)
	if err != nil {
		return nil, fmt.Errorf("annotate input: %w", err)
	}

	findings := DetectAmbiguity(text, tokens, snapshot)
	findings = append(findings, DetectAssumptions(text, tokens, snapshot)...)
	sortFindings(findings)

	result := e.assemble(snapshot, text, findings)

	e.logger.Debug("Analysis complete",
		slog.String("id", result.ID),
		slog.Int("findings", len(findings)),
		slog.Float64("readiness", result.ReadinessScore),
		slog.String("level", string(result.ReadinessLevel)))

	return result, nil
}

// AnalyzeMany is the pointwise, order-preserving batch form of Analyze. The
// first annotator failure aborts the batch.
func (e *Engine) AnalyzeMany(texts []string) ([]*Result, error) {
	results := make([]*Result, 0, len(texts))
	for i, text := range texts {
		r, err := e.Analyze(text)
		if err != nil {
			return nil, fmt.Errorf("analyze input %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func (e *Engine) assemble(snapshot *catalog.Catalog, text string, findings []Finding) *Result {
	if findings == nil {
		findings = []Finding{}
	}
	suggestions := Suggest(findings)
	if suggestions == nil {
		suggestions = []string{}
	}
	return &Result{
		ID:             uuid.NewSHA1(resultNamespace, []byte(snapshot.Version()+"\x00"+text)).String(),
		ScoreResult:    Score(findings),
		Issues:         findings,
		Suggestions:    suggestions,
		CatalogVersion: snapshot.Version(),
	}
}
