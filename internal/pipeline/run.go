// Package pipeline provides the high-level orchestration for document
// generation: for every selected job it drives prompt building, content
// generation, and HTML formatting, tolerating per-document failures.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/applyforge/internal/formatting"
	"github.com/jonathan/applyforge/internal/generation"
	"github.com/jonathan/applyforge/internal/store"
	"github.com/jonathan/applyforge/internal/types"
)

// ProgressEvent represents a progress update during a generation run.
type ProgressEvent struct {
	Step     string `json:"step"`
	Message  string `json:"message"`
	JobIndex int    `json:"jobIndex"`
	JobCount int    `json:"jobCount"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs.
type ProgressCallback func(event ProgressEvent)

// SettingsStore persists a snapshot of the run setup. Optional.
type SettingsStore interface {
	SaveSetting(ctx context.Context, snapshot store.SettingSnapshot) (uuid.UUID, error)
}

// Options holds everything a generation run needs.
type Options struct {
	Resume       *types.ParsedResumeData
	Jobs         []types.JobTarget
	DocumentType types.DocumentType
	Examples     types.ExampleTexts
	Portfolio    types.PortfolioData

	Content    generation.ContentProvider
	Formatter  *formatting.Formatter
	Store      SettingsStore
	WebhookURL string

	OnProgress ProgressCallback
	Verbose    bool
}

// Result accumulates the outcome of one run. Documents may be shorter than
// jobs × requested kinds when individual documents failed.
type Result struct {
	Success       bool                      `json:"success"`
	Documents     []types.GeneratedDocument `json:"documents,omitempty"`
	JobsCompleted int                       `json:"jobsCompleted"`
	Err           string                    `json:"error,omitempty"`
}

// Phase is the runner's lifecycle state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseRunning   Phase = "running"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// State is a point-in-time view of a runner.
type State struct {
	Phase    Phase
	JobIndex int
	JobCount int
}

// Runner executes generation runs sequentially and exposes progress state.
type Runner struct {
	mu    sync.Mutex
	state State
}

func NewRunner() *Runner {
	return &Runner{state: State{Phase: PhaseIdle}}
}

// State returns the runner's current state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

func emitProgress(opts *Options, step, message string, jobIndex, jobCount int, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Message:  message,
			JobIndex: jobIndex,
			JobCount: jobCount,
			Content:  content,
		})
	}
}

// validate rejects unusable options before any network call is made.
func validate(opts Options) error {
	if opts.Content == nil {
		return fmt.Errorf("content provider is required")
	}
	if opts.Formatter == nil {
		return fmt.Errorf("formatter is required")
	}
	if !opts.DocumentType.Valid() {
		return fmt.Errorf("invalid document type %q", opts.DocumentType)
	}
	if opts.Resume == nil || !opts.Resume.HasRawText() {
		return fmt.Errorf("resume data with raw text is required")
	}
	selected := types.SelectedJobs(opts.Jobs)
	if len(selected) == 0 {
		return fmt.Errorf("no jobs selected")
	}
	for _, job := range selected {
		req := types.RequestData{
			ParsedResumeData: opts.Resume,
			JobTarget:        job,
			DocumentType:     opts.DocumentType,
			Examples:         opts.Examples,
			Portfolio:        opts.Portfolio,
		}
		if err := req.Validate(); err != nil {
			return fmt.Errorf("invalid request for %s: %w", job.Label(), err)
		}
	}
	return nil
}

// Run executes the generation loop over the selected jobs in order.
// Per-document failures are reported and skipped; only configuration problems
// and cancellation stop the run.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		r.setState(State{Phase: PhaseFailed})
		return nil, err
	}

	selected := types.SelectedJobs(opts.Jobs)
	kinds := opts.DocumentType.Kinds()
	generator := generation.NewGenerator(opts.Content)

	result := &Result{}
	for i, job := range selected {
		// Cancellation is honored between jobs so a finished document is
		// never thrown away mid-job.
		if err := ctx.Err(); err != nil {
			result.Err = fmt.Sprintf("run cancelled after %d of %d jobs", i, len(selected))
			result.Success = len(result.Documents) > 0
			r.setState(State{Phase: PhaseFailed, JobIndex: i, JobCount: len(selected)})
			return result, err
		}

		r.setState(State{Phase: PhaseRunning, JobIndex: i, JobCount: len(selected)})
		fmt.Printf("Step %d/%d: Generating documents for %s...\n", i+1, len(selected), job.Label())
		emitProgress(&opts, "generate", fmt.Sprintf("job %d of %d: %s", i+1, len(selected), job.Label()), i, len(selected), nil)

		documents := r.runJob(ctx, &opts, generator, job, kinds)
		if len(documents) > 0 {
			result.JobsCompleted++
		}
		result.Documents = append(result.Documents, documents...)
	}

	result.Success = len(result.Documents) > 0
	if !result.Success {
		result.Err = "no documents were generated"
		r.setState(State{Phase: PhaseFailed, JobIndex: len(selected), JobCount: len(selected)})
	} else {
		r.setState(State{Phase: PhaseCompleted, JobIndex: len(selected), JobCount: len(selected)})
	}

	if result.Success {
		r.persistSnapshot(ctx, opts, selected)
		notifyWebhook(ctx, opts.WebhookURL, result)
	}

	return result, nil
}

// runJob produces the requested documents for one job. Document kinds fan out
// concurrently; each kind's content call and formatting call stay sequential.
// A failed document leaves a gap, never an abort.
func (r *Runner) runJob(ctx context.Context, opts *Options, generator *generation.Generator, job types.JobTarget, kinds []types.DocumentKind) []types.GeneratedDocument {
	results := make([]*types.GeneratedDocument, len(kinds))

	g, gCtx := errgroup.WithContext(ctx)
	for idx, kind := range kinds {
		g.Go(func() error {
			doc, err := r.runDocument(gCtx, opts, generator, job, kind)
			if err != nil {
				fmt.Printf("Warning: %s for %s failed: %v\n", kind, job.Label(), err)
				emitProgress(opts, "document-failed", fmt.Sprintf("%s for %s: %v", kind, job.Label(), err), 0, 0, nil)
				return nil
			}
			results[idx] = doc
			return nil
		})
	}
	// Workers never return errors; Wait only observes context teardown.
	_ = g.Wait()

	var documents []types.GeneratedDocument
	for _, doc := range results {
		if doc != nil {
			documents = append(documents, *doc)
		}
	}
	return documents
}

func (r *Runner) runDocument(ctx context.Context, opts *Options, generator *generation.Generator, job types.JobTarget, kind types.DocumentKind) (*types.GeneratedDocument, error) {
	rawContent, err := generator.Generate(ctx, kind, opts.Resume, job, opts.Examples.ContentExample(kind), opts.Portfolio)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Generated %d characters of %s content for %s\n", len(rawContent), kind, job.Label())
	}

	htmlContent, err := opts.Formatter.Format(ctx, formatting.FormatInput{
		RawContent:    rawContent,
		Kind:          kind,
		PersonalInfo:  opts.Resume.PersonalInfo,
		StyledExample: opts.Examples.StyledExample(kind),
		References:    opts.Resume.References,
		Portfolio:     opts.Portfolio,
	})
	if err != nil {
		return nil, err
	}

	return &types.GeneratedDocument{
		Type:        kind,
		RawContent:  rawContent,
		HTMLContent: htmlContent,
		JobID:       job.ID,
	}, nil
}

// persistSnapshot saves the run setup for history. Failures only cost the
// history entry, never the run.
func (r *Runner) persistSnapshot(ctx context.Context, opts Options, selected []types.JobTarget) {
	if opts.Store == nil {
		return
	}

	name := fmt.Sprintf("%d jobs - %s", len(selected), time.Now().Format("2006-01-02"))
	if len(selected) == 1 {
		name = selected[0].Label()
	}

	_, err := opts.Store.SaveSetting(ctx, store.SettingSnapshot{
		Name:         name,
		ResumeData:   opts.Resume,
		JobsData:     selected,
		DocumentType: opts.DocumentType,
		StyleName:    opts.DocumentType.StyleName(),
	})
	if err != nil {
		fmt.Printf("Warning: Failed to save settings snapshot: %v\n", err)
	}
}

// Run executes one generation run with a fresh runner.
func Run(ctx context.Context, opts Options) (*Result, error) {
	return NewRunner().Run(ctx, opts)
}
