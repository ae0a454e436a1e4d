package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
	"github.com/ternarybob/domus/internal/models"
)

var (
	// ErrPropertyNotFound means the submission referenced a property that
	// doesn't exist. No request row is written in that case.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrInvalidAnalysisType means the submission named an unknown type.
	ErrInvalidAnalysisType = errors.New("invalid analysis type")

	// ErrPipelineBusy means the worker queue is full. The caller should
	// surface backpressure (HTTP 503) rather than block.
	ErrPipelineBusy = errors.New("analysis pipeline is busy")
)

type task struct {
	request  *models.AnalysisRequest
	property *models.Property
}

// Pipeline runs analysis requests on a bounded worker pool. Submission is
// synchronous up to the processing transition; report generation happens in
// the background and progress is observable via storage polls and events.
type Pipeline struct {
	storage   interfaces.StorageManager
	assembler *ContextAssembler
	generator *Generator
	events    interfaces.EventService
	config    *common.PipelineConfig
	logger    arbor.ILogger

	queue  chan *task
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPipeline creates an analysis pipeline. Call Start before submitting.
func NewPipeline(
	storage interfaces.StorageManager,
	assembler *ContextAssembler,
	generator *Generator,
	events interfaces.EventService,
	config *common.PipelineConfig,
	logger arbor.ILogger,
) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())

	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Pipeline{
		storage:   storage,
		assembler: assembler,
		generator: generator,
		events:    events,
		config:    config,
		logger:    logger,
		queue:     make(chan *task, queueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the worker pool.
func (p *Pipeline) Start() {
	workers := p.config.Workers
	if workers <= 0 {
		workers = 4
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.logger.Info().
		Int("workers", workers).
		Int("queue_size", cap(p.queue)).
		Msg("Analysis pipeline started")
}

// Stop cancels in-flight work and waits for workers to drain.
func (p *Pipeline) Stop() {
	p.cancel()
	p.wg.Wait()
	p.logger.Info().Msg("Analysis pipeline stopped")
}

func (p *Pipeline) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case t := <-p.queue:
			p.run(t)
		}
	}
}

// Submit validates the submission, persists the request row, transitions it
// to processing, and enqueues the background run. The returned request
// already carries status processing; callers respond to the client
// immediately without waiting for any report.
func (p *Pipeline) Submit(ctx context.Context, propertyID, userID string, types []models.AnalysisType) (*models.AnalysisRequest, error) {
	if len(types) == 0 {
		types = models.AllAnalysisTypes()
	}
	for _, t := range types {
		if !models.IsValidAnalysisType(t) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAnalysisType, t)
		}
	}

	// Property existence is checked before any row is written, so a bad
	// property id never leaves an orphaned request behind.
	property, err := p.storage.PropertyStorage().GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, propertyID)
		}
		return nil, err
	}

	request := &models.AnalysisRequest{
		ID:            common.NewRequestID(),
		PropertyID:    propertyID,
		UserID:        userID,
		AnalysisTypes: types,
		Status:        models.RequestStatusPending,
		TotalCount:    len(types),
		CreatedAt:     time.Now(),
	}

	if err := p.storage.AnalysisStorage().SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create analysis request: %w", err)
	}
	p.publish(interfaces.EventRequestCreated, request)

	if err := p.storage.AnalysisStorage().UpdateRequestStatus(ctx, request.ID, models.RequestStatusProcessing, ""); err != nil {
		return nil, fmt.Errorf("failed to transition request to processing: %w", err)
	}
	request.Status = models.RequestStatusProcessing
	p.publish(interfaces.EventRequestProcessing, request)

	select {
	case p.queue <- &task{request: request, property: property}:
	default:
		p.failRequest(request, "analysis queue is full")
		return nil, ErrPipelineBusy
	}

	p.logger.Info().
		Str("request_id", request.ID).
		Str("property_id", propertyID).
		Int("total_count", request.TotalCount).
		Msg("Analysis request submitted")

	return request, nil
}

// run executes one request: context assembly, stage one content summaries,
// stage two expert analyses grounded on stage one, then the terminal status
// write. A panic anywhere marks the request failed; reports persisted before
// the failure survive.
func (p *Pipeline) run(t *task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Str("request_id", t.request.ID).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("Analysis run panicked")
			p.failRequest(t.request, fmt.Sprintf("analysis run panicked: %v", r))
		}
	}()

	start := time.Now()
	p.logger.Info().
		Str("request_id", t.request.ID).
		Str("property_id", t.property.ID).
		Msg("Starting analysis run")

	contextText, err := p.assembler.Assemble(p.ctx, t.property)
	if err != nil {
		p.failRequest(t.request, err.Error())
		return
	}

	contentTypes, expertTypes := models.PartitionTypes(t.request.AnalysisTypes)

	// Stage one: content summaries run first so their conclusions can
	// ground the expert analyses.
	stageOneSummaries := make(map[models.AnalysisType]string, len(contentTypes))
	for _, analysisType := range contentTypes {
		report := p.generator.Generate(p.ctx, t.property, t.request.ID, analysisType, contextText, "")
		if report == nil {
			continue
		}
		stageOneSummaries[analysisType] = report.Summary
		p.persistReport(t.request, report)
		p.pause()
	}

	var grounding string
	if summary, ok := stageOneSummaries[models.AnalysisNewsSummary]; ok {
		grounding += "News analysis result: " + summary + "\n"
	}
	if summary, ok := stageOneSummaries[models.AnalysisReviewSummary]; ok {
		grounding += "Review analysis result: " + summary + "\n"
	}

	// Stage two: expert analyses, sequential in request order.
	for _, analysisType := range expertTypes {
		report := p.generator.Generate(p.ctx, t.property, t.request.ID, analysisType, contextText, grounding)
		if report == nil {
			continue
		}
		p.persistReport(t.request, report)
		p.pause()
	}

	if err := p.storage.AnalysisStorage().UpdateRequestStatus(p.ctx, t.request.ID, models.RequestStatusCompleted, ""); err != nil {
		p.logger.Error().
			Err(err).
			Str("request_id", t.request.ID).
			Msg("Failed to mark request completed")
		return
	}
	t.request.Status = models.RequestStatusCompleted
	p.publish(interfaces.EventRequestCompleted, t.request)

	p.logger.Info().
		Str("request_id", t.request.ID).
		Dur("duration", time.Since(start)).
		Msg("Analysis run completed")
}

// persistReport saves one report. A persist failure is logged and the run
// continues; losing one report must not take down the remaining tasks.
func (p *Pipeline) persistReport(request *models.AnalysisRequest, report *models.AnalysisReport) {
	if err := p.storage.AnalysisStorage().SaveReport(p.ctx, report); err != nil {
		p.logger.Error().
			Err(err).
			Str("request_id", request.ID).
			Str("analysis_type", string(report.AnalysisType)).
			Msg("Failed to persist report, continuing run")
		return
	}

	p.publish(interfaces.EventReportCreated, report)
}

func (p *Pipeline) failRequest(request *models.AnalysisRequest, message string) {
	if err := p.storage.AnalysisStorage().UpdateRequestStatus(context.Background(), request.ID, models.RequestStatusFailed, message); err != nil {
		p.logger.Error().
			Err(err).
			Str("request_id", request.ID).
			Msg("Failed to mark request failed")
		return
	}
	request.Status = models.RequestStatusFailed
	request.ErrorMessage = message
	p.publish(interfaces.EventRequestFailed, request)
}

// pause waits the configured inter-task interval to avoid hammering the
// provider. Canceled contexts cut the pause short.
func (p *Pipeline) pause() {
	d := p.config.TaskPauseDuration()
	if d <= 0 {
		return
	}
	select {
	case <-p.ctx.Done():
	case <-time.After(d):
	}
}

func (p *Pipeline) publish(eventType interfaces.EventType, payload interface{}) {
	if p.events == nil {
		return
	}
	if err := p.events.Publish(context.Background(), interfaces.Event{Type: eventType, Payload: payload}); err != nil {
		p.logger.Warn().
			Err(err).
			Str("event_type", string(eventType)).
			Msg("Failed to publish pipeline event")
	}
}
