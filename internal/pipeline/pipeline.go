package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ticket-classifier-go/internal/comment"
	"ticket-classifier-go/internal/dealers"
	"ticket-classifier-go/internal/edgecase"
	"ticket-classifier-go/internal/inference"
	"ticket-classifier-go/internal/logger"
	"ticket-classifier-go/internal/preprocess"
	"ticket-classifier-go/internal/reconcile"
	"ticket-classifier-go/internal/types"
)

// ErrEmptyInput rejects blank tickets before the pipeline runs; nothing is
// logged for them.
var ErrEmptyInput = errors.New("ticket text is empty")

// Inferencer is the external completion capability. Its output is untrusted;
// reconciliation re-validates everything it returns.
type Inferencer interface {
	Infer(ctx context.Context, text string, hints types.TicketContext) (inference.Inference, error)
}

// AuditSink receives one record per classification attempt.
type AuditSink interface {
	Append(rec types.LogRecord) error
}

// Pipeline wires the classification stages around the immutable reference
// table. Safe for concurrent use: the table is read-only and the audit sink
// serializes its own appends.
type Pipeline struct {
	table      *dealers.Table
	inferencer Inferencer
	audit      AuditSink
	log        *logrus.Entry
}

func New(table *dealers.Table, inf Inferencer, audit AuditSink) *Pipeline {
	return &Pipeline{
		table:      table,
		inferencer: inf,
		audit:      audit,
		log:        logger.New().WithField("component", "pipeline"),
	}
}

// Classify runs the full flow for one ticket: extract, resolve identity and
// infer fields concurrently, reconcile, tag the edge case, format the comment
// and log. Identity resolution failure is a normal outcome (empty identity);
// inference failure is an error, logged and surfaced.
func (p *Pipeline) Classify(ctx context.Context, text string) (types.ClassificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return types.ClassificationResult{}, ErrEmptyInput
	}

	tctx := preprocess.Extract(text)

	// The raw message goes in as a last-resort candidate; the fuzzy matcher's
	// token-set scoring can still find the dealer inside it.
	candidates := make([]string, 0, len(tctx.DealersFound)+1)
	candidates = append(candidates, tctx.DealersFound...)
	candidates = append(candidates, text)

	// Resolver and inference have no data dependency on each other; run the
	// cheap local lookup while the external call is in flight.
	resolvedCh := make(chan types.DealerRecord, 1)
	go func() {
		resolvedCh <- p.table.Resolve(candidates)
	}()

	inf, infErr := p.inferencer.Infer(ctx, text, tctx)
	resolved := <-resolvedCh

	if infErr != nil {
		p.appendRecord(types.LogRecord{
			ID:        uuid.New().String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Input:     text,
			Error:     infErr.Error(),
		})
		return types.ClassificationResult{}, infErr
	}

	fields := reconcile.Reconcile(inf.Fields, resolved, tctx)
	code := edgecase.Detect(text, fields)

	result := types.ClassificationResult{
		Fields:         fields,
		Comment:        comment.Format(fields, tctx),
		SuggestedReply: comment.SuggestedReply(fields, tctx),
		EdgeCase:       code,
	}

	p.appendRecord(types.LogRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Input:     text,
		Output:    &result,
		EdgeCase:  code,
	})

	return result, nil
}

func (p *Pipeline) appendRecord(rec types.LogRecord) {
	if p.audit == nil {
		return
	}
	if err := p.audit.Append(rec); err != nil {
		p.log.WithError(err).Warn("audit log append failed")
	}
}
