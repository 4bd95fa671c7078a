package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/csvchat/csvchat-go/internal/domain"
	"github.com/csvchat/csvchat-go/internal/ports"
	"github.com/csvchat/csvchat-go/internal/render"
)

// AskRequest is the application-level input (no HTTP types). The session is
// passed explicitly; the prompt builder deliberately reads only the query,
// so the table never leaves the process.
type AskRequest struct {
	Session domain.Session
	Query   string
}

// AskResult is one finished pipeline pass: the rendered blocks plus call
// metadata for the response envelope.
type AskResult struct {
	Blocks    []render.Block
	Model     string
	LatencyMS int64
}

// AskService runs the query pipeline: build the prompt, call the model
// once, decode the reply, render blocks.
type AskService struct {
	generator ports.Generator
	renderer  *render.Renderer
	logger    *slog.Logger
	model     string
}

func NewAskService(gen ports.Generator, renderer *render.Renderer, logger *slog.Logger, model string) *AskService {
	return &AskService{
		generator: gen,
		renderer:  renderer,
		logger:    logger,
		model:     model,
	}
}

// Ask never returns an error: every failure in the pipeline degrades to a
// fixed answer block so the page stays usable for the next query.
func (s *AskService) Ask(ctx context.Context, req AskRequest) AskResult {
	s.logger.InfoContext(ctx, "query received",
		"file", req.Session.Filename,
		"rows", len(req.Session.Table.Rows),
		"query_len", len(req.Query),
	)

	prompt := promptFor(req.Query)

	start := time.Now()
	reply, err := s.generator.Generate(ctx, prompt)
	latency := time.Since(start).Milliseconds()

	var result domain.Result
	switch {
	case errors.Is(err, domain.ErrEmptyCompletion):
		s.logger.ErrorContext(ctx, "model reply unusable", "error", err)
		result = domain.AnswerResult(domain.MsgUnexpectedStructure)
	case err != nil:
		s.logger.ErrorContext(ctx, "model call failed", "error", err)
		result = domain.AnswerResult(domain.MsgContactError)
	default:
		result, err = domain.DecodeResult(reply)
		if err != nil {
			s.logger.ErrorContext(ctx, "undecodable model reply", "error", err, "reply", reply)
			result = domain.AnswerResult(domain.MsgInvalidResponse)
		}
	}

	return AskResult{
		Blocks:    s.renderer.Render(ctx, result),
		Model:     s.model,
		LatencyMS: latency,
	}
}
