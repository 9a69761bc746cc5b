package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kestrelns/kestrel/internal/dns/common/log"
	"github.com/kestrelns/kestrel/internal/dns/domain"
)

// Handler fans a multi-question request out into concurrent sub-lookups and
// folds the results back into one response message.
type Handler struct {
	resolver Resolver
	timeout  time.Duration
	logger   log.Logger
}

// NewHandler wraps a resolver. timeout bounds the whole request, all
// sub-lookups included; non-positive means no handler-imposed bound.
func NewHandler(r Resolver, timeout time.Duration, logger log.Logger) *Handler {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Handler{resolver: r, timeout: timeout, logger: logger}
}

// subResult carries one question's outcome back to the aggregator.
type subResult struct {
	index   int
	answers []domain.ResourceRecord
	err     error
}

// HandleQuery resolves every question in req concurrently and returns a
// single response echoing the request ID and questions. Answers are grouped
// by question order, not arrival order. Questions that fail are logged and
// skipped; the response carries SERVFAIL only when every question failed.
// When the context expires mid-flight the answers gathered so far are
// returned.
func (h *Handler) HandleQuery(ctx context.Context, req domain.Message) (domain.Message, error) {
	requestID := uuid.New().String()

	resp := domain.Message{
		ID:        req.ID,
		Questions: req.Questions,
	}
	resp.Flags.SetResponse(true)
	resp.Flags.SetRecursionDesired(req.Flags.RecursionDesired())

	if len(req.Questions) == 0 {
		resp.Flags.SetRCode(domain.RCodeFormErr)
		return resp, nil
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	h.logger.Debug(map[string]any{
		"request_id": requestID,
		"questions":  len(req.Questions),
	}, "Handling query")

	results := make(chan subResult, len(req.Questions))
	for i, q := range req.Questions {
		go func(i int, q domain.Question) {
			m, err := h.resolver.LookupFull(ctx, q.Name.String(), "", q.Type)
			if err != nil {
				results <- subResult{index: i, err: err}
				return
			}
			results <- subResult{index: i, answers: m.Answers}
		}(i, q)
	}

	answersByQuestion := make([][]domain.ResourceRecord, len(req.Questions))
	failed := 0
	received := 0
collect:
	for received < len(req.Questions) {
		select {
		case res := <-results:
			received++
			if res.err != nil {
				failed++
				h.logger.Warn(map[string]any{
					"request_id": requestID,
					"question":   req.Questions[res.index].String(),
					"error":      res.err.Error(),
				}, "Sub-lookup failed")
				continue
			}
			answersByQuestion[res.index] = res.answers
		case <-ctx.Done():
			h.logger.Warn(map[string]any{
				"request_id": requestID,
				"resolved":   received,
				"total":      len(req.Questions),
			}, "Request deadline reached, returning partial results")
			break collect
		}
	}

	for _, answers := range answersByQuestion {
		resp.Answers = append(resp.Answers, answers...)
	}
	if failed == len(req.Questions) {
		resp.Flags.SetRCode(domain.RCodeServFail)
	}

	h.logger.Debug(map[string]any{
		"request_id": requestID,
		"answers":    len(resp.Answers),
		"failed":     failed,
		"rcode":      resp.Flags.RCode().String(),
	}, "Handled query")
	return resp, nil
}
