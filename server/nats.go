package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360studio/readyspec/analysis"
)

// Default NATS responder settings.
const (
	DefaultAnalyzeSubject = "readyspec.analyze.request"
	responderQueue        = "readyspec-analyzers"
)

// Responder serves analysis over NATS request/reply. All instances in the
// same queue group share the load; each request carries one AnalyzeRequest
// and receives one Result or an error body.
type Responder struct {
	conn    *nats.Conn
	engine  *analysis.Engine
	metrics *Metrics
	logger  *slog.Logger
	subject string

	sub *nats.Subscription
}

// NewResponder creates a responder on an established connection. An empty
// subject uses DefaultAnalyzeSubject; a nil metrics set records nothing.
func NewResponder(conn *nats.Conn, engine *analysis.Engine, metrics *Metrics, subject string, logger *slog.Logger) *Responder {
	if subject == "" {
		subject = DefaultAnalyzeSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		conn:    conn,
		engine:  engine,
		metrics: metrics,
		logger:  logger,
		subject: subject,
	}
}

// Start subscribes to the analyze subject as part of the responder queue
// group.
func (r *Responder) Start() error {
	sub, err := r.conn.QueueSubscribe(r.subject, responderQueue, func(msg *nats.Msg) {
		if err := msg.Respond(r.handle(msg.Data)); err != nil {
			r.logger.Warn("Failed to respond to analyze request", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", r.subject, err)
	}
	r.sub = sub
	r.logger.Info("NATS responder started",
		slog.String("subject", r.subject),
		slog.String("queue", responderQueue))
	return nil
}

// Close drains the subscription so in-flight requests finish before shutdown.
func (r *Responder) Close() error {
	if r.sub == nil {
		return nil
	}
	if err := r.sub.Drain(); err != nil {
		return fmt.Errorf("drain subscription: %w", err)
	}
	return nil
}

// handle runs one request and encodes the reply. It never returns an empty
// payload: decode and analysis failures become {"error": ...} bodies so the
// requester always gets a diagnosable response.
func (r *Responder) handle(data []byte) []byte {
	var req AnalyzeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(errorBody(fmt.Errorf("invalid request: %w", err)))
	}

	start := time.Now()
	result, err := r.engine.Analyze(req.Text)
	if err != nil {
		return mustMarshal(errorBody(err))
	}
	if r.metrics != nil {
		r.metrics.ObserveAnalysis(string(result.ReadinessLevel), time.Since(start))
	}

	return mustMarshal(result)
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Result and error bodies are always marshalable; reaching this is a
		// programming error.
		panic("server: marshal reply: " + err.Error())
	}
	return data
}
