package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Tarif-dev/spline-mcp-server/internal/core"
	"github.com/Tarif-dev/spline-mcp-server/internal/ratelimit"
)

// RateKeyPrefix prefixes operation names to form rate-limit keys, so each
// operation gets its own quota independent of the others.
const RateKeyPrefix = "tool:"

// Result is the uniform envelope returned for every call. Exactly one of
// Data and Error is populated, matching Success.
type Result struct {
	Success   bool       `json:"success"`
	Data      any        `json:"data,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	Timestamp string     `json:"timestamp"`
	RequestID string     `json:"requestId"`
}

// Dispatcher routes named calls through admission control, argument
// validation and the registered handler, converting every outcome into a
// Result. It holds no per-call state; concurrent calls share only the rate
// counters behind the limiter.
type Dispatcher struct {
	registry *Registry
	limiter  *ratelimit.Limiter
	timeout  time.Duration
	clock    clockwork.Clock
}

// NewDispatcher creates a dispatcher with a real clock. Each handler
// invocation is bounded by timeoutSeconds.
func NewDispatcher(registry *Registry, limiter *ratelimit.Limiter, timeoutSeconds int) *Dispatcher {
	return NewDispatcherWithClock(registry, limiter, timeoutSeconds, clockwork.NewRealClock())
}

// NewDispatcherWithClock creates a dispatcher with a custom clock.
// This is useful for testing handler timeouts with a fake clock.
func NewDispatcherWithClock(
	registry *Registry,
	limiter *ratelimit.Limiter,
	timeoutSeconds int,
	clock clockwork.Clock,
) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		limiter:  limiter,
		timeout:  time.Duration(timeoutSeconds) * time.Second,
		clock:    clock,
	}
}

// Registry returns the dispatcher's operation registry for discovery.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch executes one call. It never returns an error to its caller: every
// failure path is classified and embedded in the Result, which always carries
// a fresh correlation id and timestamp.
func (d *Dispatcher) Dispatch(ctx context.Context, operationName string, rawArgs map[string]any) *Result {
	requestID := uuid.NewString()
	start := d.clock.Now()

	result := d.dispatch(ctx, requestID, operationName, rawArgs)
	result.RequestID = requestID
	result.Timestamp = d.clock.Now().UTC().Format(time.RFC3339Nano)

	var errorCode string
	if result.Error != nil {
		errorCode = string(result.Error.Code)
	}
	core.LogDispatch(operationName, requestID, d.clock.Since(start).Seconds(), errorCode)

	return result
}

// dispatch runs the admission, lookup, validation and invocation steps in
// strict sequence, short-circuiting on the first failed step.
func (d *Dispatcher) dispatch(
	ctx context.Context,
	requestID string,
	operationName string,
	rawArgs map[string]any,
) *Result {
	rateKey := RateKeyPrefix + operationName
	if !d.limiter.Allow(ctx, rateKey) {
		return failure(Classify(&RateLimitError{Key: rateKey}))
	}

	op, found := d.registry.Lookup(operationName)
	if !found {
		return failure(Classify(&UnknownOperationError{
			Name:       operationName,
			Suggestion: d.registry.Suggest(operationName),
		}))
	}

	args, err := ValidateArgs(op.Contract, rawArgs)
	if err != nil {
		return failure(Classify(err))
	}

	data, err := d.invoke(ctx, requestID, op, args)
	if err != nil {
		return failure(Classify(err))
	}

	return &Result{Success: true, Data: data}
}

// invoke runs the handler exactly once under the configured timeout. Panics
// are recovered here so the classifier sees them as ordinary causes; the
// handler is never retried. On timeout the backend call is abandoned from the
// gateway's perspective; the remote side may still complete it.
func (d *Dispatcher) invoke(
	ctx context.Context,
	requestID string,
	op *Operation,
	args map[string]any,
) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			core.LogPanicRecovery("operation handler", r)
			data = nil
			err = fmt.Errorf("panic recovered in %s handler: %v", op.Name, r)
		}
	}()

	invokeCtx, cancel := clockwork.WithTimeout(ctx, d.clock, d.timeout)
	defer cancel()

	return op.Handler(core.WithRequestID(invokeCtx, requestID), args)
}

func failure(info *ErrorInfo) *Result {
	return &Result{Success: false, Error: info}
}
