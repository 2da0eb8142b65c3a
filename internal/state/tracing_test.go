package state

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordingTracer(t *testing.T) (*tracetest.SpanRecorder, Option) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, WithTracerProvider(tp)
}

func spanNames(sr *tracetest.SpanRecorder) []string {
	var out []string
	for _, s := range sr.Ended() {
		out = append(out, s.Name())
	}
	return out
}

func TestTracing_ActionSpans(t *testing.T) {
	sr, opt := recordingTracer(t)
	s := newStore(t, pages(10), openRepos(t), opt)
	ctx := context.Background()

	s.FetchUsers(ctx, 1)
	s.ToggleFavorite(ctx, "p1-00")
	s.ClearCache(ctx)

	assert.Equal(t, []string{"state.FetchUsers", "state.ToggleFavorite", "state.ClearCache"}, spanNames(sr))
}

func TestTracing_FailedFetchRecordsErrorAndFallbackSpan(t *testing.T) {
	sr, opt := recordingTracer(t)
	s := newStore(t, failing(errors.New("offline")), openRepos(t), opt)

	s.FetchUsers(context.Background(), 1)

	ended := sr.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "state.LoadFromCache", ended[0].Name())
	assert.Equal(t, "state.FetchUsers", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}
