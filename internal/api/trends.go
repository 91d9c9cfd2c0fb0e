package api

import (
	"context"

	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/trend"
)

// Trends fetches and decodes a trend envelope. ok is false when the fetch
// failed or the body was not an envelope; the returned envelope is then
// empty and callers render it the same way as "no trends".
func (c *Client) Trends(ctx context.Context, q trend.Query) (env trend.Envelope, ok bool) {
	body := c.Get(ctx, q.Path())
	if body == nil {
		return trend.Envelope{}, false
	}

	env, err := trend.Decode(body)
	if err != nil {
		c.log.Error(otel.KindFetchError, comp, err)
		return trend.Envelope{}, false
	}

	n := len(env.Normalize())
	kind := otel.KindTrendsLoaded
	if n == 0 {
		kind = otel.KindTrendsEmpty
	}
	c.log.Emit(otel.Event{
		Level:  otel.LevelInfo,
		Kind:   kind,
		Comp:   comp,
		Count:  n,
		Source: env.Trends.Shape().String(),
		Target: q.Path(),
	})
	return env, true
}
