package canvas

import (
	"context"
	"net/url"

	"github.com/pangbo13/SJTU-Canvas-Helper/internal/paging"
)

// calendarBatchSize is the most context codes the calendar endpoint accepts
// in one call. Larger filter lists are pre-batched and fetched sequentially.
const calendarBatchSize = 10

// ListCalendarEvents returns the assignment calendar events for the given
// course context codes between startDate and endDate. Context codes are
// batched in groups of at most ten; batch results are concatenated in input
// order, and a failed batch aborts the listing.
func (c *Client) ListCalendarEvents(ctx context.Context, contextCodes []string, startDate, endDate, token string) ([]CalendarEvent, error) {
	var all []CalendarEvent

	for _, batch := range paging.Batch(contextCodes, calendarBatchSize) {
		events, err := c.listCalendarEventsBatch(ctx, batch, startDate, endDate, token)
		if err != nil {
			return nil, err
		}

		all = append(all, events...)
	}

	return all, nil
}

func (c *Client) listCalendarEventsBatch(ctx context.Context, contextCodes []string, startDate, endDate, token string) ([]CalendarEvent, error) {
	query := url.Values{
		"type":       {"assignment"},
		"start_date": {startDate},
		"end_date":   {endDate},
	}
	for _, code := range contextCodes {
		query.Add("context_codes[]", code)
	}

	return listAll[CalendarEvent](ctx, c, "/api/v1/calendar_events", query, token)
}
