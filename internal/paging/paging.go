// Package paging collects multi-page listings into one slice. Two numbering
// conventions coexist across the remote services: 1-based pages that end on
// the first empty page (Canvas), and indexed pages where the service reports
// its own paging state alongside each page (the video platform).
package paging

import "context"

// Collect fetches 1-based pages in increasing order until the first empty
// page and returns the concatenation in page order. The empty page is the
// sole non-error termination condition; no page is fetched twice.
func Collect[T any](ctx context.Context, fetch func(ctx context.Context, page int) ([]T, error)) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		items, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		if len(items) == 0 {
			return all, nil
		}

		all = append(all, items...)
	}
}

// Meta is the paging state a service reports alongside each page.
type Meta struct {
	PageCount int
	PageNext  int
}

// CollectIndexed fetches pages starting at index 1 until the service reports
// no further page: a zero page count, or a next index equal to the current
// one. Results are concatenated in page order.
func CollectIndexed[T any](
	ctx context.Context,
	fetch func(ctx context.Context, pageIndex int) ([]T, Meta, error),
) ([]T, error) {
	var all []T

	for index := 1; ; index++ {
		items, meta, err := fetch(ctx, index)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if meta.PageCount == 0 || meta.PageNext == index {
			return all, nil
		}
	}
}

// Batch splits items into consecutive groups of at most size elements,
// preserving order. A nil or empty input yields no batches.
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end])
	}

	return batches
}
