package img2ascii

import "sync"

// forEachRowRange splits rows into at most workers contiguous ranges and
// runs fn on each concurrently, returning when all have finished. fn
// must only touch the rows it was given.
func forEachRowRange(rows, workers int, fn func(y0, y1 int)) {
	workers = min(max(workers, 1), rows)
	if workers <= 1 {
		fn(0, rows)
		return
	}

	chunk := (rows + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < rows; y0 += chunk {
		y1 := min(y0+chunk, rows)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}
