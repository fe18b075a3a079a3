package utils

import (
	"sync"
	"sync/atomic"
)

// ParallelMap 以最多 workers 个协程并发处理 input，结果顺序与输入一致。
// 元素数量不超过 1 或 workers <= 1 时直接在当前协程顺序执行。
func ParallelMap[T any, R any](input []T, workers int, fn func(T) R) []R {
	result := make([]R, len(input))
	if len(input) == 0 {
		return result
	}
	if len(input) == 1 || workers <= 1 {
		for i, v := range input {
			result[i] = fn(v)
		}
		return result
	}
	if workers > len(input) {
		workers = len(input)
	}

	// 各协程通过原子计数领取下标，避免按块切分导致的负载不均
	var next int64 = -1
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1))
				if i >= len(input) {
					return
				}
				result[i] = fn(input[i])
			}
		}()
	}
	wg.Wait()
	return result
}
