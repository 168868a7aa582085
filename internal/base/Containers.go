package base

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/constraints"
)

/***************************************
 * Container helpers
 ***************************************/

func Blend[T any](ifFalse, ifTrue T, selector bool) T {
	if selector {
		return ifTrue
	}
	return ifFalse
}

func IndexOf[T comparable](match T, values ...T) (int, bool) {
	for i, x := range values {
		if x == match {
			return i, true
		}
	}
	return -1, false
}

func Contains[T comparable](arr []T, values ...T) bool {
	for _, x := range values {
		if _, ok := IndexOf(x, arr...); !ok {
			return false
		}
	}
	return true
}

func AppendUniq[T comparable](src []T, elts ...T) (result []T) {
	result = src
	for _, x := range elts {
		if _, ok := IndexOf(x, result...); !ok {
			result = append(result, x)
		}
	}
	return result
}

func RemoveUnless[T any](pred func(T) bool, src ...T) (result []T) {
	off := 0
	result = make([]T, len(src))
	for i, x := range src {
		if pred(x) {
			result[off] = src[i]
			off++
		}
	}
	return result[:off]
}

func Map[IN, OUT any](transform func(IN) OUT, src ...IN) []OUT {
	result := make([]OUT, len(src))
	for i, x := range src {
		result[i] = transform(x)
	}
	return result
}

func Keys[K comparable, V any](elts ...map[K]V) []K {
	n := 0
	for _, it := range elts {
		n += len(it)
	}
	off := 0
	result := make([]K, n)
	for _, it := range elts {
		for key := range it {
			result[off] = key
			off++
		}
	}
	return result
}

func SortedKeys[K constraints.Ordered, V any](elts ...map[K]V) []K {
	result := Keys(elts...)
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

/***************************************
 * Set (slice with unique items)
 ***************************************/

type SetT[T comparable] []T

type StringSet = SetT[string]

func NewSet[T comparable](x ...T) (result SetT[T]) {
	result = make(SetT[T], 0, len(x))
	result.AppendUniq(x...)
	return
}
func NewStringSet(x ...string) StringSet {
	return NewSet(x...)
}

func (set SetT[T]) Empty() bool {
	return len(set) == 0
}
func (set SetT[T]) Len() int {
	return len(set)
}
func (set SetT[T]) Slice() []T {
	return set
}
func (set SetT[T]) IndexOf(it T) (int, bool) {
	return IndexOf(it, set...)
}
func (set SetT[T]) Contains(it ...T) bool {
	return Contains(set, it...)
}

// panics when an element is already in the set
func (set *SetT[T]) Append(it ...T) *SetT[T] {
	for _, x := range it {
		AssertNotIn(x, *set...)
		*set = append(*set, x)
	}
	return set
}
func (set *SetT[T]) AppendUniq(it ...T) (modified bool) {
	for _, x := range it {
		if !set.Contains(x) {
			*set = append(*set, x)
			modified = true
		}
	}
	return
}
func (set *SetT[T]) Remove(x T) *SetT[T] {
	if i, ok := set.IndexOf(x); ok {
		*set = append((*set)[:i], (*set)[i+1:]...)
	}
	return set
}

/***************************************
 * Parallel helpers
 ***************************************/

var gParallelism int32 = int32(runtime.NumCPU())

func GetParallelism() int { return int(atomic.LoadInt32(&gParallelism)) }

// Upper bound of goroutines run at once by ParallelMap, values below 1 restore the default
func SetParallelism(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	atomic.StoreInt32(&gParallelism, int32(n))
}

// Results keep the order of inputs, the first error encountered wins
func ParallelMap[IN any, OUT any](each func(IN) (OUT, error), in ...IN) ([]OUT, error) {
	results := make([]OUT, len(in))
	errs := make([]error, len(in))

	workers := make(chan struct{}, GetParallelism())
	wg := sync.WaitGroup{}
	wg.Add(len(in))
	for i := range in {
		workers <- struct{}{}
		go func(i int) {
			defer func() {
				<-workers
				wg.Done()
			}()
			results[i], errs[i] = each(in[i])
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
