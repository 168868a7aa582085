package base

import (
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
)

func TestAppendUniqKeepsOrder(t *testing.T) {
	got := AppendUniq([]string{"a", "b"}, "c", "a", "d", "c")
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AppendUniq failed: got %v, want %v", got, want)
	}
}

func TestRemoveUnless(t *testing.T) {
	got := RemoveUnless(func(s string) bool { return len(s) > 0 }, "a", "", "b", "")
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("RemoveUnless failed: got %v", got)
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]int{"z": 1, "a": 2, "m": 3})
	if !reflect.DeepEqual(got, []string{"a", "m", "z"}) {
		t.Errorf("SortedKeys failed: got %v", got)
	}
}

func TestSetAppendPanicsOnDuplicate(t *testing.T) {
	set := NewStringSet("x", "y", "x")
	if set.Len() != 2 {
		t.Errorf("NewStringSet failed: got %v", set)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("Append should panic on duplicate")
		}
	}()
	set.Append("y")
}

func TestSetRemove(t *testing.T) {
	set := NewStringSet("a", "b", "c")
	set.Remove("b")
	if !reflect.DeepEqual(set.Slice(), []string{"a", "c"}) {
		t.Errorf("Remove failed: got %v", set)
	}
	if set.AppendUniq("a") {
		t.Errorf("AppendUniq should not modify the set")
	}
}

func TestParallelMap(t *testing.T) {
	got, err := ParallelMap(func(i int) (int, error) { return i * i, nil }, 1, 2, 3, 4)
	if err != nil {
		t.Fatalf("ParallelMap failed: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 4, 9, 16}) {
		t.Errorf("ParallelMap failed: got %v", got)
	}

	failure := errors.New("failure")
	_, err = ParallelMap(func(i int) (int, error) {
		if i == 3 {
			return 0, failure
		}
		return i, nil
	}, 1, 2, 3)
	if !errors.Is(err, failure) {
		t.Errorf("ParallelMap should forward errors: got %v", err)
	}
}

func TestParallelMapHonorsParallelism(t *testing.T) {
	defer SetParallelism(0)
	SetParallelism(1)
	if GetParallelism() != 1 {
		t.Fatalf("SetParallelism failed: got %d", GetParallelism())
	}

	var running, peak int32
	_, err := ParallelMap(func(i int) (int, error) {
		current := atomic.AddInt32(&running, 1)
		if current > atomic.LoadInt32(&peak) {
			atomic.StoreInt32(&peak, current)
		}
		atomic.AddInt32(&running, -1)
		return i, nil
	}, 1, 2, 3, 4, 5)
	if err != nil {
		t.Fatalf("ParallelMap failed: %v", err)
	}
	if peak != 1 {
		t.Errorf("ParallelMap ran %d goroutines at once", peak)
	}
}
