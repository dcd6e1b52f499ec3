package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskManager_RunsAllJobs(t *testing.T) {
	var count int64
	tm := New(4, 16)

	const n = 100
	for i := 0; i < n; i++ {
		tm.Submit(func() { atomic.AddInt64(&count, 1) })
	}
	tm.Shutdown()

	assert.Equal(t, int64(n), atomic.LoadInt64(&count))
}

func TestTaskManager_ShutdownDrainsQueue(t *testing.T) {
	var ran int32
	tm := New(2, 8)
	done := make(chan struct{})
	tm.Submit(func() {
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&ran, 1)
		close(done)
	})
	tm.Shutdown()
	<-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran))
}
