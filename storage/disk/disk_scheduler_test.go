package disk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiskScheduler(t *testing.T) {
	t.Run("schedule is non blocking", func(t *testing.T) {
		dm := NewManager(createDbFile(t))
		ds := NewScheduler(dm)

		data := make([]byte, PAGE_SIZE)
		req := NewRequest(0, data, true)

		start := time.Now()
		respCh := ds.Schedule(req)
		assert.Less(t, time.Since(start), time.Millisecond)

		resp := <-respCh
		assert.True(t, resp.Success)
	})

	t.Run("can schedule read and write requests", func(t *testing.T) {
		dm := NewManager(createDbFile(t))
		ds := NewScheduler(dm)

		data := make([]byte, PAGE_SIZE)
		copy(data, []byte("scheduled write"))

		writeResp := <-ds.Schedule(NewRequest(0, data, true))
		assert.True(t, writeResp.Success)

		readResp := <-ds.Schedule(NewRequest(0, nil, false))
		assert.True(t, readResp.Success)
		assert.Equal(t, data, readResp.Data)
	})
}
