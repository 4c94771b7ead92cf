package goroutine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tenantgate/tenantgate/internal/shared/logger"
)

func TestSafeGo_RunsAndRecovers(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	ran := false
	SafeGo(logger.NewNop(), "ok", func() {
		defer wg.Done()
		ran = true
	})
	SafeGo(logger.NewNop(), "panics", func() {
		defer wg.Done()
		panic("boom")
	})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutines did not finish")
	}
	assert.True(t, ran)
}
