// backoff.go
//
// Exponential backoff for contended CAS loops: PAUSE bursts that double
// per failure up to 2^MaxBackoffExp iterations, then scheduler yields.
// State is local to one operation; a fresh operation starts a fresh ladder.

package queue

import (
	"runtime"

	"main/constants"
)

type backoff struct {
	count int
}

func (b *backoff) backoff() {
	if b.count <= constants.MaxBackoffExp {
		for i := 0; i < 1<<b.count; i++ {
			procPause()
		}
		b.count++
		return
	}
	runtime.Gosched()
}

func (b *backoff) reset() {
	b.count = 0
}
