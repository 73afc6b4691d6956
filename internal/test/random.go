package test

import (
	"math/rand"
	"sync"
	"time"
)

const (
	letters  = "abcdefghijklmnopqrstuvwxyz"
	alphanum = letters + "0123456789"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomUsername returns a lowercase alphanumeric name starting with a letter,
// between minLen and maxLen characters long.
func RandomUsername(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	buf[0] = letters[randomIntn(len(letters))]
	for i := 1; i < length; i++ {
		buf[i] = alphanum[randomIntn(len(alphanum))]
	}
	return string(buf)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
