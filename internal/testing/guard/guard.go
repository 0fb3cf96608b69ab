// Package guard switches the console into test mode when imported, so
// packages that touch runtime wiring never dial real services in tests.
package guard

import (
	"os"
	"sync"
)

var once sync.Once

func init() {
	once.Do(func() {
		if os.Getenv("CONSOLE_TEST_MODE") == "" {
			_ = os.Setenv("CONSOLE_TEST_MODE", "1")
		}
		if os.Getenv("API_BASE_URL") == "" {
			_ = os.Setenv("API_BASE_URL", "http://127.0.0.1:0")
		}
	})
}
