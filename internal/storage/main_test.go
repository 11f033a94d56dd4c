// ABOUTME: Test entry point for the storage package.
// ABOUTME: Fails the run if any test leaves a goroutine behind.
package storage

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	logrus.SetOutput(io.Discard)
	goleak.VerifyTestMain(m)
}
