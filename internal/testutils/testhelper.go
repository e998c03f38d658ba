package testutils

import (
	"testing"

	"github.com/sirupsen/logrus"
)

type TestHelper struct {
	T      *testing.T
	Logger *logrus.Logger
}

// NewTestHelper creates a test helper with a debug-level logger
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{
		T:      t,
		Logger: NewTestLogger(),
	}
}

// NewTestLogger returns a logger at debug level to track execution flow
func NewTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

// CreateBondedSet starts a provider builder with a present default adapter
func CreateBondedSet() *BondedSetBuilder {
	return NewBondedSetBuilder()
}

// CreateBondedSetFromJSON starts a provider builder whose devices come from a JSON array
func CreateBondedSetFromJSON(jsonStrFmt string, args ...interface{}) *BondedSetBuilder {
	return NewBondedSetBuilder().WithDevicesFromJSON(jsonStrFmt, args...)
}
