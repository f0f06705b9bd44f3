package iocache

import (
	"context"

	"github.com/huangsam/awrlens/core/parser"
	"github.com/huangsam/awrlens/internal/contract"
	"github.com/stretchr/testify/mock"
)

// MockReportLoader is a mock implementation of ReportLoader for testing.
type MockReportLoader struct {
	mock.Mock
}

var _ contract.ReportLoader = &MockReportLoader{} // Compile-time check

// Load implements the ReportLoader interface.
func (m *MockReportLoader) Load(ctx context.Context, path string) (*parser.Result, error) {
	ret := m.Called(ctx, path)
	res, _ := ret.Get(0).(*parser.Result)
	return res, ret.Error(1)
}
