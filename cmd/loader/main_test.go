package main

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/clover/pkg/models"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestRunID(t *testing.T) {
	assert.Equal(t, "", runID(nil))
	assert.Equal(t, "run-1", runID(&models.PipelineRun{ID: "run-1"}))
}

func TestFinishFailedWithoutStores(t *testing.T) {
	// Run bookkeeping is optional; with no run row recorded and no producer
	// configured the failure path is a no-op.
	finishFailed(context.Background(), testLogger(), nil, nil, nil, "merge", "csv", errors.New("bolt connection refused"))
}
