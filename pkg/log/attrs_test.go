package log_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siteflow-tools/siteflow-mcp/pkg/api"
	"github.com/siteflow-tools/siteflow-mcp/pkg/log"
)

type errStub string

func TestFlowID(t *testing.T) {
	attr := log.FlowID(api.FlowID("flow-123"))
	assertAttrEqual(t, attr, "flow_id", "flow-123")
}

func TestPhaseID(t *testing.T) {
	attr := log.PhaseID(api.PhaseID("phase-456"))
	assertAttrEqual(t, attr, "phase_id", "phase-456")
}

func TestStepID(t *testing.T) {
	attr := log.StepID(api.StepID("step-abc"))
	assertAttrEqual(t, attr, "step_id", "step-abc")
}

func TestStatus(t *testing.T) {
	attr := log.Status(201)
	assert.Equal(t, "status", attr.Key)
	assert.Equal(t, int64(201), attr.Value.Int64())
}

func TestError(t *testing.T) {
	attr := log.Error(nil)
	assertAttrEqual(t, attr, "error", "")

	attr = log.Error(errStub("boom"))
	assertAttrEqual(t, attr, "error", "boom")
}

func TestErrorString(t *testing.T) {
	attr := log.ErrorString("badness")
	assertAttrEqual(t, attr, "error", "badness")
}

func (e errStub) Error() string { return string(e) }

func assertAttrEqual(t *testing.T, attr slog.Attr, key, value string) {
	t.Helper()
	assert.Equal(t, key, attr.Key)
	assert.Equal(t, value, attr.Value.String())
}
