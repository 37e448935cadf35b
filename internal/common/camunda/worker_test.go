// internal/common/camunda/worker_test.go
package camunda

import (
	stderrors "errors"
	"testing"

	"marketplace-workers/internal/common/config"
	"marketplace-workers/internal/common/errors"
	"marketplace-workers/internal/common/logger"
	"marketplace-workers/internal/common/metrics"
	"marketplace-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type stubHandler struct {
	err   error
	calls int
}

func (h *stubHandler) Handle(worker.JobClient, entities.Job) error {
	h.calls++
	return h.err
}

func newJob(key int64) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: key, Type: "instrument-test", Retries: 3}}
}

func TestInstrument_CountsOutcomes(t *testing.T) {
	const taskType = "instrument-test"
	log := logger.NewTestLogger(t)
	obs := observability.NewNoop()

	completedBefore := testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType))
	failedBefore := testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, string(errors.ErrCodeProviderQueryFailed)))

	ok := &stubHandler{}
	Instrument(taskType, ok, obs, log)(nil, newJob(1))

	failing := &stubHandler{err: errors.NewProviderQueryFailedError("postgres", stderrors.New("boom"))}
	Instrument(taskType, failing, obs, log)(nil, newJob(2))

	assert.Equal(t, 1, ok.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, completedBefore+1, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, string(errors.ErrCodeProviderQueryFailed))))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

func TestStart_DisabledWorker(t *testing.T) {
	w := Start(nil, "disabled-task", config.WorkerConfig{Enabled: false}, &stubHandler{}, observability.NewNoop(), logger.NewTestLogger(t))
	assert.Nil(t, w)
}
