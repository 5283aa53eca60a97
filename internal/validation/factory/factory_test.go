package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"recordcheck/internal/validation/metrics"
	"recordcheck/internal/validation/models"
	"recordcheck/internal/validation/service"
	"recordcheck/internal/validation/store/process"
	"recordcheck/internal/validation/store/record"
	dErrors "recordcheck/pkg/domain-errors"
	"recordcheck/pkg/platform/sentinel"
)

const subjectID = "387ec43c-6280-11f0-9d8d-4b43610f4997"

// =============================================================================
// Factory Test Suite
// =============================================================================

type FactorySuite struct {
	suite.Suite
	ctx       context.Context
	records   *record.InMemory
	scheduler *service.TrackedScheduler
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) SetupTest() {
	s.ctx = context.Background()
	s.records = record.NewInMemory()
	s.records.Put(subjectID, models.CanonicalRecord{"email": "parent@example.com"})
	s.scheduler = service.NewTrackedScheduler()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (s *FactorySuite) recordsOK(context.Context) (service.RecordStore, error) {
	return s.records, nil
}

func (s *FactorySuite) newFactory(records RecordsBuilder, durable ProcessesBuilder) *Factory {
	return New(records, durable,
		WithLogger(s.logger),
		WithMetrics(s.metrics),
		WithBackendName("postgres"),
		WithServiceOptions(service.WithScheduler(s.scheduler), service.WithLogger(s.logger)),
	)
}

// runOnce proves the built service works end to end against its records.
func (s *FactorySuite) runOnce(res *Result) {
	proc, err := res.Service.InitiateValidation(s.ctx, subjectID)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	s.Require().NoError(s.scheduler.Wait(ctx))

	got, found, err := res.Service.GetValidationStatus(s.ctx, proc.ProcessID.String())
	s.Require().NoError(err)
	s.Require().True(found)
	s.Equal(models.StatusCompleted, got.Status)
}

func (s *FactorySuite) TestDurableTier() {
	durable := process.NewInMemory()
	f := s.newFactory(s.recordsOK, func(context.Context) (service.ProcessStore, error) {
		return durable, nil
	})

	res, err := f.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(TierDurable, res.Tier)
	s.Equal("postgres", res.Backend)
	s.False(res.Degraded())

	s.runOnce(res)
	s.Equal(1, durable.Len())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BackendTier.WithLabelValues(TierDurable, "postgres")))
}

func (s *FactorySuite) TestDurableProcessesFailFallsBackKeepingRecords() {
	f := s.newFactory(s.recordsOK, func(context.Context) (service.ProcessStore, error) {
		return nil, errors.New("dial tcp: connection refused")
	})

	res, err := f.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(TierFallback, res.Tier)
	s.Equal(BackendMemory, res.Backend)
	s.True(res.Degraded())

	// Records still come from the durable record store.
	s.runOnce(res)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BackendTier.WithLabelValues(TierFallback, BackendMemory)))
}

func (s *FactorySuite) TestPanickingBuilderIsAConstructionFailure() {
	f := s.newFactory(s.recordsOK, func(context.Context) (service.ProcessStore, error) {
		panic("driver not registered")
	})

	res, err := f.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(TierFallback, res.Tier)
}

func (s *FactorySuite) TestNilStoreIsAConstructionFailure() {
	f := s.newFactory(s.recordsOK, func(context.Context) (service.ProcessStore, error) {
		return nil, nil
	})

	res, err := f.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(TierFallback, res.Tier)
}

func (s *FactorySuite) TestTypedNilStoreIsAConstructionFailure() {
	f := s.newFactory(s.recordsOK, func(context.Context) (service.ProcessStore, error) {
		var store *process.PostgresStore
		return store, nil
	})

	res, err := f.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(TierFallback, res.Tier)
	s.Equal(BackendMemory, res.Backend)
}

func (s *FactorySuite) TestTypedNilRecordsIsAConstructionFailure() {
	f := s.newFactory(func(context.Context) (service.RecordStore, error) {
		var store *record.PostgresStore
		return store, nil
	}, nil)

	_, err := f.Build(s.ctx)
	s.Require().Error(err)
	s.ErrorIs(err, ErrBackendConstruction)
	s.ErrorContains(err, "builder returned nil")
}

func (s *FactorySuite) TestRecordsTransientFailureRecoversOnFallback() {
	attempts := 0
	durableCalled := false
	f := s.newFactory(
		func(context.Context) (service.RecordStore, error) {
			attempts++
			if attempts == 1 {
				return nil, errors.New("timeout")
			}
			return s.records, nil
		},
		func(context.Context) (service.ProcessStore, error) {
			durableCalled = true
			return process.NewInMemory(), nil
		},
	)

	res, err := f.Build(s.ctx)
	s.Require().NoError(err)
	s.Equal(TierFallback, res.Tier)
	s.Equal(2, attempts)
	s.False(durableCalled)
}

func (s *FactorySuite) TestBothTiersFailIsFatal() {
	f := s.newFactory(
		func(context.Context) (service.RecordStore, error) {
			return nil, errors.New("records down")
		},
		func(context.Context) (service.ProcessStore, error) {
			return process.NewInMemory(), nil
		},
	)

	res, err := f.Build(s.ctx)
	s.Nil(res)
	s.ErrorIs(err, ErrBackendConstruction)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.ErrorIs(err, sentinel.ErrUnavailable)
	s.ErrorContains(err, "records down")
}

func (s *FactorySuite) TestMissingBuilders() {
	res, err := New(nil, nil, WithLogger(s.logger)).Build(s.ctx)
	s.Nil(res)
	s.ErrorIs(err, ErrBackendConstruction)
}
