package process

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"recordcheck/internal/validation/models"
	id "recordcheck/pkg/domain"
	"recordcheck/pkg/platform/sentinel"
)

type store interface {
	Create(ctx context.Context, subjectID id.SubjectID, contact *string) (*models.ValidationProcess, error)
	FindByID(ctx context.Context, processID id.ProcessID) (*models.ValidationProcess, error)
	UpdateStatus(ctx context.Context, processID id.ProcessID, status models.Status, outcome models.Outcome) (*models.ValidationProcess, error)
}

var (
	_ store = (*InMemory)(nil)
	_ store = (*PostgresStore)(nil)
	_ store = (*RedisStore)(nil)
	_ store = (*SQLiteStore)(nil)
)

const testSubject = id.SubjectID("387ec43c-6280-11f0-9d8d-4b43610f4997")

// ContractSuite holds the behaviour every process backend must share.
// Backend suites embed it and set newStore.
type ContractSuite struct {
	suite.Suite
	newStore func(clock Clock) store
	store    store
	now      time.Time
	ctx      context.Context
}

func (s *ContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.store = s.newStore(func() time.Time { return s.now })
}

func (s *ContractSuite) advance(d time.Duration) time.Time {
	s.now = s.now.Add(d)
	return s.now
}

func (s *ContractSuite) create() *models.ValidationProcess {
	contact := "parent@example.com"
	p, err := s.store.Create(s.ctx, testSubject, &contact)
	s.Require().NoError(err)
	return p
}

// =============================================================================
// Create / FindByID
// =============================================================================

func (s *ContractSuite) TestCreateStartsPending() {
	p := s.create()

	s.False(p.ProcessID.IsNil())
	s.Equal(models.StatusPending, p.Status)
	s.Equal(testSubject, p.SubjectID)
	s.True(p.CreatedAt.Equal(s.now))
	s.Nil(p.UpdatedAt)
	s.Nil(p.ErrorMessage)
	s.Nil(p.Result)

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Equal(p.ProcessID, found.ProcessID)
	s.Equal(models.StatusPending, found.Status)
	s.Require().NotNil(found.Contact)
	s.Equal("parent@example.com", *found.Contact)
	s.True(found.CreatedAt.Equal(s.now))
}

func (s *ContractSuite) TestCreateWithoutContact() {
	p, err := s.store.Create(s.ctx, testSubject, nil)
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Nil(found.Contact)
}

func (s *ContractSuite) TestCreateIssuesDistinctIDs() {
	a := s.create()
	b := s.create()
	s.NotEqual(a.ProcessID, b.ProcessID)
}

func (s *ContractSuite) TestFindUnknown() {
	_, err := s.store.FindByID(s.ctx, id.NewProcessID())
	s.ErrorIs(err, models.ErrProcessNotFound)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// =============================================================================
// UpdateStatus
// =============================================================================

func (s *ContractSuite) TestLifecycleToCompleted() {
	p := s.create()

	started := s.advance(time.Second)
	inProgress, err := s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusInProgress, models.Outcome{})
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, inProgress.Status)
	s.Require().NotNil(inProgress.UpdatedAt)
	s.True(inProgress.UpdatedAt.Equal(started))

	finished := s.advance(2 * time.Second)
	result := map[string]any{"summary": "record verified", "verified": true}
	completed, err := s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusCompleted, models.Outcome{Result: result})
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, completed.Status)

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, found.Status)
	s.Equal(result, found.Result)
	s.Nil(found.ErrorMessage)
	s.True(found.CreatedAt.Equal(p.CreatedAt))
	s.Require().NotNil(found.UpdatedAt)
	s.True(found.UpdatedAt.Equal(finished))
}

func (s *ContractSuite) TestCompletedWithEmptyResultKeepsIt() {
	p := s.create()
	_, err := s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusInProgress, models.Outcome{})
	s.Require().NoError(err)
	_, err = s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusCompleted, models.Outcome{Result: map[string]any{}})
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, found.Status)
	s.NotNil(found.Result, "completed process must keep its result")
	s.Empty(found.Result)
	s.Nil(found.ErrorMessage)
}

func (s *ContractSuite) TestLifecycleToFailed() {
	p := s.create()
	_, err := s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusInProgress, models.Outcome{})
	s.Require().NoError(err)

	_, err = s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusFailed,
		models.Outcome{ErrorMessage: models.ExecutionMessageSubjectMissing})
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Equal(models.StatusFailed, found.Status)
	s.Require().NotNil(found.ErrorMessage)
	s.Equal(models.ExecutionMessageSubjectMissing, *found.ErrorMessage)
	s.Nil(found.Result)
}

func (s *ContractSuite) TestRejectsSkippingInProgress() {
	p := s.create()

	_, err := s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusCompleted,
		models.Outcome{Result: map[string]any{"summary": "x"}})
	s.ErrorIs(err, sentinel.ErrInvalidState)

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, found.Status)
}

func (s *ContractSuite) TestTerminalStatusIsFinal() {
	p := s.create()
	_, err := s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusInProgress, models.Outcome{})
	s.Require().NoError(err)
	_, err = s.store.UpdateStatus(s.ctx, p.ProcessID, models.StatusFailed, models.Outcome{ErrorMessage: "boom"})
	s.Require().NoError(err)

	for _, next := range []models.Status{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		_, err := s.store.UpdateStatus(s.ctx, p.ProcessID, next, models.Outcome{Result: map[string]any{"summary": "x"}})
		s.ErrorIs(err, sentinel.ErrInvalidState, "failed -> %s", next)
	}

	found, err := s.store.FindByID(s.ctx, p.ProcessID)
	s.Require().NoError(err)
	s.Equal(models.StatusFailed, found.Status)
}

func (s *ContractSuite) TestUpdateUnknown() {
	_, err := s.store.UpdateStatus(s.ctx, id.NewProcessID(), models.StatusInProgress, models.Outcome{})
	s.ErrorIs(err, models.ErrProcessNotFound)
}
