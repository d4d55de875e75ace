package risk

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockSuicideRepo struct {
	records map[uuid.UUID]*SuicideAssessment
	failing bool
}

func newMockSuicideRepo() *mockSuicideRepo {
	return &mockSuicideRepo{records: make(map[uuid.UUID]*SuicideAssessment)}
}

func (m *mockSuicideRepo) Create(_ context.Context, a *SuicideAssessment) error {
	if m.failing {
		return fmt.Errorf("connection reset")
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.records[a.ID] = a
	return nil
}
func (m *mockSuicideRepo) GetByID(_ context.Context, id uuid.UUID) (*SuicideAssessment, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}
func (m *mockSuicideRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*SuicideAssessment, int, error) {
	var result []*SuicideAssessment
	for _, a := range m.records {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}
func (m *mockSuicideRepo) LatestByPatient(_ context.Context, patientID uuid.UUID) (*SuicideAssessment, error) {
	var latest *SuicideAssessment
	for _, a := range m.records {
		if a.PatientID == patientID && (latest == nil || a.AssessedAt.After(latest.AssessedAt)) {
			latest = a
		}
	}
	return latest, nil
}

type mockSelfHarmRepo struct {
	records map[uuid.UUID]*SelfHarmAssessment
}

func newMockSelfHarmRepo() *mockSelfHarmRepo {
	return &mockSelfHarmRepo{records: make(map[uuid.UUID]*SelfHarmAssessment)}
}

func (m *mockSelfHarmRepo) Create(_ context.Context, a *SelfHarmAssessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.records[a.ID] = a
	return nil
}
func (m *mockSelfHarmRepo) GetByID(_ context.Context, id uuid.UUID) (*SelfHarmAssessment, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}
func (m *mockSelfHarmRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*SelfHarmAssessment, int, error) {
	var result []*SelfHarmAssessment
	for _, a := range m.records {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}
func (m *mockSelfHarmRepo) LatestByPatient(_ context.Context, patientID uuid.UUID) (*SelfHarmAssessment, error) {
	var latest *SelfHarmAssessment
	for _, a := range m.records {
		if a.PatientID == patientID && (latest == nil || a.AssessedAt.After(latest.AssessedAt)) {
			latest = a
		}
	}
	return latest, nil
}

type mockViolenceRepo struct {
	records map[uuid.UUID]*ViolenceAssessment
}

func newMockViolenceRepo() *mockViolenceRepo {
	return &mockViolenceRepo{records: make(map[uuid.UUID]*ViolenceAssessment)}
}

func (m *mockViolenceRepo) Create(_ context.Context, a *ViolenceAssessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.records[a.ID] = a
	return nil
}
func (m *mockViolenceRepo) GetByID(_ context.Context, id uuid.UUID) (*ViolenceAssessment, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}
func (m *mockViolenceRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*ViolenceAssessment, int, error) {
	var result []*ViolenceAssessment
	for _, a := range m.records {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}
func (m *mockViolenceRepo) LatestByPatient(_ context.Context, patientID uuid.UUID) (*ViolenceAssessment, error) {
	var latest *ViolenceAssessment
	for _, a := range m.records {
		if a.PatientID == patientID && (latest == nil || a.AssessedAt.After(latest.AssessedAt)) {
			latest = a
		}
	}
	return latest, nil
}

type mockComprehensiveRepo struct {
	records map[uuid.UUID]*ComprehensiveAssessment
}

func newMockComprehensiveRepo() *mockComprehensiveRepo {
	return &mockComprehensiveRepo{records: make(map[uuid.UUID]*ComprehensiveAssessment)}
}

func (m *mockComprehensiveRepo) Create(_ context.Context, a *ComprehensiveAssessment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.records[a.ID] = a
	return nil
}
func (m *mockComprehensiveRepo) GetByID(_ context.Context, id uuid.UUID) (*ComprehensiveAssessment, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}
func (m *mockComprehensiveRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*ComprehensiveAssessment, int, error) {
	var result []*ComprehensiveAssessment
	for _, a := range m.records {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssessedAt.After(result[j].AssessedAt) })
	return result, len(result), nil
}
func (m *mockComprehensiveRepo) LatestByPatient(_ context.Context, patientID uuid.UUID) (*ComprehensiveAssessment, error) {
	var latest *ComprehensiveAssessment
	for _, a := range m.records {
		if a.PatientID == patientID && (latest == nil || a.AssessedAt.After(latest.AssessedAt)) {
			latest = a
		}
	}
	return latest, nil
}

func newTestService() (*Service, *mockSuicideRepo, *mockComprehensiveRepo) {
	suicide := newMockSuicideRepo()
	comprehensive := newMockComprehensiveRepo()
	svc := NewService(suicide, newMockSelfHarmRepo(), newMockViolenceRepo(), comprehensive)
	return svc, suicide, comprehensive
}

// -- Tests --

func TestService_AssessSuicidePersists(t *testing.T) {
	svc, repo, _ := newTestService()
	r := baselineSuicideResponses()
	r.IdeationPresent = boolPtr(true)
	r.IdeationIntensity = 8

	a, err := svc.AssessSuicide(context.Background(), uuid.New(), uuid.New(), uuid.New(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Error("assessment was not assigned an id")
	}
	if _, ok := repo.records[a.ID]; !ok {
		t.Error("assessment was not persisted")
	}
}

func TestService_RequiresIdentifiers(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.AssessSuicide(context.Background(), uuid.Nil, uuid.New(), uuid.New(), baselineSuicideResponses())
	if err == nil {
		t.Fatal("expected error for nil patient_id")
	}
}

func TestService_IncompleteResponsesNotPersisted(t *testing.T) {
	svc, repo, _ := newTestService()
	r := baselineSuicideResponses()
	r.IdeationPresent = nil

	_, err := svc.AssessSuicide(context.Background(), uuid.New(), uuid.New(), uuid.New(), r)
	if !IsIncompleteResponses(err) {
		t.Fatalf("expected IncompleteResponsesError, got %v", err)
	}
	if len(repo.records) != 0 {
		t.Error("incomplete assessment must not be persisted")
	}
}

func TestService_PersistenceFailurePropagates(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.failing = true

	_, err := svc.AssessSuicide(context.Background(), uuid.New(), uuid.New(), uuid.New(), baselineSuicideResponses())
	if err == nil {
		t.Fatal("a failed write must surface as an error, never be swallowed")
	}
}

func TestService_AggregatePersistsComprehensive(t *testing.T) {
	svc, _, comprehensive := newTestService()
	suicide := highSuicideAssessment(t)
	patientID := uuid.New()

	a, err := svc.Aggregate(context.Background(), AggregateInput{
		PatientID:  patientID,
		SessionID:  uuid.New(),
		AssessorID: uuid.New(),
		Suicide:    suicide,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := comprehensive.records[a.ID]; !ok {
		t.Error("comprehensive assessment was not persisted")
	}

	latest, err := svc.LatestComprehensiveByPatient(context.Background(), patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest == nil || latest.ID != a.ID {
		t.Error("latest read must see the just-saved assessment")
	}
}
