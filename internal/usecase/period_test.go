package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/repository"
)

type mockPeriodRepository struct {
	createErr      error
	createCalls    int
	createdPeriod  domain.Period
	createdMax     int
	listResult     []domain.Period
	listErr        error
	getResult      *domain.Period
	getErr         error
	getLastID      string
	getLastUserID  string
	deleteErr      error
	deleteCalls    int
	deleteLastID   string
	deleteLastUser string
}

func (m *mockPeriodRepository) Create(_ context.Context, period domain.Period, maxOwned int) error {
	m.createCalls++
	m.createdPeriod = period
	m.createdMax = maxOwned
	return m.createErr
}

func (m *mockPeriodRepository) ListByUser(_ context.Context, userID string) ([]domain.Period, error) {
	return m.listResult, m.listErr
}

func (m *mockPeriodRepository) GetByID(_ context.Context, id, userID string) (*domain.Period, error) {
	m.getLastID = id
	m.getLastUserID = userID
	if m.getResult != nil {
		copy := *m.getResult
		return &copy, m.getErr
	}
	return nil, m.getErr
}

func (m *mockPeriodRepository) Delete(_ context.Context, id, userID string) error {
	m.deleteCalls++
	m.deleteLastID = id
	m.deleteLastUser = userID
	return m.deleteErr
}

func TestPeriodService_Create(t *testing.T) {
	repo := &mockPeriodRepository{}
	service := NewPeriodService(repo)

	period, err := service.Create(context.Background(), "user-1", CreatePeriodInput{
		Title:     "  Sprint 12  ",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if repo.createCalls != 1 {
		t.Fatalf("expected Create to be called once, got %d", repo.createCalls)
	}
	if repo.createdMax != domain.MaxPeriodsPerUser {
		t.Fatalf("expected max %d, got %d", domain.MaxPeriodsPerUser, repo.createdMax)
	}
	if period.Title != "Sprint 12" {
		t.Fatalf("expected trimmed title, got %q", period.Title)
	}
	if period.UserID != "user-1" {
		t.Fatalf("expected owner user-1, got %s", period.UserID)
	}
	if period.ID == "" {
		t.Fatalf("expected generated period ID")
	}
	if got := period.StartDate.Format("2006-01-02"); got != "2025-03-01" {
		t.Fatalf("expected start date 2025-03-01, got %s", got)
	}
	if got := period.EndDate.Format("2006-01-02"); got != "2025-03-14" {
		t.Fatalf("expected end date 2025-03-14, got %s", got)
	}
}

func TestPeriodService_Create_SameDayAllowed(t *testing.T) {
	service := NewPeriodService(&mockPeriodRepository{})

	if _, err := service.Create(context.Background(), "user-1", CreatePeriodInput{
		Title:     "One day",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-01",
	}); err != nil {
		t.Fatalf("expected same-day period to be accepted, got %v", err)
	}
}

func TestPeriodService_Create_ValidationErrors(t *testing.T) {
	cases := []struct {
		name  string
		input CreatePeriodInput
	}{
		{"blank title", CreatePeriodInput{Title: "   ", StartDate: "2025-03-01", EndDate: "2025-03-14"}},
		{"missing start date", CreatePeriodInput{Title: "Sprint", EndDate: "2025-03-14"}},
		{"missing end date", CreatePeriodInput{Title: "Sprint", StartDate: "2025-03-01"}},
		{"malformed start date", CreatePeriodInput{Title: "Sprint", StartDate: "03/01/2025", EndDate: "2025-03-14"}},
		{"malformed end date", CreatePeriodInput{Title: "Sprint", StartDate: "2025-03-01", EndDate: "next week"}},
		{"end before start", CreatePeriodInput{Title: "Sprint", StartDate: "2025-03-14", EndDate: "2025-03-01"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockPeriodRepository{}
			service := NewPeriodService(repo)

			if _, err := service.Create(context.Background(), "user-1", tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if repo.createCalls != 0 {
				t.Fatalf("expected repository not to be touched")
			}
		})
	}
}

func TestPeriodService_Create_LimitReached(t *testing.T) {
	repo := &mockPeriodRepository{createErr: repository.ErrLimitReached}
	service := NewPeriodService(repo)

	if _, err := service.Create(context.Background(), "user-1", CreatePeriodInput{
		Title:     "Fifth",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-14",
	}); !errors.Is(err, ErrPeriodLimitReached) {
		t.Fatalf("expected ErrPeriodLimitReached, got %v", err)
	}
}

func TestPeriodService_Get_NotFound(t *testing.T) {
	repo := &mockPeriodRepository{getErr: repository.ErrNotFound}
	service := NewPeriodService(repo)

	if _, err := service.Get(context.Background(), "user-1", "period-1"); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}
	if repo.getLastID != "period-1" || repo.getLastUserID != "user-1" {
		t.Fatalf("expected ownership-scoped lookup, got id=%s user=%s", repo.getLastID, repo.getLastUserID)
	}
}

func TestPeriodService_List(t *testing.T) {
	now := time.Now().UTC()
	repo := &mockPeriodRepository{listResult: []domain.Period{
		{ID: "p1", UserID: "user-1", Title: "Q1", CreatedAt: now},
		{ID: "p2", UserID: "user-1", Title: "Q2", CreatedAt: now},
	}}
	service := NewPeriodService(repo)

	periods, err := service.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}
}

func TestPeriodService_Delete(t *testing.T) {
	repo := &mockPeriodRepository{}
	service := NewPeriodService(repo)

	if err := service.Delete(context.Background(), "user-1", "period-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if repo.deleteCalls != 1 || repo.deleteLastID != "period-1" || repo.deleteLastUser != "user-1" {
		t.Fatalf("expected scoped delete call, got calls=%d id=%s user=%s", repo.deleteCalls, repo.deleteLastID, repo.deleteLastUser)
	}
}

func TestPeriodService_Delete_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		repoErr error
		want    error
	}{
		{"not found", repository.ErrNotFound, ErrPeriodNotFound},
		{"still referenced", repository.ErrPeriodInUse, ErrPeriodHasTasks},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := NewPeriodService(&mockPeriodRepository{deleteErr: tc.repoErr})

			if err := service.Delete(context.Background(), "user-1", "period-1"); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
