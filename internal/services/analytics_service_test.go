package services

import (
	"fmt"
	"testing"
	"time"

	"profix/internal/models"
)

func reqWithStatus(status models.RequestStatus) *models.ServiceRequest {
	return &models.ServiceRequest{Status: status, CreatedAt: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func TestBuildSummaryEmptyInput(t *testing.T) {
	s := BuildSummary(nil, nil)
	if len(s.Trend) != 0 {
		t.Errorf("trend: expected empty, got %v", s.Trend)
	}
	if len(s.StatusDistribution) != 0 {
		t.Errorf("status distribution: expected empty, got %v", s.StatusDistribution)
	}
	if len(s.Workload) != 0 {
		t.Errorf("workload: expected empty, got %v", s.Workload)
	}
	if len(s.PopularServices) != 0 {
		t.Errorf("popular services: expected empty, got %v", s.PopularServices)
	}
	if s.Trend == nil || s.StatusDistribution == nil || s.Workload == nil || s.PopularServices == nil {
		t.Error("empty summary must serialize as [] not null")
	}
}

func TestStatusDistributionSingleBucket(t *testing.T) {
	requests := []*models.ServiceRequest{
		reqWithStatus(models.StatusInProgress),
		reqWithStatus(models.StatusInProgress),
		reqWithStatus(models.StatusInProgress),
	}
	got := StatusDistribution(requests)
	if len(got) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(got))
	}
	if got[0].Name != "In Progress" || got[0].Value != 3 {
		t.Errorf("expected {In Progress 3}, got %+v", got[0])
	}
}

func TestStatusDistributionFirstAppearanceOrder(t *testing.T) {
	requests := []*models.ServiceRequest{
		reqWithStatus(models.StatusPending),
		reqWithStatus(models.StatusPending),
		reqWithStatus(models.StatusCompleted),
	}
	got := StatusDistribution(requests)
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Name != "Pending" || got[0].Value != 2 {
		t.Errorf("bucket 0: expected {Pending 2}, got %+v", got[0])
	}
	if got[1].Name != "Completed" || got[1].Value != 1 {
		t.Errorf("bucket 1: expected {Completed 1}, got %+v", got[1])
	}
}

func TestRequestTrendBuckets(t *testing.T) {
	mk := func(y int, m time.Month) *models.ServiceRequest {
		return &models.ServiceRequest{CreatedAt: time.Date(y, m, 5, 0, 0, 0, 0, time.UTC)}
	}
	requests := []*models.ServiceRequest{
		mk(2026, time.January),
		mk(2026, time.February),
		mk(2026, time.January), // уже встречавшаяся корзина — без новой позиции
		mk(2026, time.March),
	}
	got := RequestTrend(requests)
	want := []TrendPoint{
		{Month: "Jan 2026", Requests: 2},
		{Month: "Feb 2026", Requests: 1},
		{Month: "Mar 2026", Requests: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestRequestTrendKeepsLastSixEncountered(t *testing.T) {
	var requests []*models.ServiceRequest
	for m := time.January; m <= time.August; m++ {
		requests = append(requests, &models.ServiceRequest{
			CreatedAt: time.Date(2026, m, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	got := RequestTrend(requests)
	if len(got) != 6 {
		t.Fatalf("expected 6 points, got %d", len(got))
	}
	if got[0].Month != "Mar 2026" || got[5].Month != "Aug 2026" {
		t.Errorf("expected Mar..Aug window, got %v", got)
	}
}

// Порядок корзин — порядок первого появления, не хронология.
func TestRequestTrendInsertionOrderNotChronological(t *testing.T) {
	requests := []*models.ServiceRequest{
		{CreatedAt: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	got := RequestTrend(requests)
	if len(got) != 2 || got[0].Month != "Mar 2026" || got[1].Month != "Jan 2026" {
		t.Errorf("expected first-seen order [Mar Jan], got %v", got)
	}
}

func TestPMWorkloadSeedsIdleManagers(t *testing.T) {
	pmID := 7
	pms := []*models.ProjectManager{
		{ID: 7, Name: "Aigerim"},
		{ID: 8, Name: "Daniyar"},
	}
	requests := []*models.ServiceRequest{
		{AssignedPMID: &pmID},
		{AssignedPMID: &pmID},
		{AssignedPMID: nil},
	}
	got := PMWorkload(requests, pms)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Name != "Aigerim" || got[0].Projects != 2 {
		t.Errorf("expected {Aigerim 2}, got %+v", got[0])
	}
	if got[1].Name != "Daniyar" || got[1].Projects != 0 {
		t.Errorf("idle pm must appear with zero projects, got %+v", got[1])
	}
}

func TestPopularServicesDefaultLabelAndTopN(t *testing.T) {
	var requests []*models.ServiceRequest
	// 7 типов с разными счётчиками + пустой тип
	for i := 0; i < 7; i++ {
		for j := 0; j <= i; j++ {
			requests = append(requests, &models.ServiceRequest{ServiceType: fmt.Sprintf("type-%d", i)})
		}
	}
	requests = append(requests, &models.ServiceRequest{ServiceType: ""})

	got := PopularServices(requests)
	if len(got) != 6 {
		t.Fatalf("expected top 6, got %d: %v", len(got), got)
	}
	if got[0].Name != "type-6" || got[0].Count != 7 {
		t.Errorf("expected {type-6 7} first, got %+v", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Errorf("expected descending counts, got %v", got)
		}
	}
	for _, p := range got {
		if p.Name == "Unspecified" {
			t.Errorf("empty type with count 1 must be cut by top-6, got %v", got)
		}
	}
}

func TestPopularServicesUnspecified(t *testing.T) {
	requests := []*models.ServiceRequest{
		{ServiceType: ""},
		{ServiceType: ""},
		{ServiceType: "plumbing"},
	}
	got := PopularServices(requests)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Name != "Unspecified" || got[0].Count != 2 {
		t.Errorf("expected {Unspecified 2} first, got %+v", got[0])
	}
}

func TestHumanizeStatus(t *testing.T) {
	cases := map[models.RequestStatus]string{
		models.StatusPending:    "Pending",
		models.StatusInProgress: "In Progress",
		models.StatusCompleted:  "Completed",
		models.StatusCancelled:  "Cancelled",
	}
	for in, want := range cases {
		if got := HumanizeStatus(in); got != want {
			t.Errorf("HumanizeStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
