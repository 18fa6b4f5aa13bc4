package services

import (
	"sort"

	"profix/internal/models"
)

// Агрегаты админской аналитики. Чистые функции над уже загруженными
// списками: никакого I/O, пересчёт на каждый запрос.

const (
	trendWindow      = 6
	popularTopN      = 6
	unspecifiedLabel = "Unspecified"
)

type TrendPoint struct {
	Month    string `json:"month"`
	Requests int    `json:"requests"`
}

type StatusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type WorkloadPoint struct {
	Name     string `json:"name"`
	Projects int    `json:"projects"`
}

type PopularService struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type AnalyticsSummary struct {
	Trend              []TrendPoint     `json:"trend"`
	StatusDistribution []StatusSlice    `json:"status_distribution"`
	Workload           []WorkloadPoint  `json:"workload"`
	PopularServices    []PopularService `json:"popular_services"`
}

// RequestTrend — счётчик заявок по корзинам "<Mon> <Year>" даты создания.
// Порядок корзин — порядок первого появления во входном списке; остаются
// последние шесть встреченных корзин (не шесть хронологически последних:
// они совпадают, только если вход отсортирован по дате).
func RequestTrend(requests []*models.ServiceRequest) []TrendPoint {
	counts := map[string]int{}
	var order []string
	for _, sr := range requests {
		key := sr.CreatedAt.Format("Jan 2006")
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}
	if len(order) > trendWindow {
		order = order[len(order)-trendWindow:]
	}
	points := make([]TrendPoint, 0, len(order))
	for _, key := range order {
		points = append(points, TrendPoint{Month: key, Requests: counts[key]})
	}
	return points
}

// StatusDistribution — счётчик по человекочитаемой подписи статуса,
// в порядке первого появления.
func StatusDistribution(requests []*models.ServiceRequest) []StatusSlice {
	counts := map[string]int{}
	var order []string
	for _, sr := range requests {
		label := HumanizeStatus(sr.Status)
		if _, ok := counts[label]; !ok {
			order = append(order, label)
		}
		counts[label]++
	}
	slices := make([]StatusSlice, 0, len(order))
	for _, label := range order {
		slices = append(slices, StatusSlice{Name: label, Value: counts[label]})
	}
	return slices
}

// PMWorkload — заявок на каждого PM; все известные PM входят с нулём,
// чтобы простаивающие были видны.
func PMWorkload(requests []*models.ServiceRequest, pms []*models.ProjectManager) []WorkloadPoint {
	points := make([]WorkloadPoint, 0, len(pms))
	index := make(map[int]int, len(pms))
	for i, pm := range pms {
		index[pm.ID] = i
		points = append(points, WorkloadPoint{Name: pm.Name, Projects: 0})
	}
	for _, sr := range requests {
		if sr.AssignedPMID == nil {
			continue
		}
		if i, ok := index[*sr.AssignedPMID]; ok {
			points[i].Projects++
		}
	}
	return points
}

// PopularServices — счётчик по service_type (пустой тип — "Unspecified"),
// по убыванию, максимум шесть строк. При равенстве сохраняется порядок
// первого появления.
func PopularServices(requests []*models.ServiceRequest) []PopularService {
	counts := map[string]int{}
	var order []string
	for _, sr := range requests {
		name := sr.ServiceType
		if name == "" {
			name = unspecifiedLabel
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}
	popular := make([]PopularService, 0, len(order))
	for _, name := range order {
		popular = append(popular, PopularService{Name: name, Count: counts[name]})
	}
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].Count > popular[j].Count
	})
	if len(popular) > popularTopN {
		popular = popular[:popularTopN]
	}
	return popular
}

func BuildSummary(requests []*models.ServiceRequest, pms []*models.ProjectManager) AnalyticsSummary {
	return AnalyticsSummary{
		Trend:              RequestTrend(requests),
		StatusDistribution: StatusDistribution(requests),
		Workload:           PMWorkload(requests, pms),
		PopularServices:    PopularServices(requests),
	}
}

// AnalyticsService — тонкая обвязка: достаёт полные списки и строит сводку.
type RequestLister interface {
	ListAll() ([]*models.ServiceRequest, error)
}

type PMLister interface {
	ListAll() ([]*models.ProjectManager, error)
}

type AnalyticsService struct {
	Requests RequestLister
	PMs      PMLister
}

func NewAnalyticsService(requests RequestLister, pms PMLister) *AnalyticsService {
	return &AnalyticsService{Requests: requests, PMs: pms}
}

func (s *AnalyticsService) GetSummary() (AnalyticsSummary, error) {
	requests, err := s.Requests.ListAll()
	if err != nil {
		return AnalyticsSummary{}, err
	}
	pms, err := s.PMs.ListAll()
	if err != nil {
		return AnalyticsSummary{}, err
	}
	return BuildSummary(requests, pms), nil
}
