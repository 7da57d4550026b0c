package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/opencampus/doctrack/internal/model"
	"github.com/opencampus/doctrack/internal/workflow"
)

// ReportService aggregates the document and history tables into the
// administrative analytics report.
type ReportService interface {
	GetAdminReportsAnalytics(year int) (*AnalyticsReport, error)
}

// AnalyticsReport is the full yearly analytics payload.
type AnalyticsReport struct {
	Year                  int                      `json:"year"`
	DocumentVolume        []*MonthVolume           `json:"documentVolume"`
	Summary               *ReportSummary           `json:"summary"`
	DepartmentPerformance []*DepartmentPerformance `json:"departmentPerformance"`
	StageBottlenecks      []*StageBottleneck       `json:"stageBottlenecks"`
}

// MonthVolume is one monthly received/processed bucket.
type MonthVolume struct {
	Month     string `json:"month"`
	Received  int    `json:"received"`
	Processed int    `json:"processed"`
}

// ReportSummary holds the year totals.
type ReportSummary struct {
	TotalReceived        int     `json:"totalReceived"`
	TotalProcessed       int     `json:"totalProcessed"`
	Pending              int     `json:"pending"`
	Approved             int     `json:"approved"`
	Rejected             int     `json:"rejected"`
	AvgTurnaroundHours   float64 `json:"avgTurnaroundHours"`
	MonthOverMonthChange float64 `json:"monthOverMonthChange"`
}

// DepartmentPerformance is one department's completion figures.
type DepartmentPerformance struct {
	Department     string  `json:"department"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completionRate"`
}

// StageBottleneck ranks a workflow stage by how long pending
// documents have been sitting there.
type StageBottleneck struct {
	Stage        string  `json:"stage"`
	Count        int     `json:"count"`
	AvgHours     float64 `json:"avgHours"`
	DelayedCount int     `json:"delayedCount"`
}

// reportService implements ReportService.
type reportService struct {
	db             *gorm.DB
	delayThreshold time.Duration

	// now is swapped in tests for deterministic output
	now func() time.Time
}

// NewReportService creates a report service. delayThresholdHours
// marks how long a pending document may sit before counting as
// delayed; zero falls back to 48 hours.
func NewReportService(db *gorm.DB, delayThresholdHours int) ReportService {
	if delayThresholdHours <= 0 {
		delayThresholdHours = 48
	}
	return &reportService{
		db:             db,
		delayThreshold: time.Duration(delayThresholdHours) * time.Hour,
		now:            time.Now,
	}
}

// GetAdminReportsAnalytics builds the analytics report for one
// calendar year. Zero selects the current year. Output ordering is
// deterministic so repeated calls without intervening writes yield
// identical payloads.
func (s *reportService) GetAdminReportsAnalytics(year int) (*AnalyticsReport, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	var docs []*model.DocumentModel
	err := s.db.Preload("SubmittedBy.Designation").
		Where("created_at >= ? AND created_at < ?", yearStart, yearEnd).
		Order("created_at ASC").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load documents for %d: %w", year, err)
	}

	latestStages, err := s.latestStages(docs)
	if err != nil {
		return nil, err
	}

	report := &AnalyticsReport{
		Year:                  year,
		DocumentVolume:        make([]*MonthVolume, 12),
		Summary:               &ReportSummary{},
		DepartmentPerformance: []*DepartmentPerformance{},
		StageBottlenecks:      []*StageBottleneck{},
	}
	for i := 0; i < 12; i++ {
		report.DocumentVolume[i] = &MonthVolume{Month: time.Month(i + 1).String()}
	}

	type deptAgg struct {
		total     int
		completed int
	}
	type stageAgg struct {
		count   int
		hours   float64
		delayed int
	}
	departments := make(map[string]*deptAgg)
	stages := make(map[string]*stageAgg)

	var turnaroundHours float64

	for _, doc := range docs {
		month := int(doc.CreatedAt.Month()) - 1
		processed := doc.Status != string(workflow.StatusPending)

		report.DocumentVolume[month].Received++
		if processed {
			report.DocumentVolume[month].Processed++
		}

		report.Summary.TotalReceived++
		switch doc.Status {
		case string(workflow.StatusApproved):
			report.Summary.Approved++
		case string(workflow.StatusRejected):
			report.Summary.Rejected++
		default:
			report.Summary.Pending++
		}
		if processed {
			report.Summary.TotalProcessed++
			turnaroundHours += doc.UpdatedAt.Sub(doc.CreatedAt).Hours()
		}

		dept := "Unassigned"
		if doc.SubmittedBy != nil && doc.SubmittedBy.Designation != nil {
			dept = doc.SubmittedBy.Designation.Name
		}
		agg, ok := departments[dept]
		if !ok {
			agg = &deptAgg{}
			departments[dept] = agg
		}
		agg.total++
		if processed {
			agg.completed++
		}

		// bottlenecks only track documents still waiting on a stage
		if !processed {
			stage := latestStages[doc.ID]
			sa, ok := stages[stage]
			if !ok {
				sa = &stageAgg{}
				stages[stage] = sa
			}
			sa.count++
			sa.hours += now.Sub(doc.UpdatedAt).Hours()
			if now.Sub(doc.CreatedAt) > s.delayThreshold {
				sa.delayed++
			}
		}
	}

	if report.Summary.TotalProcessed > 0 {
		report.Summary.AvgTurnaroundHours = round2(turnaroundHours / float64(report.Summary.TotalProcessed))
	}
	report.Summary.MonthOverMonthChange = s.monthOverMonth(report.DocumentVolume, year, now)

	for name, agg := range departments {
		perf := &DepartmentPerformance{
			Department: name,
			Total:      agg.total,
			Completed:  agg.completed,
		}
		if agg.total > 0 {
			perf.CompletionRate = round1(float64(agg.completed) / float64(agg.total) * 100)
		}
		report.DepartmentPerformance = append(report.DepartmentPerformance, perf)
	}
	sort.Slice(report.DepartmentPerformance, func(i, j int) bool {
		a, b := report.DepartmentPerformance[i], report.DepartmentPerformance[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Department < b.Department
	})
	if len(report.DepartmentPerformance) > 8 {
		report.DepartmentPerformance = report.DepartmentPerformance[:8]
	}

	for name, agg := range stages {
		b := &StageBottleneck{
			Stage:        name,
			Count:        agg.count,
			DelayedCount: agg.delayed,
		}
		if agg.count > 0 {
			b.AvgHours = round2(agg.hours / float64(agg.count))
		}
		report.StageBottlenecks = append(report.StageBottlenecks, b)
	}
	sort.Slice(report.StageBottlenecks, func(i, j int) bool {
		a, b := report.StageBottlenecks[i], report.StageBottlenecks[j]
		if a.AvgHours != b.AvgHours {
			return a.AvgHours > b.AvgHours
		}
		return a.Stage < b.Stage
	})
	if len(report.StageBottlenecks) > 5 {
		report.StageBottlenecks = report.StageBottlenecks[:5]
	}

	return report, nil
}

// latestStages maps each document to the stage of its single most
// recent history row, defaulting to the origin stage when the ledger
// is empty.
func (s *reportService) latestStages(docs []*model.DocumentModel) (map[string]string, error) {
	stages := make(map[string]string, len(docs))
	if len(docs) == 0 {
		return stages, nil
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
		stages[doc.ID] = string(workflow.StageInstructor)
	}

	var entries []*model.DocumentHistoryModel
	err := s.db.Where("document_id IN ?", ids).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	// ascending order means the last write per document wins
	for _, entry := range entries {
		stages[entry.DocumentID] = entry.Stage
	}
	return stages, nil
}

// monthOverMonth computes the processed-volume change between the
// reference month and the one before it. The reference month is the
// current month for the current year, December otherwise. A zero
// previous month yields 100 when the current month processed anything
// and 0 when it did not.
func (s *reportService) monthOverMonth(volume []*MonthVolume, year int, now time.Time) float64 {
	current := 12
	if year == now.Year() {
		current = int(now.Month())
	}

	currentProcessed := volume[current-1].Processed
	previousProcessed := 0
	if current > 1 {
		previousProcessed = volume[current-2].Processed
	}

	if previousProcessed == 0 {
		if currentProcessed > 0 {
			return 100
		}
		return 0
	}
	change := float64(currentProcessed-previousProcessed) / float64(previousProcessed) * 100
	return round1(change)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
