package reports

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/mmdatafocus/factory_backend/models"
)

type QualityMetrics struct {
	TotalChecks int           `json:"totalChecks"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	PassRate    float64       `json:"passRate"`
	FailRate    float64       `json:"failRate"`
	TopDefects  []DefectCount `json:"topDefects"`
}

type DefectCount struct {
	Defect     string  `json:"defect"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GetQualityMetrics summarizes quality checks of the trailing 3 months.
// A check passes when it is COMPLETED with no recorded defects.
func (d *Dashboard) GetQualityMetrics(ctx context.Context) (metrics *QualityMetrics, err error) {
	ctx, done := d.startReport(ctx, "qualityMetrics")
	defer func() { done(err) }()

	checks, err := d.source.QualityChecks(ctx, trailingMonths(d.currentTime(), 3))
	if err != nil {
		return nil, fmt.Errorf("quality metrics: %w", err)
	}

	metrics = &QualityMetrics{TotalChecks: len(checks), TopDefects: []DefectCount{}}
	tally := map[string]int{}
	for _, check := range checks {
		if check.Status == models.QualityCheckStatusCompleted && !hasDefects(check.DefectsFound) {
			metrics.Passed++
		} else {
			metrics.Failed++
		}
		for _, tag := range parseDefectTags(check.DefectsFound) {
			tally[tag]++
		}
	}
	total := int64(metrics.TotalChecks)
	metrics.PassRate = percentOfCount(int64(metrics.Passed), total)
	metrics.FailRate = percentOfCount(int64(metrics.Failed), total)

	for defect, count := range tally {
		metrics.TopDefects = append(metrics.TopDefects, DefectCount{
			Defect:     defect,
			Count:      count,
			Percentage: percentOfCount(int64(count), total),
		})
	}
	slices.SortFunc(metrics.TopDefects, func(a, b DefectCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return cmp.Compare(a.Defect, b.Defect)
	})
	metrics.TopDefects = truncate(metrics.TopDefects, topDefectCount)
	return metrics, nil
}
