package offer

import (
	"fmt"
	"strings"
)

// complexityTier holds the base commercial figures for a complexity
// tier, in Chilean pesos.
type complexityTier struct {
	BaseCost int
	Timeline string
}

var complexityTiers = map[Complexity]complexityTier{
	ComplexityHigh:   {BaseCost: 80000000, Timeline: "8 meses"},
	ComplexityMedium: {BaseCost: 45000000, Timeline: "5 meses"},
	ComplexityLow:    {BaseCost: 25000000, Timeline: "3 meses"},
}

// sectorAdjustment scales the base figures for sectors with known
// regulatory or domain overhead. Matching is by substring on the
// lowercased sector; first match wins.
type sectorAdjustment struct {
	Keyword    string
	CostFactor float64
	Timeline   string
}

var sectorAdjustments = []sectorAdjustment{
	{Keyword: "bancario", CostFactor: 1.3, Timeline: "6 meses"},
	{Keyword: "educativo", CostFactor: 0.9, Timeline: "4 meses"},
	{Keyword: "salud", CostFactor: 1.2, Timeline: "7 meses"},
}

const defaultProjectDate = "2025"

// BaseParameters derives the deterministic project parameters from the
// analysis: tier base figures adjusted by sector. The project name is
// filled with the template fallback; the collaborator stage may
// replace it.
func BaseParameters(analysis ProjectAnalysis) ProjectParameters {
	tier, ok := complexityTiers[analysis.Complexity]
	if !ok {
		tier = complexityTiers[ComplexityMedium]
	}
	cost := tier.BaseCost
	timeline := tier.Timeline

	sector := strings.ToLower(analysis.Sector)
	for _, adj := range sectorAdjustments {
		if strings.Contains(sector, adj.Keyword) {
			cost = int(float64(cost) * adj.CostFactor)
			timeline = adj.Timeline
			break
		}
	}

	return ProjectParameters{
		ProjectName: FallbackProjectName(analysis),
		Client:      analysis.ClientName,
		Date:        defaultProjectDate,
		TotalCost:   cost,
		Timeline:    timeline,
	}
}

// FallbackProjectName is the deterministic project name used when the
// collaborator cannot propose one.
func FallbackProjectName(analysis ProjectAnalysis) string {
	return fmt.Sprintf("Proyecto %s - %s", analysis.Sector, analysis.ClientName)
}

// formatCLP renders an amount with dot thousand separators, the
// convention for Chilean pesos.
func formatCLP(amount int) string {
	s := fmt.Sprintf("%d", amount)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}
