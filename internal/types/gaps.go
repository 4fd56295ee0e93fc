//nolint:revive // types is a standard Go package name pattern
package types

// GapAnalysisResult holds the provider's verdict on job-required skills:
// those missing from the profile and those already present. Each analysis
// replaces the previous result wholesale; filling a gap mutates the cached
// result locally rather than re-fetching.
type GapAnalysisResult struct {
	Missing []string `json:"missingSkills"`
	Present []string `json:"presentSkills"`
}

// MarkFilled moves skill from the missing list to the present list.
// A skill not in the missing list is still appended to present.
func (g *GapAnalysisResult) MarkFilled(skill string) {
	filtered := g.Missing[:0]
	for _, s := range g.Missing {
		if s != skill {
			filtered = append(filtered, s)
		}
	}
	g.Missing = filtered
	g.Present = append(g.Present, skill)
}

// Clone returns an independent copy of the result.
func (g *GapAnalysisResult) Clone() *GapAnalysisResult {
	return &GapAnalysisResult{
		Missing: append([]string(nil), g.Missing...),
		Present: append([]string(nil), g.Present...),
	}
}
