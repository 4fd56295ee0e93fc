// Package parsing provides sanitization of imported resume data and local
// text extraction from uploaded documents.
package parsing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Placeholders for fields a parsed resume failed to supply.
const (
	UnknownCompany = "Unknown Company"
	UnknownRole    = "Unknown Role"
)

// SanitizeProfile repairs a partial profile parsed from an external document
// so it can be merged safely: missing ids are generated, missing bullet
// arrays become empty, visibility defaults to true, lock state to false, and
// missing company/role get placeholders. Parsed documents never carry
// relevance scores; any the provider invented are dropped.
func SanitizeProfile(p *types.Profile) {
	if p.Experiences == nil {
		p.Experiences = []types.Experience{}
	}
	for i := range p.Experiences {
		exp := &p.Experiences[i]
		if exp.ID == "" {
			exp.ID = fmt.Sprintf("exp-%s", uuid.NewString())
		}
		if exp.Company == "" {
			exp.Company = UnknownCompany
		}
		if exp.Role == "" {
			exp.Role = UnknownRole
		}
		if exp.Bullets == nil {
			exp.Bullets = []types.Bullet{}
		}
		for j := range exp.Bullets {
			b := &exp.Bullets[j]
			if b.ID == "" {
				b.ID = fmt.Sprintf("b-%s", uuid.NewString())
			}
			b.IsVisible = true
			b.IsLocked = false
			b.ClearScore()
		}
	}
	dedupeIDs(p)
}

// dedupeIDs regenerates any experience or bullet id that collides with an
// earlier one. Ids must be unique within a profile; parsed documents
// sometimes repeat them.
func dedupeIDs(p *types.Profile) {
	seen := make(map[string]bool)
	for i := range p.Experiences {
		exp := &p.Experiences[i]
		if seen[exp.ID] {
			exp.ID = fmt.Sprintf("exp-%s", uuid.NewString())
		}
		seen[exp.ID] = true
		for j := range exp.Bullets {
			b := &exp.Bullets[j]
			if seen[b.ID] {
				b.ID = fmt.Sprintf("b-%s", uuid.NewString())
			}
			seen[b.ID] = true
		}
	}
}
