// Package types provides type definitions for the resume data model shared
// across the tailoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Bullet represents a single resume bullet point with tailoring metadata.
//
// RelevanceScore and RelevanceReason describe the bullet's current Content
// against the active job description. They are a claim about specific text:
// any content change invalidates them.
type Bullet struct {
	ID              string `json:"id"`
	Content         string `json:"content"`
	IsVisible       bool   `json:"isVisible"`
	IsLocked        bool   `json:"isLocked"`
	RelevanceScore  *int   `json:"relevanceScore,omitempty"`
	RelevanceReason string `json:"relevanceReason,omitempty"`
}

// ClearScore unsets the relevance score and reason.
func (b *Bullet) ClearScore() {
	b.RelevanceScore = nil
	b.RelevanceReason = ""
}

// SetScore stamps a relevance score and reason onto the bullet.
func (b *Bullet) SetScore(score int, reason string) {
	b.RelevanceScore = &score
	b.RelevanceReason = reason
}

// Clone returns an independent deep copy of the bullet.
func (b *Bullet) Clone() Bullet {
	out := *b
	if b.RelevanceScore != nil {
		score := *b.RelevanceScore
		out.RelevanceScore = &score
	}
	return out
}

// Experience represents one work history entry with an ordered bullet list.
// Bullet order is display order unless the caller re-sorts for scoring.
type Experience struct {
	ID        string   `json:"id"`
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	Location  string   `json:"location"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Bullets   []Bullet `json:"bullets"`
}

// Clone returns an independent deep copy of the experience.
func (e *Experience) Clone() Experience {
	out := *e
	out.Bullets = make([]Bullet, len(e.Bullets))
	for i := range e.Bullets {
		out.Bullets[i] = e.Bullets[i].Clone()
	}
	return out
}

// Profile represents a resume. The same shape serves both the Master Profile
// (canonical, persisted) and the Tailored Profile (per-job working fork);
// identity and lifecycle differ, not structure.
type Profile struct {
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	LinkedIn    string       `json:"linkedin,omitempty"`
	Summary     string       `json:"summary"`
	Experiences []Experience `json:"experiences"`
}

// Clone returns a fully independent deep copy of the profile. Mutating the
// clone never affects the original; this is the only sanctioned way to fork
// Master into Tailored or to freeze a snapshot.
func (p *Profile) Clone() *Profile {
	out := *p
	out.Experiences = make([]Experience, len(p.Experiences))
	for i := range p.Experiences {
		out.Experiences[i] = p.Experiences[i].Clone()
	}
	return &out
}

// FindExperience returns the experience with the given id, or nil.
func (p *Profile) FindExperience(id string) *Experience {
	for i := range p.Experiences {
		if p.Experiences[i].ID == id {
			return &p.Experiences[i]
		}
	}
	return nil
}

// FindBullet returns the bullet with the given id and its parent experience,
// or nil, nil when absent.
func (p *Profile) FindBullet(bulletID string) (*Experience, *Bullet) {
	for i := range p.Experiences {
		exp := &p.Experiences[i]
		for j := range exp.Bullets {
			if exp.Bullets[j].ID == bulletID {
				return exp, &exp.Bullets[j]
			}
		}
	}
	return nil, nil
}

// BulletRef is a flattened reference to a bullet used for batch operations.
type BulletRef struct {
	ExperienceID string `json:"-"`
	ID           string `json:"id"`
	Content      string `json:"content"`
}

// FlattenBullets returns every bullet across every experience as a flat list,
// preserving experience order then bullet order.
func (p *Profile) FlattenBullets() []BulletRef {
	var refs []BulletRef
	for i := range p.Experiences {
		exp := &p.Experiences[i]
		for j := range exp.Bullets {
			refs = append(refs, BulletRef{
				ExperienceID: exp.ID,
				ID:           exp.Bullets[j].ID,
				Content:      exp.Bullets[j].Content,
			})
		}
	}
	return refs
}
