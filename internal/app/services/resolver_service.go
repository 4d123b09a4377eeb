package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/oakmere/senreg/internal/app/models"
)

// grantSource yields the category-derived needs of a pupil, one row per
// (need, granting category) pair.
type grantSource interface {
	GrantedNeeds(ctx context.Context, pupilID int64) ([]models.NeedGrant, error)
}

// overrideSource yields the override rows of a pupil and the full need rows
// behind its addition overrides.
type overrideSource interface {
	ListByPupil(ctx context.Context, pupilID int64) ([]models.PupilNeedOverride, error)
	AddedNeeds(ctx context.Context, pupilID int64) ([]models.Need, error)
}

// NeedsResolverService computes the effective need set of a pupil: the union
// of category-derived needs and addition overrides, minus removal overrides.
// Every call recomputes from current data; nothing is cached.
type NeedsResolverService struct {
	grants    grantSource
	overrides overrideSource
}

// NewNeedsResolverService creates a new effective needs resolver
func NewNeedsResolverService(grants grantSource, overrides overrideSource) *NeedsResolverService {
	return &NeedsResolverService{
		grants:    grants,
		overrides: overrides,
	}
}

// ResolveEffectiveNeeds returns the deduplicated set of needs in effect for a
// pupil, each annotated with its provenance, ordered by need name
// (case-insensitive). An unknown pupil yields an empty result, not an error;
// validating pupil existence is the caller's job.
//
// Rules:
//   - a removal override excludes the need even when a category grants it
//   - an addition override includes the need even with no categories at all
//   - a need both category-derived and manually added appears once, with the
//     category names as provenance (the more informative source)
//   - stale conflicting override rows for one (pupil, need) pair resolve
//     deterministically: any removal row wins
func (s *NeedsResolverService) ResolveEffectiveNeeds(ctx context.Context, pupilID int64) ([]models.EffectiveNeed, error) {
	grants, err := s.grants.GrantedNeeds(ctx, pupilID)
	if err != nil {
		return nil, fmt.Errorf("error loading category-derived needs: %w", err)
	}

	overrides, err := s.overrides.ListByPupil(ctx, pupilID)
	if err != nil {
		return nil, fmt.Errorf("error loading need overrides: %w", err)
	}

	added, err := s.overrides.AddedNeeds(ctx, pupilID)
	if err != nil {
		return nil, fmt.Errorf("error loading added needs: %w", err)
	}

	// Fold grant rows into one entry per need, retaining every contributing
	// category name.
	type derived struct {
		need       models.Need
		categories []string
	}
	byNeed := make(map[int64]*derived)
	for _, grant := range grants {
		entry, ok := byNeed[grant.ID]
		if !ok {
			entry = &derived{need: grant.Need}
			byNeed[grant.ID] = entry
		}
		if !containsString(entry.categories, grant.CategoryName) {
			entry.categories = append(entry.categories, grant.CategoryName)
		}
	}

	removed := make(map[int64]bool)
	for _, override := range overrides {
		if !override.IsAdded {
			removed[override.NeedID] = true
		}
	}

	var result []models.EffectiveNeed
	for _, entry := range byNeed {
		if removed[entry.need.ID] {
			continue
		}
		sort.Strings(entry.categories)
		result = append(result, models.EffectiveNeed{
			NeedID:           entry.need.ID,
			Name:             entry.need.Name,
			Description:      entry.need.Description,
			ShortDescription: entry.need.ShortDescription,
			Sources:          strings.Join(entry.categories, ", "),
		})
	}

	seen := make(map[int64]bool)
	for _, need := range added {
		if removed[need.ID] || seen[need.ID] {
			continue
		}
		seen[need.ID] = true
		// Redundant additions stay hidden behind the category provenance
		if _, ok := byNeed[need.ID]; ok {
			continue
		}
		result = append(result, models.EffectiveNeed{
			NeedID:           need.ID,
			Name:             need.Name,
			Description:      need.Description,
			ShortDescription: need.ShortDescription,
			Sources:          models.IndividualAssignmentSource,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		ni, nj := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if ni != nj {
			return ni < nj
		}
		return result[i].NeedID < result[j].NeedID
	})

	return result, nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
