package models

// Need represents a support requirement a pupil may have
type Need struct {
	ID               int64  `json:"need_id"`
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
}

// NeedGrant is one row of the category-derived needs query: a need together
// with the name of one assigned category that grants it. A need reachable
// through several categories produces several grants.
type NeedGrant struct {
	Need
	CategoryName string `json:"category_name"`
}

// IndividualAssignmentSource is the provenance marker for a need that applies
// only through an addition override, with no granting category.
const IndividualAssignmentSource = "Individual assignment"

// EffectiveNeed is one entry of a pupil's resolved need set. Sources is either
// a comma-joined list of granting category names or IndividualAssignmentSource.
type EffectiveNeed struct {
	NeedID           int64  `json:"need_id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	Sources          string `json:"sources"`
}
