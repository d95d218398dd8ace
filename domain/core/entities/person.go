package entities

import (
	"lineage-backend/domain/core/valueobjects"
	pkgerrors "lineage-backend/pkg/errors"
)

// Person is an entity representing one individual in the family graph.
// Relationships are stored as references by CrID, not as owning pointers;
// the graph provider owns all Person instances and this core only reads
// them. A referenced CrID may be dangling on partially imported graphs, so
// consumers must resolve references through the tree and skip misses.
type Person struct {
	// Private fields ensure encapsulation
	crID      valueobjects.CrID
	name      string
	fatherID  valueobjects.CrID
	motherID  valueobjects.CrID
	spouseIDs []valueobjects.CrID
	childIDs  []valueobjects.CrID
}

// NewPerson creates a person with the minimum required identity
func NewPerson(crID valueobjects.CrID, name string) (*Person, error) {
	if crID.IsZero() {
		return nil, pkgerrors.NewValidationError("crId cannot be empty")
	}

	return &Person{
		crID:      crID,
		name:      name,
		spouseIDs: []valueobjects.CrID{},
		childIDs:  []valueobjects.CrID{},
	}, nil
}

// ID returns the person's stable identifier
func (p *Person) ID() valueobjects.CrID {
	return p.crID
}

// Name returns the display name
func (p *Person) Name() string {
	return p.name
}

// Rename updates the display name; the CrID never changes
func (p *Person) Rename(name string) {
	p.name = name
}

// FatherID returns the father reference, zero when unknown
func (p *Person) FatherID() valueobjects.CrID {
	return p.fatherID
}

// MotherID returns the mother reference, zero when unknown
func (p *Person) MotherID() valueobjects.CrID {
	return p.motherID
}

// SetFather records the father reference. At most one father is kept;
// setting again overwrites.
func (p *Person) SetFather(id valueobjects.CrID) {
	p.fatherID = id
}

// SetMother records the mother reference
func (p *Person) SetMother(id valueobjects.CrID) {
	p.motherID = id
}

// HasFather reports whether a father reference is present
func (p *Person) HasFather() bool {
	return !p.fatherID.IsZero()
}

// HasMother reports whether a mother reference is present
func (p *Person) HasMother() bool {
	return !p.motherID.IsZero()
}

// AddSpouse records a spouse reference, ignoring duplicates
func (p *Person) AddSpouse(id valueobjects.CrID) {
	if id.IsZero() || id.Equals(p.crID) {
		return
	}
	for _, existing := range p.spouseIDs {
		if existing.Equals(id) {
			return
		}
	}
	p.spouseIDs = append(p.spouseIDs, id)
}

// AddChild records a child reference, ignoring duplicates
func (p *Person) AddChild(id valueobjects.CrID) {
	if id.IsZero() || id.Equals(p.crID) {
		return
	}
	for _, existing := range p.childIDs {
		if existing.Equals(id) {
			return
		}
	}
	p.childIDs = append(p.childIDs, id)
}

// SpouseIDs returns all spouse references in insertion order
func (p *Person) SpouseIDs() []valueobjects.CrID {
	// Return a copy to maintain encapsulation
	spouses := make([]valueobjects.CrID, len(p.spouseIDs))
	copy(spouses, p.spouseIDs)
	return spouses
}

// ChildIDs returns all child references in insertion order
func (p *Person) ChildIDs() []valueobjects.CrID {
	// Return a copy to maintain encapsulation
	children := make([]valueobjects.CrID, len(p.childIDs))
	copy(children, p.childIDs)
	return children
}

// ParentIDs returns the non-zero parent references, father first
func (p *Person) ParentIDs() []valueobjects.CrID {
	parents := make([]valueobjects.CrID, 0, 2)
	if !p.fatherID.IsZero() {
		parents = append(parents, p.fatherID)
	}
	if !p.motherID.IsZero() {
		parents = append(parents, p.motherID)
	}
	return parents
}
