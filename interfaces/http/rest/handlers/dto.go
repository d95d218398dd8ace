package handlers

import (
	"fmt"

	"lineage-backend/domain/core/aggregates"
	"lineage-backend/domain/core/entities"
	"lineage-backend/domain/core/valueobjects"
	pkgerrors "lineage-backend/pkg/errors"
)

// PersonDTO is the wire shape of one family member
type PersonDTO struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name"`
	FatherID  string   `json:"fatherId,omitempty"`
	MotherID  string   `json:"motherId,omitempty"`
	SpouseIDs []string `json:"spouseIds,omitempty"`
}

// FamilyTreeDTO is the wire shape of a family tree. Parent links on each
// person define the edge set; child links are derived.
type FamilyTreeDTO struct {
	RootID string      `json:"rootId" validate:"required"`
	People []PersonDTO `json:"people" validate:"required,min=1,dive"`
}

// ToDomain materializes the DTO into a FamilyTree aggregate. Parent and
// spouse references to people absent from the list are dropped rather
// than rejected; traversal treats them as dangling anyway.
func (dto FamilyTreeDTO) ToDomain() (*aggregates.FamilyTree, error) {
	rootID, err := valueobjects.NewCrID(dto.RootID)
	if err != nil {
		return nil, pkgerrors.NewValidationError("rootId is required")
	}

	people := make(map[valueobjects.CrID]*entities.Person, len(dto.People))
	order := make([]valueobjects.CrID, 0, len(dto.People))
	for _, p := range dto.People {
		id, err := valueobjects.NewCrID(p.ID)
		if err != nil {
			return nil, pkgerrors.NewValidationError("every person needs an id")
		}
		if _, dup := people[id]; dup {
			return nil, pkgerrors.NewValidationError(fmt.Sprintf("duplicate person id %q", p.ID))
		}
		person, err := entities.NewPerson(id, p.Name)
		if err != nil {
			return nil, err
		}
		people[id] = person
		order = append(order, id)
	}

	root, ok := people[rootID]
	if !ok {
		return nil, pkgerrors.NewValidationError(fmt.Sprintf("root person %q not in people list", dto.RootID))
	}

	tree, err := aggregates.NewFamilyTree(root)
	if err != nil {
		return nil, err
	}
	for _, id := range order {
		if id.Equals(rootID) {
			continue
		}
		if err := tree.AddPerson(people[id]); err != nil {
			return nil, err
		}
	}

	for _, p := range dto.People {
		childID := valueobjects.MustCrID(p.ID)
		if fatherID, err := valueobjects.NewCrID(p.FatherID); err == nil && tree.Contains(fatherID) {
			tree.ConnectParentChild(fatherID, childID, true)
		}
		if motherID, err := valueobjects.NewCrID(p.MotherID); err == nil && tree.Contains(motherID) {
			tree.ConnectParentChild(motherID, childID, false)
		}
		for _, s := range p.SpouseIDs {
			if spouseID, err := valueobjects.NewCrID(s); err == nil && tree.Contains(spouseID) {
				tree.ConnectSpouses(childID, spouseID)
			}
		}
	}

	return tree, nil
}
