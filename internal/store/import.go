package store

import (
	"fmt"

	"github.com/piwi3910/Carcass/internal/model"
)

// ImportPieces appends externally read pieces as one undoable step. Each
// piece is checked the way AddPiece checks a new one; rejected pieces are
// skipped and reported. Pieces without a space go to the target space as
// it is when they are reached, so a divider row followed by a shelf row
// behaves like two AddPiece calls.
func (s *Store) ImportPieces(pieces []model.Piece) (int, []string) {
	if len(pieces) == 0 {
		return 0, nil
	}

	before := MakeSnapshot(s.project, s.selected, fmt.Sprintf("Import %d pieces", len(pieces)))
	var warnings []string
	added := 0

	for i, p := range pieces {
		ref := fmt.Sprintf("piece %d (%s)", i+1, p.Type)
		if !p.Type.Known() || p.Type.IsDerived() {
			warnings = append(warnings, fmt.Sprintf("%s: %v", ref, ErrUnknownPieceType))
			continue
		}
		if p.Thickness <= 0 {
			p.Thickness = s.project.DefaultThickness
		}

		res := s.Layout()
		if p.ParentSpaceID == "" {
			target, err := s.targetSpace()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v", ref, err))
				continue
			}
			p.ParentSpaceID = target.ID
		} else if !res.IsActive(p.ParentSpaceID) {
			if _, ok := res.SpaceByID(p.ParentSpaceID); !ok {
				warnings = append(warnings, fmt.Sprintf("%s: space %q does not exist", ref, p.ParentSpaceID))
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: %s: %v", ref, p.ParentSpaceID, ErrSpaceNotActive))
			}
			continue
		}

		if p.Type.IsStructural() && s.hasStructural(p.Type, p.ParentSpaceID) {
			warnings = append(warnings, fmt.Sprintf("%s: %v in %s", ref, ErrDuplicateStructural, p.ParentSpaceID))
			continue
		}

		fresh := model.NewPiece(p.Type, p.Thickness, p.ParentSpaceID)
		if p.Name != "" {
			fresh.Name = p.Name
		}
		s.project.Pieces = append(s.project.Pieces, fresh)
		added++
	}

	if added > 0 {
		s.history.Push(before)
	}
	s.logger.Info("pieces imported", "added", added, "skipped", len(pieces)-added)
	return added, warnings
}

func (s *Store) hasStructural(t model.PieceType, spaceID string) bool {
	for _, p := range s.project.Pieces {
		if p.Type == t && p.ParentSpaceID == spaceID {
			return true
		}
	}
	return false
}
