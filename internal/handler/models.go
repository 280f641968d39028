package handler

import (
	"holding/internal/domain/services"
	"holding/internal/httputil"
)

// modifyItemRequest is the wire shape of an item modification. Note uses
// OptionalString so an absent note, a null note and a blank note decode
// differently: absent leaves the note alone, null and blank clear it.
type modifyItemRequest struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`

	Note          httputil.OptionalString `json:"note"`
	NewQuantity   *int                    `json:"new_quantity,omitempty"`
	NewParentID   *int64                  `json:"new_parent_id,omitempty"`
	NewParentName string                  `json:"new_parent_name,omitempty"`
	MoveToRoot    bool                    `json:"move_to_root"`
}

func (req *modifyItemRequest) toService() *services.ModifyItemRequest {
	return &services.ModifyItemRequest{
		ID:            req.ID,
		Name:          req.Name,
		Note:          req.Note.Ptr(),
		NewQuantity:   req.NewQuantity,
		NewParentID:   req.NewParentID,
		NewParentName: req.NewParentName,
		MoveToRoot:    req.MoveToRoot,
	}
}

// activateContainerRequest activates a container by name. Priority picks
// the winner when both the user and their guild own that name.
type activateContainerRequest struct {
	Name     string `json:"name"`
	Priority string `json:"priority,omitempty"`
}
