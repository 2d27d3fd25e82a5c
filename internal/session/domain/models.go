package domain

import (
	"fmt"

	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
)

// Step identifies the wizard position. Steps are strictly ordered;
// transitions are owned by the wizard package.
type Step string

const (
	StepType    Step = "type"
	StepSubType Step = "subtype"
	StepDetails Step = "details"
	StepUpload  Step = "upload"
	StepSummary Step = "summary"
	StepTOS     Step = "tos"
)

// AddonEntry is one selected addon. Quantity is 1 for plain checkbox
// addons and the chosen count for the reserved quantity addon.
type AddonEntry struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// AddonSelection is an ordered addon-id to quantity mapping. Order is
// insertion order and survives serialization, so summaries and exports
// list addons the way the user picked them.
type AddonSelection []AddonEntry

func (s AddonSelection) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

func (s AddonSelection) Get(id string) (int, bool) {
	for _, e := range s {
		if e.ID == id {
			return e.Quantity, true
		}
	}
	return 0, false
}

// Set updates the quantity for id, appending if absent.
func (s AddonSelection) Set(id string, qty int) AddonSelection {
	for i, e := range s {
		if e.ID == id {
			out := make(AddonSelection, len(s))
			copy(out, s)
			out[i].Quantity = qty
			return out
		}
	}
	out := make(AddonSelection, len(s), len(s)+1)
	copy(out, s)
	return append(out, AddonEntry{ID: id, Quantity: qty})
}

func (s AddonSelection) Delete(id string) AddonSelection {
	out := make(AddonSelection, 0, len(s))
	for _, e := range s {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func (s AddonSelection) ToMap() map[string]int {
	out := make(map[string]int, len(s))
	for _, e := range s {
		out[e.ID] = e.Quantity
	}
	return out
}

func (s AddonSelection) Equal(other AddonSelection) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// FileRef describes an uploaded reference file. HandleID points at the
// transient in-memory content and is never persisted across sessions;
// only the descriptive triple survives a restore.
type FileRef struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"last_modified"`
	HandleID     string `json:"handle_id,omitempty"`
}

// Key is the dedupe identity for uploaded files.
func (f FileRef) Key() string {
	return fmt.Sprintf("%s:%d:%d", f.Name, f.Size, f.LastModified)
}

// SelectionState is the in-progress order: the user's choices plus the
// wizard position. Mutated exclusively through actions; every mutation
// is followed by a persisted snapshot and a recomputed breakdown.
type SelectionState struct {
	Step        Step           `json:"step"`
	TypeID      string         `json:"selected_type_id"`
	SubTypeID   string         `json:"selected_sub_id"`
	TierIndex   int            `json:"selected_tier_index"`
	StyleID     string         `json:"selected_style_id"`
	Addons      AddonSelection `json:"selected_addons"`
	Files       []FileRef      `json:"files"`
	Username    string         `json:"username"`
	Description string         `json:"description"`
	Currency    string         `json:"currency"`
	TOSAccepted bool           `json:"tos_accepted"`
}

// NewState builds a fresh selection for the given catalog: default
// style, default currency, initial step. With a single selectable
// commission type the wizard collapses to five steps and starts at
// subtype with that type preselected.
func NewState(cat catalogdomain.Catalog) SelectionState {
	st := SelectionState{
		Step:     StepType,
		StyleID:  catalogdomain.DefaultStyleID,
		Currency: cat.DefaultCurrency,
	}
	if st.Currency == "" {
		st.Currency = "USD"
	}
	if selectable := cat.SelectableTypes(); len(selectable) == 1 {
		st.TypeID = selectable[0].ID
		st.Step = StepSubType
	}
	return st
}

// HasFile reports whether an equivalent file (by descriptive triple)
// is already attached.
func (s SelectionState) HasFile(f FileRef) bool {
	key := f.Key()
	for _, existing := range s.Files {
		if existing.Key() == key {
			return true
		}
	}
	return false
}
