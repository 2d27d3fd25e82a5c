package domain

import "encoding/json"

// snapshot is the persisted form of a selection. File entries carry
// only the descriptive triple; transient handles never survive a
// restore. Unknown fields in stored payloads are ignored so older
// snapshots keep loading after the format grows.
type snapshot struct {
	Step        json.RawMessage `json:"step"`
	TypeID      json.RawMessage `json:"selected_type_id"`
	SubTypeID   json.RawMessage `json:"selected_sub_id"`
	TierIndex   json.RawMessage `json:"selected_tier_index"`
	StyleID     json.RawMessage `json:"selected_style_id"`
	Addons      json.RawMessage `json:"selected_addons"`
	Files       json.RawMessage `json:"files"`
	Username    json.RawMessage `json:"username"`
	Description json.RawMessage `json:"description"`
	Currency    json.RawMessage `json:"currency"`
	TOSAccepted json.RawMessage `json:"tos_accepted"`
}

type snapshotFile struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"last_modified"`
}

// EncodeSnapshot serializes the persistable part of a selection.
func EncodeSnapshot(st SelectionState) ([]byte, error) {
	files := make([]snapshotFile, 0, len(st.Files))
	for _, f := range st.Files {
		files = append(files, snapshotFile{Name: f.Name, Size: f.Size, LastModified: f.LastModified})
	}
	return json.Marshal(map[string]any{
		"step":                st.Step,
		"selected_type_id":    st.TypeID,
		"selected_sub_id":     st.SubTypeID,
		"selected_tier_index": st.TierIndex,
		"selected_style_id":   st.StyleID,
		"selected_addons":     st.Addons,
		"files":               files,
		"username":            st.Username,
		"description":         st.Description,
		"currency":            st.Currency,
		"tos_accepted":        st.TOSAccepted,
	})
}

// DecodeSnapshot restores a selection on top of the given base state.
// Recovery is per-field: a corrupted tier index must not prevent the
// username from restoring. Malformed fields keep the base value.
func DecodeSnapshot(raw []byte, base SelectionState) SelectionState {
	st := base

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return st
	}

	var step Step
	if unmarshalField(snap.Step, &step) && step != "" {
		st.Step = step
	}
	var s string
	if unmarshalField(snap.TypeID, &s) {
		st.TypeID = s
	}
	if unmarshalField(snap.SubTypeID, &s) {
		st.SubTypeID = s
	}
	var idx int
	if unmarshalField(snap.TierIndex, &idx) && idx >= 0 {
		st.TierIndex = idx
	}
	if unmarshalField(snap.StyleID, &s) && s != "" {
		st.StyleID = s
	}
	var addons AddonSelection
	if unmarshalField(snap.Addons, &addons) {
		st.Addons = addons
	}
	var files []snapshotFile
	if unmarshalField(snap.Files, &files) {
		st.Files = make([]FileRef, 0, len(files))
		for _, f := range files {
			st.Files = append(st.Files, FileRef{Name: f.Name, Size: f.Size, LastModified: f.LastModified})
		}
	}
	if unmarshalField(snap.Username, &s) {
		st.Username = s
	}
	if unmarshalField(snap.Description, &s) {
		st.Description = s
	}
	if unmarshalField(snap.Currency, &s) && s != "" {
		st.Currency = s
	}
	var accepted bool
	if unmarshalField(snap.TOSAccepted, &accepted) {
		st.TOSAccepted = accepted
	}

	return st
}

func unmarshalField(raw json.RawMessage, out any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
