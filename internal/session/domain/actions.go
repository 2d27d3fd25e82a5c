package domain

// ActionKind names one member of the closed action set. Every user
// interaction maps onto exactly one action; there is no other way to
// mutate a session.
type ActionKind string

const (
	ActionSelectType       ActionKind = "select_type"
	ActionSelectSubType    ActionKind = "select_subtype"
	ActionSelectTier       ActionKind = "select_tier"
	ActionSelectStyle      ActionKind = "select_style"
	ActionToggleAddon      ActionKind = "toggle_addon"
	ActionSetAddonQuantity ActionKind = "set_addon_quantity"
	ActionSetCurrency      ActionKind = "set_currency"
	ActionSetUsername      ActionKind = "set_username"
	ActionSetDescription   ActionKind = "set_description"
	ActionAcceptTOS        ActionKind = "accept_tos"
	ActionRemoveFile       ActionKind = "remove_file"
	ActionAdvance          ActionKind = "advance"
	ActionSkipUpload       ActionKind = "skip_upload"
	ActionBack             ActionKind = "back"
	ActionReset            ActionKind = "reset"
	ActionResetDetails     ActionKind = "reset_details"
)

// Action is a tagged union: Kind selects which payload fields apply.
// Unused fields are ignored.
type Action struct {
	Kind ActionKind `json:"action"`

	TypeID    string `json:"type_id,omitempty"`
	SubTypeID string `json:"subtype_id,omitempty"`
	TierIndex *int   `json:"tier_index,omitempty"`
	StyleID   string `json:"style_id,omitempty"`
	AddonID   string `json:"addon_id,omitempty"`
	Quantity  *int   `json:"quantity,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Text      string `json:"text,omitempty"`
	Accepted  *bool  `json:"accepted,omitempty"`
	FileKey   string `json:"file_key,omitempty"`
}
