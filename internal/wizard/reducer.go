package wizard

import (
	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
	"github.com/strongslime/atelier/internal/pricing"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
)

// Apply maps (state, action) to a new state. Actions referencing
// catalog entries that do not resolve, or transitions the machine does
// not allow, leave the state unchanged rather than erroring: a stale
// click is not a fault. Only an action outside the closed set is an
// error.
func Apply(cat catalogdomain.Catalog, st sessiondomain.SelectionState, action sessiondomain.Action) (sessiondomain.SelectionState, error) {
	switch action.Kind {
	case sessiondomain.ActionSelectType:
		ctype, ok := cat.FindType(action.TypeID)
		if !ok || ctype.ComingSoon {
			return st, nil
		}
		st.TypeID = ctype.ID
		st.SubTypeID = ""
		st.TierIndex = 0
		st.Addons = nil
		st.Files = nil
		st.StyleID = catalogdomain.DefaultStyleID
		st.Step = sessiondomain.StepSubType
		return st, nil

	case sessiondomain.ActionSelectSubType:
		ctype, ok := cat.FindType(st.TypeID)
		if !ok {
			return st, nil
		}
		sub, ok := ctype.FindSubType(action.SubTypeID)
		if !ok {
			return st, nil
		}
		st.SubTypeID = sub.ID
		st.TierIndex = 0
		st.Addons = nil
		st.Step = sessiondomain.StepDetails
		return st, nil

	case sessiondomain.ActionSelectTier:
		if action.TierIndex == nil {
			return st, nil
		}
		sub, ok := resolveSubType(cat, st)
		if !ok || *action.TierIndex < 0 || *action.TierIndex >= len(sub.Tiers) {
			return st, nil
		}
		st.TierIndex = *action.TierIndex
		return st, nil

	case sessiondomain.ActionSelectStyle:
		if _, ok := cat.ArtStyles[action.StyleID]; !ok {
			return st, nil
		}
		st.StyleID = action.StyleID
		return st, nil

	case sessiondomain.ActionToggleAddon:
		ctype, ok := cat.FindType(st.TypeID)
		if !ok {
			return st, nil
		}
		addon, ok := ctype.FindAddon(action.AddonID)
		if !ok {
			return st, nil
		}
		if st.Addons.Has(addon.ID) {
			st.Addons = st.Addons.Delete(addon.ID)
		} else {
			st.Addons = st.Addons.Set(addon.ID, clampQuantity(action.Quantity))
		}
		return st, nil

	case sessiondomain.ActionSetAddonQuantity:
		if action.AddonID != catalogdomain.AddonItemProp || !st.Addons.Has(action.AddonID) {
			return st, nil
		}
		st.Addons = st.Addons.Set(action.AddonID, clampQuantity(action.Quantity))
		return st, nil

	case sessiondomain.ActionSetCurrency:
		if _, ok := cat.Currencies[action.Currency]; !ok {
			return st, nil
		}
		st.Currency = action.Currency
		return st, nil

	case sessiondomain.ActionSetUsername:
		st.Username = action.Text
		return st, nil

	case sessiondomain.ActionSetDescription:
		st.Description = action.Text
		return st, nil

	case sessiondomain.ActionAcceptTOS:
		if action.Accepted != nil {
			st.TOSAccepted = *action.Accepted
		} else {
			st.TOSAccepted = true
		}
		return st, nil

	case sessiondomain.ActionRemoveFile:
		files := make([]sessiondomain.FileRef, 0, len(st.Files))
		for _, f := range st.Files {
			if f.Key() == action.FileKey || (action.FileKey != "" && f.HandleID == action.FileKey) {
				continue
			}
			files = append(files, f)
		}
		st.Files = files
		return st, nil

	case sessiondomain.ActionAdvance:
		next := Next(st.Step)
		if next == st.Step || !canEnter(cat, st, next) {
			return st, nil
		}
		st.Step = next
		return st, nil

	case sessiondomain.ActionSkipUpload:
		if st.Step != sessiondomain.StepUpload {
			return st, nil
		}
		st.Step = sessiondomain.StepSummary
		return st, nil

	case sessiondomain.ActionBack:
		if st.Step == initialStep(cat) {
			return st, nil
		}
		st.Step = Prev(st.Step)
		return st, nil

	case sessiondomain.ActionReset:
		return sessiondomain.NewState(cat), nil

	case sessiondomain.ActionResetDetails:
		st.TierIndex = 0
		st.Addons = nil
		st.StyleID = catalogdomain.DefaultStyleID
		return st, nil

	default:
		return st, sessiondomain.ErrUnknownAction
	}
}

// AddFiles appends uploads, deduplicated by (name, size, lastModified).
func AddFiles(st sessiondomain.SelectionState, refs []sessiondomain.FileRef) sessiondomain.SelectionState {
	for _, ref := range refs {
		if st.HasFile(ref) {
			continue
		}
		st.Files = append(st.Files, ref)
	}
	return st
}

// ToSelection maps session state onto the pricing engine's input.
func ToSelection(st sessiondomain.SelectionState) pricing.Selection {
	return pricing.Selection{
		TypeID:    st.TypeID,
		SubTypeID: st.SubTypeID,
		TierIndex: st.TierIndex,
		StyleID:   st.StyleID,
		Addons:    st.Addons.ToMap(),
		FileCount: len(st.Files),
	}
}

func resolveSubType(cat catalogdomain.Catalog, st sessiondomain.SelectionState) (catalogdomain.SubType, bool) {
	ctype, ok := cat.FindType(st.TypeID)
	if !ok {
		return catalogdomain.SubType{}, false
	}
	return ctype.FindSubType(st.SubTypeID)
}

func clampQuantity(q *int) int {
	if q == nil || *q < 1 {
		return 1
	}
	return *q
}
