package wizard

import (
	"testing"

	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
	sessiondomain "github.com/strongslime/atelier/internal/session/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

// buildState walks a fresh state through a sequence of actions.
func buildState(t *testing.T, cat catalogdomain.Catalog, actions ...sessiondomain.Action) sessiondomain.SelectionState {
	t.Helper()
	st := sessiondomain.NewState(cat)
	for _, a := range actions {
		var err error
		st, err = Apply(cat, st, a)
		require.NoError(t, err)
	}
	return st
}

func TestApply_SelectType(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat, sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"})
	assert.Equal(t, "character", st.TypeID)
	assert.Equal(t, sessiondomain.StepSubType, st.Step)
	assert.Equal(t, catalogdomain.DefaultStyleID, st.StyleID)
}

func TestApply_SelectType_UnknownOrComingSoonIsNoOp(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)

	for _, id := range []string{"nope", "animation"} {
		next, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: id})
		require.NoError(t, err)
		assert.Equal(t, st, next, "type id %q", id)
	}
}

func TestApply_TypeReselectClearsDependentChoices(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectTier, TierIndex: intPtr(2)},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectStyle, StyleID: "style_painted"},
		sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: "complexBackground"},
	)
	st = AddFiles(st, []sessiondomain.FileRef{{Name: "ref.png", Size: 100, LastModified: 1}})

	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "emotes"})
	require.NoError(t, err)

	assert.Equal(t, "emotes", st.TypeID)
	assert.Empty(t, st.SubTypeID)
	assert.Zero(t, st.TierIndex)
	assert.Empty(t, st.Addons)
	assert.Empty(t, st.Files)
	assert.Equal(t, catalogdomain.DefaultStyleID, st.StyleID)
	assert.Equal(t, sessiondomain.StepSubType, st.Step)
}

func TestApply_SubTypeReselectKeepsFilesAndStyle(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectTier, TierIndex: intPtr(1)},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectStyle, StyleID: "style_chibi"},
		sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: "commercialUse"},
	)
	st = AddFiles(st, []sessiondomain.FileRef{{Name: "ref.png", Size: 100, LastModified: 1}})

	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "fullbody"})
	require.NoError(t, err)

	assert.Equal(t, "fullbody", st.SubTypeID)
	assert.Zero(t, st.TierIndex)
	assert.Empty(t, st.Addons)
	assert.Len(t, st.Files, 1)
	assert.Equal(t, "style_chibi", st.StyleID)
	assert.Equal(t, sessiondomain.StepDetails, st.Step)
}

func TestApply_SelectSubType_OtherTypeIsNoOp(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat, sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "emotes"})
	next, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"})
	require.NoError(t, err)
	assert.Equal(t, st, next)
}

func TestApply_SelectTierValidation(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
	)

	for _, idx := range []int{-1, 3, 42} {
		next, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSelectTier, TierIndex: intPtr(idx)})
		require.NoError(t, err)
		assert.Zero(t, next.TierIndex, "index %d", idx)
	}

	next, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSelectTier, TierIndex: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, next.TierIndex)
}

func TestApply_ToggleAddon(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: "complexBackground"},
	)
	assert.True(t, st.Addons.Has("complexBackground"))

	// Toggling again removes the addon.
	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: "complexBackground"})
	require.NoError(t, err)
	assert.False(t, st.Addons.Has("complexBackground"))

	// Addons not offered by the selected type are ignored.
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: "animatedVersion"})
	require.NoError(t, err)
	assert.Empty(t, st.Addons)
}

func TestApply_SetAddonQuantity(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: catalogdomain.AddonItemProp},
		sessiondomain.Action{Kind: sessiondomain.ActionSetAddonQuantity, AddonID: catalogdomain.AddonItemProp, Quantity: intPtr(4)},
	)
	qty, ok := st.Addons.Get(catalogdomain.AddonItemProp)
	require.True(t, ok)
	assert.Equal(t, 4, qty)

	// Quantity clamps to one.
	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSetAddonQuantity, AddonID: catalogdomain.AddonItemProp, Quantity: intPtr(0)})
	require.NoError(t, err)
	qty, _ = st.Addons.Get(catalogdomain.AddonItemProp)
	assert.Equal(t, 1, qty)

	// Only the reserved addon carries a quantity.
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSetAddonQuantity, AddonID: "complexBackground", Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.False(t, st.Addons.Has("complexBackground"))
}

func TestApply_SetCurrency(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)

	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSetCurrency, Currency: "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", st.Currency)

	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSetCurrency, Currency: "XYZ"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", st.Currency)
}

func TestApply_AcceptTOS(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)
	assert.False(t, ExportAllowed(st))

	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionAcceptTOS})
	require.NoError(t, err)
	assert.True(t, ExportAllowed(st))

	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionAcceptTOS, Accepted: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, ExportAllowed(st))
}

func TestApply_Navigation(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)
	require.Equal(t, sessiondomain.StepType, st.Step)

	// Back at the initial step stays put.
	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionBack})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepType, st.Step)

	// Advancing into details without a subtype is blocked.
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionAdvance})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepSubType, st.Step)
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionAdvance})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepSubType, st.Step)

	st = buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionAdvance},
		sessiondomain.Action{Kind: sessiondomain.ActionAdvance},
		sessiondomain.Action{Kind: sessiondomain.ActionAdvance},
	)
	assert.Equal(t, sessiondomain.StepTOS, st.Step)

	// Advancing past the last step stays put.
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionAdvance})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepTOS, st.Step)
}

func TestApply_SkipUpload(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionAdvance},
	)
	require.Equal(t, sessiondomain.StepUpload, st.Step)

	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSkipUpload})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepSummary, st.Step)

	// Skip is only meaningful on the upload step.
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionSkipUpload})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepSummary, st.Step)
}

func TestApply_RemoveFile(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)
	st = AddFiles(st, []sessiondomain.FileRef{
		{Name: "a.png", Size: 10, LastModified: 1, HandleID: "h1"},
		{Name: "b.png", Size: 20, LastModified: 2, HandleID: "h2"},
	})

	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionRemoveFile, FileKey: "a.png:10:1"})
	require.NoError(t, err)
	require.Len(t, st.Files, 1)
	assert.Equal(t, "b.png", st.Files[0].Name)

	// Removal by handle works for restored sessions.
	st, err = Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionRemoveFile, FileKey: "h2"})
	require.NoError(t, err)
	assert.Empty(t, st.Files)
}

func TestApply_Reset(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionSetCurrency, Currency: "GBP"},
		sessiondomain.Action{Kind: sessiondomain.ActionReset},
	)
	assert.Equal(t, sessiondomain.NewState(cat), st)
}

func TestApply_ResetDetails(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "bust"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectTier, TierIndex: intPtr(2)},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectStyle, StyleID: "style_painted"},
		sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: "commercialUse"},
		sessiondomain.Action{Kind: sessiondomain.ActionResetDetails},
	)

	assert.Equal(t, "character", st.TypeID)
	assert.Equal(t, "bust", st.SubTypeID)
	assert.Zero(t, st.TierIndex)
	assert.Empty(t, st.Addons)
	assert.Equal(t, catalogdomain.DefaultStyleID, st.StyleID)
}

func TestApply_UnknownActionErrors(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)

	_, err := Apply(cat, st, sessiondomain.Action{Kind: "explode"})
	assert.ErrorIs(t, err, sessiondomain.ErrUnknownAction)
}

func TestAddFiles_Dedupe(t *testing.T) {
	cat := catalogdomain.Default()
	st := sessiondomain.NewState(cat)

	refs := []sessiondomain.FileRef{
		{Name: "ref.png", Size: 100, LastModified: 5},
		{Name: "ref.png", Size: 100, LastModified: 5},
		{Name: "ref.png", Size: 100, LastModified: 6},
	}
	st = AddFiles(st, refs)
	require.Len(t, st.Files, 2)

	st = AddFiles(st, refs[:1])
	assert.Len(t, st.Files, 2)
}

func TestToSelection(t *testing.T) {
	cat := catalogdomain.Default()

	st := buildState(t, cat,
		sessiondomain.Action{Kind: sessiondomain.ActionSelectType, TypeID: "character"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectSubType, SubTypeID: "halfbody"},
		sessiondomain.Action{Kind: sessiondomain.ActionSelectTier, TierIndex: intPtr(1)},
		sessiondomain.Action{Kind: sessiondomain.ActionToggleAddon, AddonID: catalogdomain.AddonItemProp, Quantity: intPtr(2)},
	)
	st = AddFiles(st, []sessiondomain.FileRef{{Name: "a.png", Size: 1, LastModified: 1}})

	sel := ToSelection(st)
	assert.Equal(t, "character", sel.TypeID)
	assert.Equal(t, "halfbody", sel.SubTypeID)
	assert.Equal(t, 1, sel.TierIndex)
	assert.Equal(t, map[string]int{catalogdomain.AddonItemProp: 2}, sel.Addons)
	assert.Equal(t, 1, sel.FileCount)
}

func TestSingleTypeCatalogStartsAtSubType(t *testing.T) {
	cat := catalogdomain.Default()
	cat.CommissionTypes = cat.CommissionTypes[:1]

	st := sessiondomain.NewState(cat)
	assert.Equal(t, sessiondomain.StepSubType, st.Step)
	assert.Equal(t, "character", st.TypeID)

	// The collapsed type step has no predecessor, so back stays put.
	st, err := Apply(cat, st, sessiondomain.Action{Kind: sessiondomain.ActionBack})
	require.NoError(t, err)
	assert.Equal(t, sessiondomain.StepSubType, st.Step)
}
