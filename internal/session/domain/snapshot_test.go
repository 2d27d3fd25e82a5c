package domain

import (
	"testing"

	catalogdomain "github.com/strongslime/atelier/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	st := SelectionState{
		Step:      StepSummary,
		TypeID:    "character",
		SubTypeID: "bust",
		TierIndex: 2,
		StyleID:   "style_painted",
		Addons: AddonSelection{
			{ID: "additionalCharacter", Quantity: 1},
			{ID: catalogdomain.AddonItemProp, Quantity: 3},
		},
		Files: []FileRef{
			{Name: "ref.png", Size: 1024, LastModified: 1700000000, HandleID: "h1"},
		},
		Username:    "ghost",
		Description: "two characters, forest scene",
		Currency:    "EUR",
		TOSAccepted: true,
	}

	raw, err := EncodeSnapshot(st)
	require.NoError(t, err)

	restored := DecodeSnapshot(raw, NewState(catalogdomain.Default()))

	assert.Equal(t, st.Step, restored.Step)
	assert.Equal(t, st.TypeID, restored.TypeID)
	assert.Equal(t, st.SubTypeID, restored.SubTypeID)
	assert.Equal(t, st.TierIndex, restored.TierIndex)
	assert.Equal(t, st.StyleID, restored.StyleID)
	assert.True(t, st.Addons.Equal(restored.Addons))
	assert.Equal(t, st.Username, restored.Username)
	assert.Equal(t, st.Description, restored.Description)
	assert.Equal(t, st.Currency, restored.Currency)
	assert.True(t, restored.TOSAccepted)

	// Transient handles do not survive a restore.
	require.Len(t, restored.Files, 1)
	assert.Equal(t, "ref.png", restored.Files[0].Name)
	assert.Empty(t, restored.Files[0].HandleID)
}

func TestDecodeSnapshot_GarbagePayloadKeepsBase(t *testing.T) {
	base := NewState(catalogdomain.Default())

	for _, raw := range []string{"", "not json", "[1,2,3]", `"str"`} {
		restored := DecodeSnapshot([]byte(raw), base)
		assert.Equal(t, base, restored, "payload %q", raw)
	}
}

func TestDecodeSnapshot_PerFieldRecovery(t *testing.T) {
	base := NewState(catalogdomain.Default())

	// Tier index and addons are corrupted; the rest must still restore.
	raw := []byte(`{
		"step": "details",
		"selected_type_id": "character",
		"selected_sub_id": "bust",
		"selected_tier_index": "two",
		"selected_addons": {"not": "a list"},
		"username": "ghost",
		"currency": "GBP",
		"tos_accepted": true
	}`)

	restored := DecodeSnapshot(raw, base)

	assert.Equal(t, StepDetails, restored.Step)
	assert.Equal(t, "character", restored.TypeID)
	assert.Equal(t, "bust", restored.SubTypeID)
	assert.Equal(t, base.TierIndex, restored.TierIndex)
	assert.True(t, base.Addons.Equal(restored.Addons))
	assert.Equal(t, "ghost", restored.Username)
	assert.Equal(t, "GBP", restored.Currency)
	assert.True(t, restored.TOSAccepted)
}

func TestDecodeSnapshot_DefensiveDefaults(t *testing.T) {
	base := NewState(catalogdomain.Default())

	// Empty style and currency and a negative tier index fall back to
	// the base values instead of clearing them.
	raw := []byte(`{
		"selected_style_id": "",
		"currency": "",
		"selected_tier_index": -3
	}`)

	restored := DecodeSnapshot(raw, base)
	assert.Equal(t, catalogdomain.DefaultStyleID, restored.StyleID)
	assert.Equal(t, "USD", restored.Currency)
	assert.Zero(t, restored.TierIndex)
}

func TestDecodeSnapshot_UnknownFieldsIgnored(t *testing.T) {
	base := NewState(catalogdomain.Default())

	raw := []byte(`{"selected_type_id": "emotes", "future_field": {"a": 1}}`)
	restored := DecodeSnapshot(raw, base)
	assert.Equal(t, "emotes", restored.TypeID)
}

func TestAddonSelection_OrderPreserved(t *testing.T) {
	var sel AddonSelection
	sel = sel.Set("b", 1)
	sel = sel.Set("a", 1)
	sel = sel.Set("b", 2)

	require.Len(t, sel, 2)
	assert.Equal(t, AddonEntry{ID: "b", Quantity: 2}, sel[0])
	assert.Equal(t, AddonEntry{ID: "a", Quantity: 1}, sel[1])

	sel = sel.Delete("b")
	require.Len(t, sel, 1)
	assert.Equal(t, "a", sel[0].ID)
	assert.False(t, sel.Has("b"))
}

func TestAddonSelection_SetDoesNotMutateReceiver(t *testing.T) {
	orig := AddonSelection{{ID: "a", Quantity: 1}}
	updated := orig.Set("a", 9)

	assert.Equal(t, 1, orig[0].Quantity)
	qty, _ := updated.Get("a")
	assert.Equal(t, 9, qty)
}

func TestFileRefKey(t *testing.T) {
	f := FileRef{Name: "ref.png", Size: 10, LastModified: 42}
	assert.Equal(t, "ref.png:10:42", f.Key())

	st := SelectionState{Files: []FileRef{f}}
	assert.True(t, st.HasFile(FileRef{Name: "ref.png", Size: 10, LastModified: 42, HandleID: "other"}))
	assert.False(t, st.HasFile(FileRef{Name: "ref.png", Size: 10, LastModified: 43}))
}
