package domain

// Default returns the baked-in catalog used whenever external
// configuration is missing or invalid. The wizard must stay usable
// with stale pricing rather than fail to start.
func Default() Catalog {
	return Catalog{
		CommissionTypes: []CommissionType{
			{
				ID:         "character",
				Name:       "Character Art",
				PriceRange: "$10 - $60",
				SubTypes: []SubType{
					{
						ID:   "bust",
						Name: "Bust",
						Tiers: []Tier{
							{Name: "Sketch", Price: 10},
							{Name: "Lineart", Price: 15},
							{Name: "Full Shaded", Price: 20},
						},
					},
					{
						ID:   "halfbody",
						Name: "Half Body",
						Tiers: []Tier{
							{Name: "Sketch", Price: 15},
							{Name: "Lineart", Price: 22},
							{Name: "Full Shaded", Price: 30},
						},
					},
					{
						ID:   "fullbody",
						Name: "Full Body",
						Tiers: []Tier{
							{Name: "Sketch", Price: 25},
							{Name: "Lineart", Price: 38},
							{Name: "Full Shaded", Price: 60},
						},
					},
				},
				Addons: []Addon{
					{ID: "additionalCharacter", Label: "Additional character", Kind: AddonKindPercent, Value: 75},
					{ID: AddonItemProp, Label: "Item / Prop", Kind: AddonKindFlat, Value: 7},
					{ID: "complexBackground", Label: "Complex background", Kind: AddonKindFlat, Value: 15},
					{ID: "commercialUse", Label: "Commercial use", Kind: AddonKindPercent, Value: 50},
				},
			},
			{
				ID:         "emotes",
				Name:       "Emotes & Badges",
				PriceRange: "$5 - $25",
				SubTypes: []SubType{
					{
						ID:   "emote",
						Name: "Emote",
						Tiers: []Tier{
							{Name: "Single", Price: 5},
							{Name: "Pack of 3", Price: 12},
							{Name: "Pack of 6", Price: 25},
						},
					},
					{
						ID:   "badge",
						Name: "Sub Badge",
						Tiers: []Tier{
							{Name: "Single", Price: 5},
							{Name: "Tier Set", Price: 18},
						},
					},
				},
				Addons: []Addon{
					{ID: AddonItemProp, Label: "Item / Prop", Kind: AddonKindFlat, Value: 3},
					{ID: "animatedVersion", Label: "Animated version", Kind: AddonKindPercent, Value: 100},
				},
			},
			{
				ID:         "animation",
				Name:       "Animation",
				PriceRange: "Coming soon",
				ComingSoon: true,
			},
		},
		Currencies: map[string]Currency{
			"USD": {Symbol: "$", Name: "US Dollar", Rate: 1},
			"EUR": {Symbol: "€", Name: "Euro", Rate: 0.92},
			"GBP": {Symbol: "£", Name: "British Pound", Rate: 0.79},
			"CAD": {Symbol: "C$", Name: "Canadian Dollar", Rate: 1.36},
		},
		DefaultCurrency: "USD",
		ArtStyles: map[string]ArtStyle{
			DefaultStyleID:  {Label: "Basic", Kind: StyleKindNone},
			"style_painted": {Label: "Painted", Kind: StyleKindPercent, Value: 25},
			"style_chibi":   {Label: "Chibi", Kind: StyleKindPercent, Value: 10},
		},
		Discount: DiscountPolicy{PerFileAmount: 2, MaxDiscount: 4},
		Labels: map[string]string{
			"siteTitle":             "Commission Builder",
			"currencyLabel":         "Currency",
			"nameFieldLabel":        "Your name or handle",
			"descriptionFieldLabel": "Commission description",
			"referenceDiscountText": "Each extra reference sheet earns {currency}{amount} off, up to {currency}{max}.",
			"footerText":            "Prices are estimates until confirmed.",
		},
		TermsOfService: &TermsOfService{
			Title: "Terms of Service",
			Content: []string{
				"# Terms of Service",
				"* Payment is due up front before work begins.",
				"* Estimates are not final quotes; complex requests may be re-priced.",
				"* Finished work may be posted to the artist's portfolio unless agreed otherwise.",
			},
			AgreementText: "I have read and accept the terms of service.",
		},
	}
}
