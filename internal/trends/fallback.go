package trends

import "github.com/sharifianco/XToofan/internal/types"

// sampleTrends is the static table served when no live page could be scraped.
func sampleTrends() map[string][]types.Trend {
	tables := map[string][]string{
		"IR": {"#مهسا_امینی", "#زن_زندگی_آزادی", "#IranRevolution", "#آزادی", "#ایران",
			"#FreeIran2024", "#OpIran", "#IRGCterrorists", "#نه_به_اعدام", "#براندازم"},
		"US": {"#Iran", "#FreeIran", "#HumanRights", "#Congress", "#WhiteHouse",
			"#StandWithIran", "#IranProtests", "#Democracy", "#Freedom", "#WomanLifeFreedom"},
		"GB": {"#Iran", "#Parliament", "#HumanRights", "#BBCNews", "#FreeIran",
			"#UK", "#London", "#IranProtests", "#Democracy", "#StandWithIran"},
		"DE": {"#Iran", "#Bundestag", "#Menschenrechte", "#FreeIran", "#Berlin",
			"#Deutschland", "#IranProteste", "#Demokratie", "#Freiheit", "#StandWithIran"},
		"FR": {"#Iran", "#DroitsHumains", "#Macron", "#FreeIran", "#Paris",
			"#France", "#Liberté", "#IranProtests", "#Démocratie", "#FemmesVieLiberté"},
		"CA": {"#Iran", "#FreeIran", "#Trudeau", "#HumanRights", "#Ottawa",
			"#Canada", "#Toronto", "#IranProtests", "#StandWithIran", "#WomanLifeFreedom"},
		"TR": {"#Iran", "#Türkiye", "#FreeIran", "#Ankara", "#İnsanHakları",
			"#Istanbul", "#Özgürlük", "#IranProtests", "#Demokrasi", "#KadınYaşamÖzgürlük"},
		"AE": {"#Iran", "#Dubai", "#FreeIran", "#UAE", "#HumanRights",
			"#AbuDhabi", "#الإمارات", "#IranProtests", "#حقوق_الانسان", "#StandWithIran"},
	}

	out := make(map[string][]types.Trend, len(tables))
	for code, names := range tables {
		list := make([]types.Trend, len(names))
		for i, name := range names {
			list[i] = types.Trend{Name: name, Rank: i + 1}
		}
		out[code] = list
	}
	return out
}
