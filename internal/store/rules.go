package store

// ruleInfo mirrors the rule engine's static metadata, used to enrich the
// export. Slugs the catalog does not know still export with their raw slug
// and "Unknown" metadata, so a new rule never breaks the pipeline.
type ruleInfo struct {
	Name            string
	BetType         string
	OpportunityType string
}

var ruleCatalog = map[string]ruleInfo{
	"consecutive_losses": {
		Name:            "Consecutive Losses Rule",
		BetType:         "draw_or_win",
		OpportunityType: "historical_analysis",
	},
	"consecutive_draws": {
		Name:            "Consecutive Draws Rule",
		BetType:         "win_or_lose",
		OpportunityType: "historical_analysis",
	},
	"top5_consecutive_losses": {
		Name:            "Top 5 Consecutive Losses Rule",
		BetType:         "draw_or_win",
		OpportunityType: "historical_analysis",
	},
	"live_red_card": {
		Name:            "Live Red Card Rule",
		BetType:         "win",
		OpportunityType: "live_opportunity",
	},
}

func ruleBySlug(slug string) ruleInfo {
	if info, ok := ruleCatalog[slug]; ok {
		return info
	}
	return ruleInfo{Name: "Unknown Rule", BetType: "Unknown", OpportunityType: "Unknown"}
}
