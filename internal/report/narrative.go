package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/happiness-cli/internal/metrics"
)

// ScoreGuide explains the 0-10 scale, one line per band.
var ScoreGuide = []string{
	"Around **0-3**: very low, people report being far from the \"best possible life\".",
	"Around **4-5**: mixed / below average, some positives but significant challenges.",
	"Around **6-7**: good, people generally feel satisfied with their lives.",
	"**8 and above**: very high, among the happiest countries in the world for that year.",
}

// ScoreGuideNote follows the guide.
const ScoreGuideNote = "Most countries sit somewhere in the middle, so even a change of 0.3-0.5 points can be quite meaningful."

// CorrelationCaveat follows the correlation ranking.
const CorrelationCaveat = "These correlations are not causal proof, but they give a useful indication of which factors " +
	"tend to move with happiness. For example, economy and health usually show strong positive " +
	"relationships with happiness, while trust and freedom can vary more by region."

// OverviewInsights returns the bullet points under the overview.
func OverviewInsights(o Overview) []string {
	if o.Summary == nil {
		return nil
	}
	return []string{
		fmt.Sprintf("In %d, the average happiness score in this selection is **%.2f**, with **%s** the happiest country (score **%.2f**).",
			o.Year, o.Summary.MeanScore, o.Summary.Top.Country, o.Summary.Top.HappinessScore),
		"The highest-scoring regions tend to combine stronger economies, better health outcomes and higher levels of social support.",
		"The distribution shows how most countries cluster around the middle, with a smaller number at the very high and very low ends of the happiness scale.",
	}
}

// CorrelationSentence describes one factor correlation.
func CorrelationSentence(c metrics.Correlation) string {
	label := strings.ToLower(c.Factor.Label())
	if !c.Valid {
		return fmt.Sprintf("The correlation between happiness and %s cannot be computed for this selection "+
			"(it needs at least %d countries with varying values).", label, metrics.MinCorrelationPoints)
	}
	return fmt.Sprintf("The correlation between happiness and %s in this selection is approximately **%.2f**.", label, c.R)
}

// TrendWord is the verb used for a score change.
func TrendWord(d metrics.Direction) string {
	if d == metrics.Unchanged {
		return "stayed fairly stable"
	}
	return string(d)
}

// FeelingPhrase turns a score change into how people feel.
func FeelingPhrase(d metrics.Direction) string {
	switch d {
	case metrics.Increased:
		return "people now report being happier than before"
	case metrics.Decreased:
		return "people now report being less happy than before"
	default:
		return "overall reported happiness has been very stable"
	}
}

// FactorPhrase names the factor that moved the most, if any.
func FactorPhrase(f *metrics.FactorChange) string {
	if f == nil {
		return "The main happiness factors for this country appear relatively stable over the available years."
	}
	dir := string(f.Direction)
	if f.Direction == metrics.Unchanged {
		dir = "stayed roughly the same"
	}
	return fmt.Sprintf("The biggest change over this period is in **%s**, which has %s by about **%.2f** points.",
		f.Factor, dir, f.AbsChange)
}

// ComparisonPhrase places the country against its regional average.
func ComparisonPhrase(country string, endYear int, cmp *metrics.RegionalComparison) string {
	if cmp == nil {
		return fmt.Sprintf("Regional comparison for %s in %d is not available in this dataset.", country, endYear)
	}
	lead := fmt.Sprintf("In **%d**, %s's happiness score (**%.2f**)", cmp.Year, country, cmp.Score)
	switch cmp.Position {
	case metrics.Above:
		return fmt.Sprintf("%s is **above** the %s average of **%.2f**.", lead, cmp.Region, cmp.RegionMean)
	case metrics.Below:
		return fmt.Sprintf("%s is **below** the %s average of **%.2f**.", lead, cmp.Region, cmp.RegionMean)
	default:
		return fmt.Sprintf("%s is very close to the %s average of **%.2f**.", lead, cmp.Region, cmp.RegionMean)
	}
}

// CountryInsights returns the bullet points under a country's series.
func CountryInsights(c CountryFocus) []string {
	if c.Trend == nil {
		return nil
	}
	tr := c.Trend
	return []string{
		fmt.Sprintf("Between **%d** and **%d**, %s's happiness score has **%s**, changing by about **%.2f** points (from **%.2f** to **%.2f**).",
			tr.StartYear, tr.EndYear, c.Country, TrendWord(tr.Direction), tr.AbsChange, tr.FirstScore, tr.LastScore),
		fmt.Sprintf("This suggests that in %s, %s over this period.", c.Country, FeelingPhrase(tr.Direction)),
		FactorPhrase(tr.TopFactor),
		ComparisonPhrase(c.Country, tr.EndYear, c.Comparison),
	}
}
