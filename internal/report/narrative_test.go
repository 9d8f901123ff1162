package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/happiness-cli/internal/dataset"
	"github.com/KaramelBytes/happiness-cli/internal/metrics"
)

func TestCorrelationSentence(t *testing.T) {
	c := metrics.Correlation{Factor: dataset.FieldHealth, R: 0.7812, N: 10, Valid: true}
	assert.Equal(t,
		"The correlation between happiness and health (life expectancy) in this selection is approximately **0.78**.",
		CorrelationSentence(c))

	c.Valid = false
	assert.Contains(t, CorrelationSentence(c), "cannot be computed")
}

func TestTrendPhrases(t *testing.T) {
	assert.Equal(t, "stayed fairly stable", TrendWord(metrics.Unchanged))
	assert.Equal(t, "increased", TrendWord(metrics.Increased))
	assert.Equal(t, "people now report being happier than before", FeelingPhrase(metrics.Increased))
	assert.Equal(t, "overall reported happiness has been very stable", FeelingPhrase(metrics.Unchanged))
}

func TestFactorPhrase(t *testing.T) {
	assert.Contains(t, FactorPhrase(nil), "appear relatively stable")
	f := &metrics.FactorChange{Factor: dataset.FieldTrust, Change: -0.123, AbsChange: 0.123, Direction: metrics.Decreased}
	assert.Equal(t,
		"The biggest change over this period is in **Trust**, which has decreased by about **0.12** points.",
		FactorPhrase(f))
	f.Direction = metrics.Unchanged
	assert.Contains(t, FactorPhrase(f), "stayed roughly the same")
}

func TestComparisonPhrase(t *testing.T) {
	assert.Equal(t,
		"Regional comparison for Chile in 2016 is not available in this dataset.",
		ComparisonPhrase("Chile", 2016, nil))
	cmp := &metrics.RegionalComparison{Region: "North", Year: 2016, Score: 6, RegionMean: 6, Position: metrics.Equal}
	assert.Equal(t,
		"In **2016**, Chile's happiness score (**6.00**) is very close to the North average of **6.00**.",
		ComparisonPhrase("Chile", 2016, cmp))
	cmp.Position = metrics.Above
	assert.Contains(t, ComparisonPhrase("Chile", 2016, cmp), "is **above** the North average")
}
