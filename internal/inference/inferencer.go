package inference

import (
	"math"

	"dqlens/domain/dataset"
	"dqlens/domain/quality"

	"github.com/montanaflynn/stats"
)

const (
	// typeThreshold is the share of sampled values that must validate for a
	// type to be accepted as the actual type.
	typeThreshold = 0.7
	// categoricalUniqueRatio is the distinct/sample ratio below which an
	// untyped column counts as categorical.
	categoricalUniqueRatio = 0.3
	// longTextMeanLength separates text from text_long
	longTextMeanLength = 50.0
	// partialConformity is reported when expected and actual types differ
	// but are listed as compatible.
	partialConformity = 85.0
	// neutralConformity is reported when the expected type has no validator
	// and no compatibility entry covers the pair: the content can neither be
	// confirmed nor refuted, so neither 0 nor 100 would be honest.
	neutralConformity = 50.0
)

// compatibleTypes lists, per expected type, the actual types accepted at
// partial conformity.
var compatibleTypes = map[quality.SemanticType][]quality.SemanticType{
	quality.TypeNumeric:     {quality.TypeIdentifier},
	quality.TypeDate:        {quality.TypeText},
	quality.TypeBoolean:     {quality.TypeCategorical},
	quality.TypeCategorical: {quality.TypeText},
	quality.TypeIdentifier:  {quality.TypeNumeric, quality.TypeText},
	quality.TypeName:        {quality.TypeText, quality.TypeTextLong},
	quality.TypeText:        {quality.TypeTextLong, quality.TypeCategorical},
}

// Inferencer derives per-column semantic-type facts. It holds only the
// sampling bounds; every profile is a pure function of the column.
type Inferencer struct {
	sampling Sampling
}

// NewInferencer creates an inferencer with the given sampling bounds
func NewInferencer(sampling Sampling) *Inferencer {
	return &Inferencer{sampling: sampling}
}

// ProfileColumn infers expected and actual type for one column and computes
// its conformity rate and basic counts.
func (inf *Inferencer) ProfileColumn(col dataset.Column) quality.ColumnProfile {
	profile := quality.ColumnProfile{
		Name:         col.Name,
		ExpectedType: InferExpectedType(col.Name),
		NullCount:    col.NullCount(),
		UniqueCount:  col.UniqueCount(),
	}

	nonAbsent := col.NonAbsent()
	if len(nonAbsent) == 0 {
		profile.ActualType = quality.TypeEmpty
		profile.ConformityRate = 0
		return profile
	}

	if len(nonAbsent) >= 3 {
		profile.SampleValues = append([]string(nil), nonAbsent[:3]...)
	} else {
		profile.SampleValues = append([]string(nil), nonAbsent...)
	}

	detectionSample := sample(nonAbsent, inf.sampling.Size, inf.sampling.Seed)
	profile.ActualType = DetectActualType(detectionSample)
	profile.ConformityRate = inf.conformityRate(nonAbsent, profile.ExpectedType, profile.ActualType)
	profile.InvalidCount = int(math.Round(float64(len(nonAbsent)) * (1 - profile.ConformityRate/100)))

	if profile.ActualType == quality.TypeNumeric {
		profile.Numeric = numericSummary(detectionSample)
	}
	return profile
}

// DetectActualType classifies a non-absent sample by testing validators in a
// fixed order and accepting the first that clears the threshold, then falls
// back on cardinality and length heuristics.
func DetectActualType(sampleValues []string) quality.SemanticType {
	if len(sampleValues) == 0 {
		return quality.TypeEmpty
	}

	checks := []struct {
		t        quality.SemanticType
		validate func(string) bool
	}{
		{quality.TypeNumeric, IsNumeric},
		{quality.TypeDate, IsDate},
		{quality.TypeBoolean, IsBoolean},
		{quality.TypeIdentifier, IsIdentifier},
	}
	total := float64(len(sampleValues))
	for _, check := range checks {
		matched := 0
		for _, v := range sampleValues {
			if check.validate(v) {
				matched++
			}
		}
		if float64(matched)/total >= typeThreshold {
			return check.t
		}
	}

	distinct := make(map[string]struct{}, len(sampleValues))
	lengthSum := 0
	for _, v := range sampleValues {
		distinct[v] = struct{}{}
		lengthSum += len(v)
	}
	if float64(len(distinct))/total < categoricalUniqueRatio {
		return quality.TypeCategorical
	}
	if float64(lengthSum)/total > longTextMeanLength {
		return quality.TypeTextLong
	}
	return quality.TypeText
}

// conformityRate implements the three-step lookup: exact match, static
// compatibility table, then direct re-validation of a sample against the
// expected type's validator.
func (inf *Inferencer) conformityRate(nonAbsent []string, expected, actual quality.SemanticType) float64 {
	if expected == actual {
		return 100
	}
	for _, compatible := range compatibleTypes[expected] {
		if actual == compatible {
			return partialConformity
		}
	}

	validate, ok := ValidatorFor(expected)
	if !ok {
		return neutralConformity
	}
	revalidation := sample(nonAbsent, inf.sampling.ConformitySize, inf.sampling.Seed)
	if len(revalidation) == 0 {
		return 0
	}
	valid := 0
	for _, v := range revalidation {
		if validate(v) {
			valid++
		}
	}
	return round1(float64(valid) / float64(len(revalidation)) * 100)
}

// numericSummary computes basic statistics over the parseable values of a
// numeric sample.
func numericSummary(sampleValues []string) *quality.NumericSummary {
	data := make([]float64, 0, len(sampleValues))
	for _, v := range sampleValues {
		if num, ok := ParseNumeric(v); ok {
			data = append(data, num)
		}
	}
	if len(data) == 0 {
		return nil
	}
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	stdDev, _ := stats.StandardDeviation(data)
	return &quality.NumericSummary{Min: min, Max: max, Mean: mean, Median: median, StdDev: stdDev}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
