package inference

import (
	"strings"

	"dqlens/domain/quality"
)

// keywordRule pairs a semantic type with the name fragments that suggest it
type keywordRule struct {
	Type     quality.SemanticType
	Keywords []string
}

// semanticKeywords is the priority-ordered table behind expected-type
// inference. First matching entry wins; there is no scoring across entries.
// Keywords cover both French and English column naming.
var semanticKeywords = []keywordRule{
	{quality.TypeNumeric, []string{
		"age", "montant", "prix", "price", "total", "score",
		"quantite", "quantity", "nombre", "amount", "cout", "cost",
		"valeur", "value", "taux", "rate",
	}},
	{quality.TypeDate, []string{
		"date", "dt", "naissance", "birth", "created", "updated",
		"modified", "expiration", "debut", "fin", "start", "end",
	}},
	{quality.TypeBoolean, []string{
		"is_", "has_", "flag", "actif", "active", "enabled",
		"valide", "valid", "confirm",
	}},
	{quality.TypeCategorical, []string{
		"type", "statut", "status", "niveau", "level", "category",
		"categorie", "classe", "class", "genre", "sexe", "gender",
	}},
	{quality.TypeIdentifier, []string{
		"id", "code", "ref", "reference", "key", "uuid",
	}},
	{quality.TypeName, []string{
		"nom", "name", "prenom", "firstname", "lastname",
		"label", "title", "designation",
	}},
}

// InferExpectedType derives the expected semantic type from a column name
// alone. Columns matching no keyword default to text.
func InferExpectedType(columnName string) quality.SemanticType {
	lower := strings.ToLower(columnName)
	for _, rule := range semanticKeywords {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Type
			}
		}
	}
	return quality.TypeText
}
