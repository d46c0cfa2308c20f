package importer

import (
	"strings"
	"unicode"

	"github.com/raushankrgupta/virtual-closet/models"
)

var (
	topWords = []string{
		"shirt", "tshirt", "tee", "top", "blouse", "sweater", "sweatshirt", "hoodie",
		"jacket", "coat", "cardigan", "kurta", "kurti", "polo", "tank", "vest", "blazer", "tunic",
	}
	bottomWords = []string{
		"jean", "jeans", "trouser", "pant", "pants", "short", "shorts", "skirt", "legging",
		"chino", "jogger", "trackpant", "cargo", "palazzo", "capri",
	}
)

// GuessCategory picks a garment category from product text. Tops win ties;
// anything unrecognised is an extra.
func GuessCategory(texts ...string) models.Category {
	var tokens []string
	for _, t := range texts {
		tokens = append(tokens, strings.FieldsFunc(strings.ToLower(t), func(r rune) bool {
			return !unicode.IsLetter(r)
		})...)
	}
	if matchesAny(tokens, topWords) {
		return models.CategoryTops
	}
	if matchesAny(tokens, bottomWords) {
		return models.CategoryBottoms
	}
	return models.CategoryExtra
}

func matchesAny(tokens, words []string) bool {
	for _, tok := range tokens {
		for _, w := range words {
			if tok == w || tok == w+"s" || tok == w+"es" {
				return true
			}
		}
	}
	return false
}
