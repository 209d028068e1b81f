package oddsmonitor

import "strings"

// displayNames maps raw provider bookmaker identifiers to their
// display names. "SO" variants are the same house restricted to
// sign-up offers.
var displayNames = map[string]string{
	"7k":                "7K",
	"aposta1":           "Aposta1",
	"aposta1so":         "Aposta1 SO",
	"bet365":            "Bet365",
	"bet365so":          "Bet365 SO",
	"betano":            "Betano",
	"betanoso":          "Betano SO",
	"betbraso":          "BetBra SO",
	"betnacional":       "Betnacional",
	"betnacionalso":     "Betnacional SO",
	"betsul":            "Betsul",
	"br4":               "Br4",
	"esportesdasorte":   "Esportes da Sorte",
	"esportesdasorteso": "Esportes da Sorte SO",
	"esportiva":         "Esportiva",
	"estrelabet":        "Estrelabet",
	"estrelabetso":      "Estrelabet SO",
	"kto":               "KTO",
	"ktoso":             "KTO SO",
	"lotogreen":         "Lotogreen",
	"mcgames":           "MC Games",
	"novibet":           "Novibet",
	"pixbet":            "Pixbet",
	"pixbetso":          "Pixbet SO",
	"sortenabet":        "Sortenabet",
	"sportingbet":       "Sportingbet",
	"stake":             "Stake",
	"stakeso":           "Stake SO",
	"superbet":          "Superbet",
	"vaidebetso":        "Vaidebet SO",
}

// BookmakerDisplayName resolves a raw bookmaker identifier to its
// display name, falling back to a title-cased form of the raw id.
func BookmakerDisplayName(raw string) string {
	if name, ok := displayNames[raw]; ok {
		return name
	}
	return titleCase(raw)
}

func titleCase(v string) string {
	words := strings.Fields(v)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
