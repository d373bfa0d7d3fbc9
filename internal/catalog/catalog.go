// Package catalog holds the selectable industries and Lebanese areas along
// with the neighbourhood mapping used for area filtering.
package catalog

import (
	"fmt"
	"strings"

	"github.com/antzucaro/matchr"
)

// MaxResults bounds how many listings a single run may collect.
const MaxResults = 500

// DefaultResults is used when a request omits max results.
const DefaultResults = 5

// Areas are the main areas offered in the UI.
var Areas = []string{
	"Beirut", "Tripoli", "Sidon (Saida)", "Tyre (Sour)", "Jounieh", "Zahle",
	"Nabatieh", "Baalbek", "Byblos (Jbeil)", "Batroun", "Aley", "Bhamdoun", "Broummana",
}

// Industries are the business categories offered in the UI.
var Industries = []string{
	"Real Estate Companies", "Roofing Contractors", "Dentists", "Restaurants",
	"Law Firms", "Hotels", "Hospitals", "Supermarkets", "Pharmacies",
	"Schools", "Universities", "Gyms", "Car Rental", "Travel Agencies", "Banks", "Travel Agency",
}

// mappedAreas fixes the iteration order over SubAreas.
var mappedAreas = []string{
	"Beirut", "Tripoli", "Jounieh", "Sidon (Saida)", "Tyre (Sour)", "Zahle", "Byblos (Jbeil)", "Metn",
}

// SubAreas maps a main area to its neighbourhoods.
var SubAreas = map[string][]string{
	"Beirut": {
		"Achrafieh", "Sioufi", "Sodeco", "Monot", "Furn El Hayek",
		"Gemmayze", "Mar Mikhael", "Geitawi",
		"Downtown", "Solidere", "Saifi Village", "Nejmeh Square",
		"Badaro", "Mathaf", "Horsh Beirut", "Hippodrome",
		"Hamra", "Ras Beirut", "Manara", "Ain El Mreisseh",
		"Verdun", "Raouche", "Dar El Mreisseh",
		"Ramlet El Bayda",
		"Corniche El Mazraa", "Mazraa",
		"Mousaitbeh", "Tallet El Druze",
		"Cola", "Barbir", "Salim Salam",
		"Tariq El Jdideh", "Qasqas", "Jnah", "Bir Hassan",
		"Furn El Chebbak", "Ain El Remmaneh",
		"Chiyah", "Ghobeiry",
		"Haret Hreik", "Burj Al Barajneh", "Dahieh",
		"Laylaki", "Ouzai", "Hay El Sellom",
		"Hazmieh", "Sin El Fil", "Horsh Tabet",
		"Dekwaneh", "Mkalles", "Mansourieh",
	},
	"Tripoli": {
		"Mina", "El Mina Port",
		"Dam & Farez", "Abou Samra",
		"Qobbeh", "Bab El Tabbaneh",
		"Jabal Mohsen",
		"Azmi", "Maarad",
		"Tell", "Bahsas",
		"Beddawi Camp",
	},
	"Jounieh": {
		"Kaslik", "Sarba", "Ghadir",
		"Haret Sakher",
		"Sahel Alma",
		"Maameltein",
		"Adma", "Adma Fawar",
		"Zouk Mikael", "Zouk Mosbeh",
	},
	"Sidon (Saida)": {
		"Saida Old City", "Abra", "Hara Saida", "Majdelyoun",
		"Hilaliyeh", "Bramieh", "Mieh Mieh Camp",
	},
	"Tyre (Sour)": {
		"Sour Old City", "Abbasiyeh", "Burj Chemali", "Jal Al Bahr",
		"Hosh", "Rashidiyeh Camp", "Bass",
	},
	"Zahle": {
		"Zahle Center", "Haouch El Omara", "Ksara", "Maalaqa",
		"Chtaura", "Saadnayel", "Taalabaya",
	},
	"Byblos (Jbeil)": {
		"Jbeil Old Souk", "Amchit", "Blat", "Edde",
		"Mastita", "Hboub", "Voie 13",
	},
	"Metn": {
		"Jdeideh", "Bauchrieh", "Sadd El Bauchrieh", "Sin El Fil",
		"Horsh Tabet", "Dekwaneh", "Mkalles", "Dora",
		"Dbayeh", "Zalka", "Jal El Dib", "Antelias", "Naccache",
		"Rabieh", "Mtayleb", "Broummana", "Beit Mery", "Baabdat",
		"Bikfaya", "Ain Saadeh", "Cornet Chehwan", "Fanar",
	},
}

const (
	industryThreshold = 0.85
	areaThreshold     = 0.88
)

// AreaFilter describes which address mentions satisfy a queried area.
type AreaFilter struct {
	Area     string   `json:"area"`
	Required string   `json:"required"`
	Aliases  []string `json:"aliases"`
	Allowed  []string `json:"allowed"`
	Excluded []string `json:"excluded"`
}

// StrictName strips a parenthesised alias: "Sidon (Saida)" becomes "Sidon".
func StrictName(area string) string {
	if idx := strings.Index(area, "("); idx >= 0 {
		return strings.TrimSpace(area[:idx])
	}
	return strings.TrimSpace(area)
}

// Aliases returns the strict name followed by any parenthesised alias.
func Aliases(area string) []string {
	out := []string{StrictName(area)}
	open := strings.Index(area, "(")
	end := strings.LastIndex(area, ")")
	if open >= 0 && end > open {
		if alias := strings.TrimSpace(area[open+1 : end]); alias != "" {
			out = append(out, alias)
		}
	}
	return out
}

// CanonicalArea resolves user input to a known main area display name.
func CanonicalArea(input string) (string, bool) {
	key := Normalize(input)
	if key == "" {
		return "", false
	}
	for _, area := range mainAreas() {
		if Normalize(area) == key {
			return area, true
		}
		for _, alias := range Aliases(area) {
			if Normalize(alias) == key {
				return area, true
			}
		}
	}
	return "", false
}

// CanonicalIndustry resolves user input to a known industry.
func CanonicalIndustry(input string) (string, bool) {
	key := Normalize(input)
	if key == "" {
		return "", false
	}
	for _, industry := range Industries {
		if Normalize(industry) == key {
			return industry, true
		}
	}
	return "", false
}

// Resolve builds the area filter for a main area. Unknown areas still resolve
// to a strict filter without neighbourhoods.
func Resolve(area string) AreaFilter {
	display := strings.TrimSpace(area)
	if canonical, ok := CanonicalArea(area); ok {
		display = canonical
	}

	filter := AreaFilter{
		Area:     display,
		Required: StrictName(display),
		Aliases:  Aliases(display),
	}
	filter.Allowed = append(filter.Allowed, filter.Aliases...)
	filter.Allowed = append(filter.Allowed, SubAreas[display]...)

	allowed := make(map[string]struct{}, len(filter.Allowed))
	for _, a := range filter.Allowed {
		allowed[Normalize(a)] = struct{}{}
	}
	for _, other := range mainAreas() {
		if Normalize(StrictName(other)) == Normalize(filter.Required) {
			continue
		}
		for _, alias := range Aliases(other) {
			if _, ok := allowed[Normalize(alias)]; ok {
				continue
			}
			filter.Excluded = append(filter.Excluded, alias)
		}
	}
	return filter
}

// SearchQuery builds the maps search string for an industry and area.
func SearchQuery(industry, area string) string {
	return fmt.Sprintf("%s in %s, Lebanon", strings.TrimSpace(industry), strings.TrimSpace(area))
}

// NeighbourhoodQuery narrows the search to a neighbourhood of area.
func NeighbourhoodQuery(industry, subArea, area string) string {
	subArea = strings.TrimSpace(subArea)
	if subArea == "" {
		return SearchQuery(industry, area)
	}
	return fmt.Sprintf("%s in %s, %s, Lebanon", strings.TrimSpace(industry), subArea, strings.TrimSpace(area))
}

// MatchIndustry returns the catalog industry closest to input.
func MatchIndustry(input string) (string, bool) {
	if industry, ok := CanonicalIndustry(input); ok {
		return industry, true
	}
	key := Normalize(input)
	if key == "" {
		return "", false
	}

	var best string
	var bestScore float64
	for _, industry := range Industries {
		score := matchr.JaroWinkler(key, Normalize(industry), false)
		if score > bestScore {
			bestScore = score
			best = industry
		}
	}
	if bestScore < industryThreshold {
		return "", false
	}
	return best, true
}

// MatchArea resolves input to a main area, and to a neighbourhood when the
// input names one.
func MatchArea(input string) (area, subArea string, ok bool) {
	if canonical, found := CanonicalArea(input); found {
		return canonical, "", true
	}
	key := Normalize(input)
	if key == "" {
		return "", "", false
	}

	for _, parent := range mappedAreas {
		for _, sub := range SubAreas[parent] {
			if Normalize(sub) == key {
				return parent, sub, true
			}
		}
	}

	var bestScore float64
	for _, parent := range mainAreas() {
		for _, alias := range Aliases(parent) {
			if score := matchr.JaroWinkler(key, Normalize(alias), false); score > bestScore {
				bestScore, area, subArea = score, parent, ""
			}
		}
	}
	for _, parent := range mappedAreas {
		for _, sub := range SubAreas[parent] {
			if score := matchr.JaroWinkler(key, Normalize(sub), false); score > bestScore {
				bestScore, area, subArea = score, parent, sub
			}
		}
	}
	if bestScore < areaThreshold {
		return "", "", false
	}
	return area, subArea, true
}

// mainAreas lists UI areas followed by mapped areas absent from the UI list.
func mainAreas() []string {
	out := append([]string(nil), Areas...)
	for _, mapped := range mappedAreas {
		found := false
		for _, area := range Areas {
			if area == mapped {
				found = true
				break
			}
		}
		if !found {
			out = append(out, mapped)
		}
	}
	return out
}
