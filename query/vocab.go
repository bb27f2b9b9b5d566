package query

// stateVocab maps state spellings straight to the site's location values.
// Only common states get fast-path entries; anything else rides through as
// raw text for the dropdown matcher to resolve against the live options.
var stateVocab = map[string]string{
	"tx": "United States|TX", "texas": "United States|TX",
	"ca": "United States|CA", "california": "United States|CA",
	"ny": "United States|NY", "new york": "United States|NY",
	"ok": "United States|OK", "oklahoma": "United States|OK",
	"ks": "United States|KS", "kansas": "United States|KS",
	"ne": "United States|NE", "nebraska": "United States|NE",
	"mo": "United States|MO", "missouri": "United States|MO",
	"ia": "United States|IA", "iowa": "United States|IA",
	"mt": "United States|MT", "montana": "United States|MT",
}

// sexVocab maps sex words to the radio values the forms expect.
var sexVocab = map[string]string{
	"bull": "B", "bulls": "B", "male": "B", "males": "B",
	"female": "C", "females": "C", "cow": "C", "cows": "C",
	"both": "",
}

// traitVocab maps trait spellings to the canonical trait keys used by the
// EPD filter. Longer aliases are tried before shorter ones so "weaning
// weight" never half-matches as a bare token.
var traitVocab = []struct {
	Alias string
	Key   string
}{
	{"calving ease direct", "ced"},
	{"calving ease maternal", "cem"},
	{"ce direct", "ced"},
	{"ce maternal", "cem"},
	{"birth weight", "bw"},
	{"weaning weight", "ww"},
	{"yearling weight", "yw"},
	{"maternal milk", "milk"},
	{"carcass weight", "cw"},
	{"ribeye area", "rea"},
	{"fat thickness", "fat"},
	{"yield grade", "yg"},
	{"stayability", "st"},
	{"marbling", "marb"},
	{"f index", "f"},
	{"$cez", "cez"},
	{"$bmi", "bmi"},
	{"$cpi", "cpi"},
	{"ced", "ced"},
	{"cem", "cem"},
	{"milk", "milk"},
	{"cez", "cez"},
	{"bmi", "bmi"},
	{"cpi", "cpi"},
	{"rea", "rea"},
	{"fat", "fat"},
	{"mk", "milk"},
	{"bw", "bw"},
	{"ww", "ww"},
	{"yw", "yw"},
	{"st", "st"},
	{"yg", "yg"},
	{"cw", "cw"},
	{"mb", "marb"},
	{"$f", "f"},
}
