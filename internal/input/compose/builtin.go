package compose

import "github.com/dshills/keyloom/internal/input/keysym"

// diacritics drives the builtin dead-key matrix. pairs packs
// base/composed rune pairs; punct is the Multi_key shorthand for the
// accent and spacing its standalone form (dead+space, doubled dead).
var diacritics = []struct {
	dead    keysym.Symbol
	punct   rune
	spacing rune
	pairs   string
}{
	{keysym.DeadGrave, '`', '`', "aàeèiìoòuùAÀEÈIÌOÒUÙ"},
	{keysym.DeadAcute, '\'', '´', "aáeéiíoóuúyýcćsśzźAÁEÉIÍOÓUÚYÝCĆSŚZŹ"},
	{keysym.DeadCircumflex, '^', '^', "aâeêiîoôuûAÂEÊIÎOÔUÛ"},
	{keysym.DeadTilde, '~', '~', "aãnñoõAÃNÑOÕ"},
	{keysym.DeadDiaeresis, '"', '¨', "aäeëiïoöuüyÿAÄEËIÏOÖUÜ"},
	{keysym.DeadAbovering, 'o', '°', "aåuůAÅUŮ"},
	{keysym.DeadCedilla, ',', '¸', "cçsşCÇSŞ"},
	{keysym.DeadCaron, 0, 'ˇ', "cčeěrřsšzžCČEĚRŘSŠZŽ"},
	{keysym.DeadMacron, 0, '¯', "aāeēiīoōuūAĀEĒIĪOŌUŪ"},
	{keysym.DeadBreve, 0, '˘', "aăgğAĂGĞ"},
	{keysym.DeadAbovedot, 0, '˙', "eėzżEĖZŻ"},
	{keysym.DeadDoubleacute, 0, '˝', "oőuűOŐUŰ"},
	{keysym.DeadOgonek, 0, '˛', "aąeęAĄEĘ"},
	{keysym.DeadStroke, 0, '/', "dđlłoøDĐLŁOØ"},
}

// multiBasics are the Multi_key staples: each entry is the rune
// sequence after Multi_key and the text it composes.
var multiBasics = []struct {
	seq  string
	text string
}{
	{"oc", "©"},
	{"or", "®"},
	{"tm", "™"},
	{"ss", "ß"},
	{"<<", "«"},
	{">>", "»"},
	{"c=", "€"},
	{"e=", "€"},
	{"oo", "°"},
	{"+-", "±"},
	{"12", "½"},
	{"14", "¼"},
	{"34", "¾"},
	{"??", "¿"},
	{"!!", "¡"},
	{"..", "…"},
	{"---", "—"},
	{"--.", "–"},
}

// localeExtras adds locale-flavored Multi_key sequences on top of the
// builtin set. Keys are base language subtags.
var localeExtras = map[string][]struct {
	seq  string
	text string
}{
	"fr": {
		{"oe", "œ"},
		{"OE", "Œ"},
	},
	"de": {
		{`,"`, "„"},
		{`<"`, "“"},
		{`>"`, "”"},
	},
	"es": {
		{"a_", "ª"},
		{"o_", "º"},
	},
}

// Builtin builds the neutral compose table: the dead-key diacritics
// matrix, their Multi_key shorthands and the Multi_key staples.
func Builtin() *Table {
	t := NewTable("builtin")
	addBuiltin(t)
	return t
}

func addBuiltin(t *Table) {
	for _, d := range diacritics {
		runes := []rune(d.pairs)
		for i := 0; i+1 < len(runes); i += 2 {
			base, composed := runes[i], runes[i+1]
			mustAdd(t, []keysym.Symbol{d.dead, keysym.FromRune(base)}, composed)
			if d.punct != 0 {
				mustAdd(t, []keysym.Symbol{keysym.MultiKey, keysym.FromRune(d.punct), keysym.FromRune(base)}, composed)
			}
		}
		if d.spacing != 0 {
			mustAdd(t, []keysym.Symbol{d.dead, keysym.FromRune(' ')}, d.spacing)
			mustAdd(t, []keysym.Symbol{d.dead, d.dead}, d.spacing)
		}
	}
	for _, m := range multiBasics {
		addMulti(t, m.seq, m.text)
	}
}

func addMulti(t *Table, seq, text string) {
	syms := []keysym.Symbol{keysym.MultiKey}
	for _, r := range seq {
		syms = append(syms, keysym.FromRune(r))
	}
	mustAdd(t, syms, []rune(text)[0])
}

func mustAdd(t *Table, seq []keysym.Symbol, composed rune) {
	if err := t.Add(seq, string(composed), keysym.FromRune(composed)); err != nil {
		panic("compose: builtin sequence: " + err.Error())
	}
}
