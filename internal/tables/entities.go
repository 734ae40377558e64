package tables

// HTMLNamed maps a code point to its HTML4/5 named entity (without the
// surrounding "&" / ";"). This is a representative subset of the ~2000
// entries in the public named-character-references table — common Latin,
// symbol, and Greek entries — per the package-level fidelity note;
// html_named falls back to a numeric reference on miss (spec §4.2).
var HTMLNamed = map[rune]string{
	0x00A0: "nbsp", 0x00A1: "iexcl", 0x00A2: "cent", 0x00A3: "pound",
	0x00A4: "curren", 0x00A5: "yen", 0x00A6: "brvbar", 0x00A7: "sect",
	0x00A9: "copy", 0x00AB: "laquo", 0x00AE: "reg", 0x00B0: "deg",
	0x00B1: "plusmn", 0x00B5: "micro", 0x00B6: "para", 0x00BB: "raquo",
	0x00BC: "frac14", 0x00BD: "frac12", 0x00BE: "frac34", 0x00BF: "iquest",
	0x00C0: "Agrave", 0x00C1: "Aacute", 0x00C2: "Acirc", 0x00C9: "Eacute",
	0x00D6: "Ouml", 0x00DC: "Uuml", 0x00DF: "szlig", 0x00E0: "agrave",
	0x00E1: "aacute", 0x00E7: "ccedil", 0x00E8: "egrave", 0x00E9: "eacute",
	0x00EA: "ecirc", 0x00EB: "euml", 0x00EE: "icirc", 0x00F1: "ntilde",
	0x00F3: "oacute", 0x00F6: "ouml", 0x00F7: "divide", 0x00FA: "uacute",
	0x00FC: "uuml", 0x0152: "OElig", 0x0153: "oelig", 0x0160: "Scaron",
	0x0161: "scaron", 0x0178: "Yuml", 0x2013: "ndash", 0x2014: "mdash",
	0x2018: "lsquo", 0x2019: "rsquo", 0x201C: "ldquo", 0x201D: "rdquo",
	0x2020: "dagger", 0x2021: "Dagger", 0x2022: "bull", 0x2026: "hellip",
	0x2030: "permil", 0x2039: "lsaquo", 0x203A: "rsaquo", 0x20AC: "euro",
	0x2122: "trade", 0x2190: "larr", 0x2191: "uarr", 0x2192: "rarr",
	0x2193: "darr", 0x2194: "harr", 0x2260: "ne", 0x2264: "le", 0x2265: "ge",
	0x221E: "infin", 0x2211: "sum", 0x222B: "int", 0x221A: "radic",
	0x0391: "Alpha", 0x0392: "Beta", 0x0393: "Gamma", 0x0394: "Delta",
	0x03B1: "alpha", 0x03B2: "beta", 0x03B3: "gamma", 0x03B4: "delta",
	0x03C0: "pi", 0x03A3: "Sigma", 0x03C3: "sigma", 0x03A9: "Omega",
	0x03C9: "omega", 0x2665: "hearts", 0x2660: "spades", 0x2663: "clubs",
	0x2666: "diams",
}

// UnicodeName is a small stand-in for the full Unicode Character Database
// name table, used by the python_named_escape encode strategy. Falls back
// to a \UXXXXXXXX escape on miss.
var UnicodeName = map[rune]string{
	0x03C0: "GREEK SMALL LETTER PI",
	0x20AC: "EURO SIGN",
	0x2764: "HEAVY BLACK HEART",
	0x00E9: "LATIN SMALL LETTER E WITH ACUTE",
	0x2603: "SNOWMAN",
}

// Transliterate maps a code point to its closest plain-ASCII equivalent,
// standing in for the full Latin/Greek/Cyrillic/symbol transliteration
// table (spec §4.2 "transliteration"); falls back to "?" on miss.
var Transliterate = map[rune]string{
	0x00E0: "a", 0x00E1: "a", 0x00E2: "a", 0x00E3: "a", 0x00E4: "a", 0x00E5: "a",
	0x00E8: "e", 0x00E9: "e", 0x00EA: "e", 0x00EB: "e",
	0x00EC: "i", 0x00ED: "i", 0x00EE: "i", 0x00EF: "i",
	0x00F2: "o", 0x00F3: "o", 0x00F4: "o", 0x00F5: "o", 0x00F6: "o",
	0x00F9: "u", 0x00FA: "u", 0x00FB: "u", 0x00FC: "u",
	0x00F1: "n", 0x00E7: "c", 0x00DF: "ss",
	0x0391: "A", 0x0392: "B", 0x0393: "G", 0x0394: "D", 0x0395: "E",
	0x03B1: "a", 0x03B2: "b", 0x03B3: "g", 0x03B4: "d", 0x03B5: "e",
	0x03C0: "p", 0x03C3: "s", 0x03C9: "o",
	0x0410: "A", 0x0411: "B", 0x0412: "V", 0x0413: "G", 0x0414: "D",
	0x0430: "a", 0x0431: "b", 0x0432: "v", 0x0433: "g", 0x0434: "d",
	0x2018: "'", 0x2019: "'", 0x201C: "\"", 0x201D: "\"",
	0x2013: "-", 0x2014: "-", 0x2026: "...",
	0x20AC: "EUR",
}
