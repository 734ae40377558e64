package strategy

import "strings"

// Punycode bootstring parameters, RFC 3492 §5.
const (
	punyBase        = 36
	punyTMin        = 1
	punyTMax        = 26
	punySkew        = 38
	punyDamp        = 700
	punyInitialBias = 72
	punyInitialN    = 128
)

func punyAdapt(delta, numPoints int, firstTime bool) int {
	if firstTime {
		delta /= punyDamp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := 0
	for delta > ((punyBase-punyTMin)*punyTMax)/2 {
		delta /= punyBase - punyTMin
		k += punyBase
	}
	return k + (((punyBase-punyTMin+1)*delta)/(delta+punySkew))
}

func punyDigit(d int) byte {
	if d < 26 {
		return byte('a' + d)
	}
	return byte('0' + d - 26)
}

// punycodeEncode implements RFC 3492's generalized variable-length
// integer encoding of a sequence of code points into an ASCII label. If
// every input code point is already ASCII, the plain lowercase string is
// returned with no "xn--" prefix (spec §4.2 "if all inputs are ASCII,
// lowercases them directly").
func punycodeEncode(input []rune) string {
	var basic []rune
	for _, r := range input {
		if r < 0x80 {
			basic = append(basic, toLowerASCII(r))
		}
	}
	if len(basic) == len(input) {
		return string(basic)
	}

	var out strings.Builder
	out.WriteString(string(basic))
	if len(basic) > 0 {
		out.WriteByte('-')
	}

	n := punyInitialN
	bias := punyInitialBias
	delta := 0
	h := len(basic)
	first := true

	for h < len(input) {
		m := int(maxRuneAbove(input, n))
		delta += (m - n) * (h + 1)
		n = m

		for _, r := range input {
			cp := int(r)
			if cp < n {
				delta++
			}
			if cp == n {
				q := delta
				for k := punyBase; ; k += punyBase {
					t := clampT(k, bias)
					if q < t {
						out.WriteByte(punyDigit(q))
						break
					}
					out.WriteByte(punyDigit(t + (q-t)%(punyBase-t)))
					q = (q - t) / (punyBase - t)
				}
				bias = punyAdapt(delta, h+1, first)
				first = false
				delta = 0
				h++
			}
		}
		delta++
		n++
	}
	return out.String()
}

func clampT(k, bias int) int {
	t := k - bias
	if t < punyTMin {
		return punyTMin
	}
	if t > punyTMax {
		return punyTMax
	}
	return t
}

// maxRuneAbove returns the smallest code point in input that is >= floor
// (RFC 3492's loop variable "m", confusingly named for the minimum of the
// remaining-to-encode set — see RFC 3492 §3.3).
func maxRuneAbove(input []rune, floor int) rune {
	min := rune(-1)
	for _, r := range input {
		if int(r) >= floor && (min == -1 || r < min) {
			min = r
		}
	}
	return min
}

func toLowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Punycode encodes a single missing code point with the "xn--" ACE
// prefix, as used by the punycode encode strategy (spec §4.2, example
// "π" -> "xn--1xa").
func Punycode(cp rune) string {
	return "xn--" + punycodeEncode([]rune{cp})
}
