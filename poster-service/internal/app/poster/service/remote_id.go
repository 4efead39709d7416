package service

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

const remoteIDPrefix = "remote-"

// remoteProductID строит стабильный ID товара crawler.
// Формат совпадает с уже выданными ID: "remote-" + беззнаковый 32-битный
// полиномиальный хеш (основание 31 по UTF-16) строки url|name|price.
func remoteProductID(url, name string, current float64) string {
	key := url + "|" + name + "|" + formatHashPrice(current)
	return remoteIDPrefix + strconv.FormatUint(uint64(uint32(stringHash(key))), 10)
}

func isRemoteID(id string) bool {
	return strings.HasPrefix(id, remoteIDPrefix)
}

// stringHash: h = 31*h + c с переполнением int32
func stringHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = 31*h + int32(u)
	}
	return h
}

// formatHashPrice печатает цену так же, как её печатали при выдаче старых ID:
// "10.0", "2.95", "1.0E7", "1.0E-4".
func formatHashPrice(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	abs := math.Abs(v)
	if abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	// 1.5E+07 -> 1.5E7, 1E-04 -> 1.0E-4
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	sign := ""
	if strings.HasPrefix(exp, "-") {
		sign = "-"
	}
	exp = strings.TrimLeft(exp, "+-")
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "E" + sign + exp
}
