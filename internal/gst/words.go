package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountInWords converts an amount to Indian-format rupee words, e.g.
// 23456.78 -> "Rupees Twenty Three Thousand Four Hundred and Fifty Six and
// Paise Seventy Eight Only". Paise are omitted when zero.
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "Negative " + AmountInWords(amount.Neg())
	}

	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var sb strings.Builder
	sb.WriteString("Rupees ")
	if rupees == 0 {
		sb.WriteString("Zero")
	} else {
		sb.WriteString(indianWords(rupees))
	}
	if paise > 0 {
		sb.WriteString(" and Paise ")
		sb.WriteString(underHundred(paise))
	}
	sb.WriteString(" Only")
	return sb.String()
}

// indianWords spells a positive integer using the Indian grouping of
// crores and lakhs.
func indianWords(n int64) string {
	var parts []string

	if n >= 10000000 {
		parts = append(parts, underHundred(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, underHundred(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, underHundred(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+underHundred(n))
		} else {
			parts = append(parts, underHundred(n))
		}
	}

	return strings.Join(parts, " ")
}

func underHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
