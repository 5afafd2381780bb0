package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "Ten", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy",
	"Eighty", "Ninety",
}

// AmountInWords spells a rupee amount for invoice printing, using Indian
// long-scale numbering (Thousand, Lakh, Crore).
//
//	3528.00 -> "Three Thousand Five Hundred Twenty Eight Rupees Only"
//	100.50  -> "One Hundred Rupees and Fifty Paise Only"
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var b strings.Builder
	b.WriteString(NumberInWords(rupees))
	b.WriteString(" Rupees")
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(NumberInWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// NumberInWords converts a non-negative integer into Indian-system words.
// Lakh and thousand segments are two digits at most; crores recurse so
// arbitrarily large amounts read as "... Crore ...".
func NumberInWords(n int64) string {
	if n <= 0 {
		return "Zero"
	}

	var parts []string
	if crore := n / 1_00_00_000; crore > 0 {
		parts = append(parts, NumberInWords(crore), "Crore")
		n %= 1_00_00_000
	}
	if lakh := n / 1_00_000; lakh > 0 {
		parts = append(parts, belowHundredWords(lakh), "Lakh")
		n %= 1_00_000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, belowHundredWords(thousand), "Thousand")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundredWords(n))
	}
	return strings.Join(parts, " ")
}

func belowHundredWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
