package utils

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"naija-events/internal/models"
)

var (
	numberPrinter = message.NewPrinter(language.English)

	currencySymbols = map[string]string{
		"NGN": "₦",
		"USD": "$",
		"GBP": "£",
		"EUR": "€",
	}

	nonWordRegex  = regexp.MustCompile(`[^\w ]+`)
	spaceRunRegex = regexp.MustCompile(` +`)
)

// FormatCurrency renders an amount with its currency symbol and thousands
// grouping, e.g. "₦15,000.00". An empty currency means NGN.
func FormatCurrency(amount models.Money, currency string) string {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency) + " "
	}

	sign := ""
	kobo := amount.Kobo()
	if kobo < 0 {
		sign = "-"
		kobo = -kobo
	}

	whole := numberPrinter.Sprintf("%d", kobo/int64(models.Naira))
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, whole, kobo%int64(models.Naira))
}

// Slugify lowercases text, strips punctuation and joins words with hyphens
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = nonWordRegex.ReplaceAllString(s, "")
	return spaceRunRegex.ReplaceAllString(s, "-")
}

// TruncateText shortens text to maxLength runes and appends "..."
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
