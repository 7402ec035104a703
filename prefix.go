package staffdir

// DefaultMaxResults is the most results the GSA directory returns for a query.
const DefaultMaxResults = 250

// Letters is the charset for the first character of a surname prefix.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ExtendedLetters is the charset past the first character. Surnames such
// as O'Brien and Day-Lewis carry apostrophes and hyphens.
const ExtendedLetters = Letters + "'-"

// Charset returns the characters to try after stem.
func Charset(stem string) string {
	if stem == "" {
		return Letters
	}
	return ExtendedLetters
}
