package typing

// CharClass is the display classification of one passage character.
type CharClass int

const (
	// Untyped means the input has no character at this position yet.
	Untyped CharClass = iota
	// Correct means the typed character equals the passage character.
	Correct
	// Incorrect means a character was typed here and it differs.
	Incorrect
)

func (c CharClass) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "untyped"
	}
}

// Classify compares typed against passage rune by rune and returns one
// class per passage rune. Typed runes past the end of the passage are
// ignored.
func Classify(passage, typed string) []CharClass {
	target := []rune(passage)
	input := []rune(typed)
	out := make([]CharClass, len(target))
	for i, r := range target {
		switch {
		case i >= len(input):
			out[i] = Untyped
		case input[i] == r:
			out[i] = Correct
		default:
			out[i] = Incorrect
		}
	}
	return out
}
