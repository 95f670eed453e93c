package dice

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/satchel/internal/errors"
)

// ErrInvalidNotation indicates notation that does not parse as dice arithmetic.
var ErrInvalidNotation = apperrors.New(apperrors.CodeDiceInvalidNotation, "notation must be dice terms and constants joined by + or -")

// termPattern matches one signed term: either a dice spec like "2d6" (count
// optional, defaulting to 1) or a bare integer constant.
var termPattern = regexp.MustCompile(`^([+-]?)(?:(\d*)[dD](\d+)|(\d+))$`)

// Parse reads simple dice-arithmetic notation like "2d6+1d8+3" or "d20-1"
// into a Request. Terms are joined by + or -; a negative dice term subtracts
// nothing from the dice pool and is rejected.
func Parse(notation string) (Request, error) {
	compact := strings.ReplaceAll(notation, " ", "")
	if compact == "" {
		return Request{}, ErrMissingDice
	}

	// Re-insert the sign separator so "2d6+3-1" splits into signed terms.
	normalized := strings.ReplaceAll(compact, "-", "+-")
	normalized = strings.TrimPrefix(normalized, "+")

	var request Request
	for _, term := range strings.Split(normalized, "+") {
		if term == "" {
			return Request{}, ErrInvalidNotation
		}

		match := termPattern.FindStringSubmatch(term)
		if match == nil {
			return Request{}, ErrInvalidNotation
		}
		sign, countRaw, sidesRaw, constRaw := match[1], match[2], match[3], match[4]

		if constRaw != "" {
			value, err := strconv.Atoi(constRaw)
			if err != nil {
				return Request{}, ErrInvalidNotation
			}
			if sign == "-" {
				value = -value
			}
			request.Modifier += value
			continue
		}

		if sign == "-" {
			return Request{}, ErrInvalidNotation
		}
		count := 1
		if countRaw != "" {
			parsed, err := strconv.Atoi(countRaw)
			if err != nil {
				return Request{}, ErrInvalidNotation
			}
			count = parsed
		}
		sides, err := strconv.Atoi(sidesRaw)
		if err != nil {
			return Request{}, ErrInvalidNotation
		}
		if count <= 0 || sides <= 0 {
			return Request{}, ErrInvalidDiceSpec
		}

		request.Dice = append(request.Dice, Spec{Sides: sides, Count: count})
	}

	if len(request.Dice) == 0 {
		return Request{}, ErrMissingDice
	}
	return request, nil
}

// Notation renders a request back into canonical notation.
func Notation(request Request) string {
	var b strings.Builder
	for i, spec := range request.Dice {
		if i > 0 {
			b.WriteString("+")
		}
		b.WriteString(strconv.Itoa(spec.Count))
		b.WriteString("d")
		b.WriteString(strconv.Itoa(spec.Sides))
	}
	if request.Modifier > 0 {
		b.WriteString("+")
		b.WriteString(strconv.Itoa(request.Modifier))
	}
	if request.Modifier < 0 {
		b.WriteString(strconv.Itoa(request.Modifier))
	}
	return b.String()
}
