package geo

import "github.com/kaushika05/globlekay/country"

// Colour tiers from far (pale yellow) to close (dark red). A correct guess
// gets its own green so the client can highlight the answer.
var gradient = [...]string{
	"#fdd835",
	"#e8b134",
	"#d3830e",
	"#c0560a",
	"#ad2b06",
	"#9a0400",
}

const answerColour = "#00c853"

// maxDistanceKm is half the Earth's circumference, the largest possible
// separation between two countries.
const maxDistanceKm = 20038.0

// Colour classifies the proximity between a guess and the answer into a
// discrete hex colour tier.
func Colour(guess, answer country.Country) string {
	if guess.Code == answer.Code {
		return answerColour
	}
	d := Distance(guess, answer)
	closeness := 1 - d/maxDistanceKm
	if closeness < 0 {
		closeness = 0
	}
	idx := int(closeness * float64(len(gradient)))
	if idx >= len(gradient) {
		idx = len(gradient) - 1
	}
	return gradient[idx]
}
