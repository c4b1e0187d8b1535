package bean

import (
	"fmt"
	"strings"

	"github.com/rpggio/brewlog/internal/domain/day"
)

// ValidateCreateInput checks a registration request and returns the roast
// date in canonical form.
func ValidateCreateInput(req CreateRequest) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	roastDate, ok := day.Normalize(req.RoastDate)
	if !ok {
		return "", fmt.Errorf("%w: roast date %q is not a YYYY-MM-DD date", ErrInvalidInput, req.RoastDate)
	}
	return roastDate, nil
}
