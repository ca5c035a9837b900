package insights

import (
	"strings"

	apperrors "github.com/yanqian/text-insights/pkg/errors"
)

// ValidateInput rejects text that is empty once surrounding whitespace is removed.
// The caller keeps using the original, untrimmed text.
func ValidateInput(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.WrapStage(StageValidate, CodeEmptyInput, EmptyInputMessage, nil)
	}
	return nil
}
