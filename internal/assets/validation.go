package assets

import (
	"fmt"
	"regexp"
)

// styleName is the shape of a file stem under styles/: letters, digits,
// '-' and '_', starting with a letter or digit.
var styleName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateStyleName checks that name can be looked up as styles/<name>.css
// without leaving the styles directory or changing the extension.
func ValidateStyleName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !styleName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
