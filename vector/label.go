package vector

import "fmt"

// Label is the class of a document.
type Label string

const (
	Ham  Label = "ham"
	Spam Label = "spam"
)

// Labels lists the classes in the order they are vectorized and declared.
var Labels = []Label{Ham, Spam}

func (l Label) String() string {
	return string(l)
}

// ParseLabel returns the Label named s.
func ParseLabel(s string) (Label, error) {
	switch Label(s) {
	case Ham, Spam:
		return Label(s), nil
	default:
		return "", fmt.Errorf("vector: unknown label %q", s)
	}
}
