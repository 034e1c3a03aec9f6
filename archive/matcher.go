package archive

import "regexp"

// Matcher selects archive entries by name. The whole name must match the
// expression.
type Matcher struct {
	expr string
	re   *regexp.Regexp
}

// Compile returns a Matcher for expr.
func Compile(expr string) (Matcher, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Matcher{}, err
	}
	return Matcher{expr: expr, re: re}, nil
}

// MustCompile is like Compile but panics if expr does not compile.
func MustCompile(expr string) Matcher {
	m, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether name matches.
func (m Matcher) Match(name string) bool {
	return m.re != nil && m.re.MatchString(name)
}

func (m Matcher) String() string {
	return m.expr
}

// TextEntries matches every name ending in "txt".
var TextEntries = MustCompile(`.*txt`)

// LabelEntries matches names ending in "<label>" followed by any character
// and "txt", such as "0001.ham.txt".
func LabelEntries(label string) Matcher {
	return MustCompile(`.*` + label + `.txt`)
}
