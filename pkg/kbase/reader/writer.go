package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/kbase/pkg/kbase/logic"
)

// Write renders sentences in the syntax Read accepts, one per line.
func Write(w io.Writer, sentences []logic.Sentence) error {
	var b strings.Builder
	for _, s := range sentences {
		switch s := s.(type) {
		case logic.Statement:
			b.WriteString(factPrefix + " " + s.String() + "\n")
		case logic.Rule:
			b.WriteString(rulePrefix + " " + s.String() + "\n")
		default:
			return fmt.Errorf("write: unsupported sentence %T", s)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
