package errs

import (
	"fmt"
	"strings"
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize renders a value for an error message and keeps the message on a single line.
func sanitize(v any) string {
	return newlineReplacer.Replace(fmt.Sprintf("%v", v))
}
