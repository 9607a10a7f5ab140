package shell

import "strings"

var appleScriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// escapeAppleScript escapes backslashes and double quotes so text can be
// embedded in an AppleScript string literal.
func escapeAppleScript(s string) string {
	return appleScriptEscaper.Replace(s)
}
