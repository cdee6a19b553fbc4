package menu

import "strings"

// lineBreak is the only marker removed from fragments. Closing or
// self-closing variants are left untouched.
const lineBreak = "<br>"

// Normalize turns a raw menu fragment into display text.
//
// It removes every "<br>" and then replaces every "&amp" with "&". The
// replacement does not require the trailing ';' because the upstream page
// emits the entity without it. Nothing else is changed: no trimming, no
// entity decoding, no wrapping.
func Normalize(raw string) string {
	s := strings.ReplaceAll(raw, lineBreak, "")
	return strings.ReplaceAll(s, "&amp", "&")
}
