/**
 * @description
 * Normalization of caller-supplied phone strings into the bare-digit form
 * stored in the customer table's phone columns.
 */
package app

import "strings"

// CleanPhone strips every non-digit character and, for an 11-digit result
// beginning with the North American country code, drops the leading 1.
// No length validation is performed beyond that; short or long digit strings
// pass through unchanged so the datastore match simply fails to hit.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	return digits
}
