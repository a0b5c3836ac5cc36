package gate

import "strings"

// NormalizeEmail canonicalizes an email for the one-trial-per-email
// ledger. Gmail addresses additionally drop "+tag" suffixes and dots
// in the local part, and googlemail.com collapses to gmail.com, so
// cosmetic variants of the same inbox cannot claim extra trials.
func NormalizeEmail(email string) string {
	e := strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(e, "@")
	if at <= 0 || at == len(e)-1 {
		return e
	}

	local, domain := e[:at], e[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	}
	return local + "@" + domain
}
