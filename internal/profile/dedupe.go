package profile

import "strings"

// DedupePolicy controls how contacts without an email are treated during
// deduplication. The difference is explicit because both behaviors exist
// across the admin views: the contact list keeps emailless rows, the
// outreach export requires a usable address.
type DedupePolicy int

const (
	// KeepEmailless keeps contacts with no email as distinct rows in
	// arrival order; only emailed contacts are merged.
	KeepEmailless DedupePolicy = iota
	// RequireEmail drops contacts that have no email at all.
	RequireEmail
)

// normalizeEmail trims and lower-cases for identity comparison.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hasIdentity reports whether a contact carries any identifying field.
func hasIdentity(c ContactPerson) bool {
	for _, f := range []*string{
		c.Name, c.Email, c.SecondaryEmail, c.Phone, c.Fax,
		c.LinkedIn, c.Twitter, c.Region,
	} {
		if f != nil && strings.TrimSpace(*f) != "" {
			return true
		}
	}
	return false
}

// contactEmail returns the contact's identity email, preferring the
// primary address.
func contactEmail(c ContactPerson) string {
	if c.Email != nil {
		if e := normalizeEmail(*c.Email); e != "" {
			return e
		}
	}
	if c.SecondaryEmail != nil {
		return normalizeEmail(*c.SecondaryEmail)
	}
	return ""
}

// DedupeContacts drops contacts with no identifying information, then
// merges the remainder by normalized email. On collision the earliest-seen
// row wins, keeping output stable with respect to fetch order.
func DedupeContacts(contacts []ContactPerson, policy DedupePolicy) []ContactPerson {
	seen := make(map[string]bool, len(contacts))
	out := make([]ContactPerson, 0, len(contacts))

	for _, c := range contacts {
		if !hasIdentity(c) {
			continue
		}
		email := contactEmail(c)
		if email == "" {
			if policy == RequireEmail {
				continue
			}
			out = append(out, c)
			continue
		}
		if seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, c)
	}
	return out
}

// DedupeEmails keeps at most one CompanyEmail per normalized address,
// earliest first. Rows without an address are dropped.
func DedupeEmails(emails []CompanyEmail) []CompanyEmail {
	seen := make(map[string]bool, len(emails))
	out := make([]CompanyEmail, 0, len(emails))

	for _, e := range emails {
		if e.Email == nil {
			continue
		}
		addr := normalizeEmail(*e.Email)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, e)
	}
	return out
}
