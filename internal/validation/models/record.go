package models

// CanonicalRecord is the trusted stored document a process is validated against.
// Values are strings, numbers, booleans, nested objects or lists as decoded from the store.
type CanonicalRecord map[string]any

// String returns the field as a string when it is present and is one.
func (r CanonicalRecord) String(field string) (string, bool) {
	v, ok := r[field].(string)
	return v, ok
}

// Contact extracts the contact attribute copied onto a new process. Non-string
// and missing values yield nil.
func (r CanonicalRecord) Contact(field string) *string {
	v, ok := r.String(field)
	if !ok {
		return nil
	}
	return &v
}

// Verified reads the nested verification.verified flag. Anything other than a boolean true
// counts as unverified.
func (r CanonicalRecord) Verified() bool {
	verification, ok := r["verification"].(map[string]any)
	if !ok {
		return false
	}
	verified, _ := verification["verified"].(bool)
	return verified
}
