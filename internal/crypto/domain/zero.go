package domain

// Zero overwrites b with zeros so key material and transient plaintext do not
// linger in memory longer than needed.
func Zero(b []byte) {
	clear(b)
}
