// Package auth implements the challenge/response arithmetic of the
// guidance protocol. All values live in the 16-bit ring, so the modular
// reductions fall out of uint16 wraparound.
package auth

// UsernameHash computes (sum of username bytes * 1000) mod 2^16.
func UsernameHash(username string) uint16 {
	var h uint16
	for _, b := range []byte(username) {
		h += uint16(b) * 1000
	}
	return h
}

// ServerCode derives the code the server announces after the username.
func ServerCode(hash, serverKey uint16) uint16 {
	return hash + serverKey
}

// ClientCode derives the code a legitimate client replies with.
func ClientCode(hash, clientKey uint16) uint16 {
	return hash + clientKey
}

// VerifyClient reports whether a received confirmation code matches the
// username hash under the client key.
func VerifyClient(code, clientKey, hash uint16) bool {
	return code-clientKey == hash
}
