// Package cryptobox derives keys from passwords and encrypts files in place.
//
// Keys are SHA-256(password), held in memguard locked buffers and destroyed
// after each file operation. The cipher is XChaCha20-Poly1305, so a wrong
// password fails authentication (ErrDecryption) instead of producing garbage.
//
// The derivation is a single unsalted hash pass. It is deterministic on
// purpose and is not a substitute for a salted, iterated KDF.
package cryptobox
