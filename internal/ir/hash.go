package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future encoding migration.
const (
	DomainOperation = "abstrap/operation/v1"
	DomainAttribute = "abstrap/attribute/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of a finished
// operation tree. Two trees built by the same construction sequence with
// the same attribute payloads fingerprint identically, across processes
// and restarts. Returns an error if an attribute payload cannot be
// canonically marshaled.
func Fingerprint(op *Operation) (string, error) {
	enc, err := EncodeOperation(op)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: %w", err)
	}
	canonical, err := MarshalCanonical(enc)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainOperation, canonical), nil
}

// AttributeFingerprint computes the content-addressed identity of a
// single attribute payload.
func AttributeFingerprint(a Attribute) (string, error) {
	v, err := a.MarshalIR()
	if err != nil {
		return "", fmt.Errorf("AttributeFingerprint: %w", err)
	}
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("AttributeFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainAttribute, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(op *Operation) string {
	id, err := Fingerprint(op)
	if err != nil {
		panic(err)
	}
	return id
}
