package models

import "time"

// DocumentHash is the lowercase hex SHA-256 of a document's bytes, the sole
// identifier used for verification and reporting.
type DocumentHash string

func (h DocumentHash) String() string {
	return string(h)
}

// VerificationMethod tags how the hash reached the client. It is sent with
// the verification request for auditability and never affects the verdict.
type VerificationMethod string

const (
	MethodUpload    VerificationMethod = "UPLOAD"
	MethodQRScan    VerificationMethod = "QR_SCAN"
	MethodHashInput VerificationMethod = "HASH_INPUT"
)

// ResultCode is the categorical outcome of a verification. Codes outside
// this set may arrive from the backend and must render fail-closed.
type ResultCode string

const (
	ResultAuthentic        ResultCode = "AUTHENTIC"
	ResultInvalidSignature ResultCode = "INVALID_SIGNATURE"
	ResultNotFound         ResultCode = "NOT_FOUND"
	ResultRevoked          ResultCode = "REVOKED"
)

type Institution struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// DocumentInfo is present only on AUTHENTIC results.
type DocumentInfo struct {
	Institution Institution `json:"institution"`
	SignedAt    time.Time   `json:"signed_at"`
}

// VerificationResult is the normalized backend response. DocumentHash is
// always set client-side from the input, even when the backend omits it.
type VerificationResult struct {
	Result         ResultCode    `json:"result"`
	DocumentHash   DocumentHash  `json:"document_hash"`
	Document       *DocumentInfo `json:"document,omitempty"`
	CertificateURL string        `json:"certificate_url,omitempty"`
}

// VerifyRequest is the wire shape of POST /api/v1/verifications/verify/hash.
type VerifyRequest struct {
	DocumentHash DocumentHash       `json:"document_hash"`
	Method       VerificationMethod `json:"method"`
}
