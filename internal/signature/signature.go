// Package signature builds the DEAuth header value sent with every webhook
// call.
//
// The value is base64(credential + token). It is reversible and unkeyed: it
// deters casual tampering but anyone who knows the scheme can forge it, and
// without a nonce or timestamp a captured value can be replayed. Deployments
// that need integrity or authenticity should replace it with a keyed MAC over
// the request plus a timestamp.
package signature

import "encoding/base64"

// Sign returns the transport signature for credential and token. Equal
// inputs always give equal output. The caller rejects an empty credential.
func Sign(credential, token string) string {
	return base64.StdEncoding.EncodeToString([]byte(credential + token))
}
