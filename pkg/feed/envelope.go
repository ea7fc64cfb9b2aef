package feed

import "github.com/tidwall/gjson"

// Envelope fields checked when the body is not a bare array, in priority
// order.
var envelopeFields = []string{"products", "smartphones", "items"}

// Items extracts the raw product sequence from a response body, tolerating
// the envelope shapes deal feeds are known to use: a bare array, a named
// list field, or a "data" field (wrapped in a one-element sequence when it
// is not already a list). Anything else yields an empty sequence.
func Items(body string) []gjson.Result {
	if !gjson.Valid(body) {
		return nil
	}

	parsed := gjson.Parse(body)
	if parsed.IsArray() {
		return parsed.Array()
	}

	for _, field := range envelopeFields {
		if v := parsed.Get(field); v.Exists() {
			return v.Array()
		}
	}

	if data := parsed.Get("data"); data.Exists() {
		// gjson wraps non-array values in a one-element slice here, which
		// is exactly the single-object tolerance we want.
		return data.Array()
	}

	return nil
}
