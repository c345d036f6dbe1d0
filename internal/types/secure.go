package types

// redactedPlaceholder replaces secret values in logs and serialization.
const redactedPlaceholder = "***REDACTED***"

var redactedJSON = []byte(`"***REDACTED***"`)

// SecretString is a string type that prevents accidental logging or
// serialization of sensitive values such as the messaging API token and the
// webhook signing secret. It overrides String() and MarshalJSON() to return
// a redacted placeholder, so secrets never leak through fmt functions,
// structured log entries, or JSON-serialized config dumps.
//
// Use Unmask() to retrieve the raw value at the point where it is genuinely
// needed (constructing an Authorization header, keying an HMAC).
type SecretString string

// String returns a redacted placeholder instead of the raw value.
func (s SecretString) String() string {
	return redactedPlaceholder
}

// MarshalJSON returns the redacted placeholder as a JSON string.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return redactedJSON, nil
}

// Unmask returns the raw plaintext value of the secret.
func (s SecretString) Unmask() string {
	return string(s)
}
