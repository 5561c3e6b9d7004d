// internal/config/normalize.go
package config

import "strings"

// Normalize applies case normalization.
// It is allowed to mutate configuration.
// Validate accepts only the normalized forms.
func Normalize(d *Defaults) {
	if d == nil {
		return
	}

	d.Transport = Transport(strings.ToLower(string(d.Transport)))
	d.Serial.Parity = strings.ToUpper(d.Serial.Parity)
}
