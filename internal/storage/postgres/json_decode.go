// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package postgres

import (
	"bytes"
	"encoding/json"
)

// decodeJSONField unmarshals a jsonb column, leaving target untouched for SQL NULL or JSON null
func decodeJSONField(raw []byte, target any) error {
	if len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, target)
}

func encodeJSONField(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return raw, nil
}
