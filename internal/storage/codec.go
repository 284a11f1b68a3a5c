package storage

import (
	"encoding/json"
	"fmt"
)

func encode(key string, value any) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrEncodeFailed, key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w %q: %v", ErrDecodeFailed, key, err)
	}
	return nil
}
