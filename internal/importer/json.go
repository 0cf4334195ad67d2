package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrFormat is returned when a JSON file's top level is neither an array of
// records nor an envelope with a transactions array. This is the only
// blocking import error; everything below the top level is coerced.
var ErrFormat = errors.New("unrecognized backup format")

// envelope is the wrapped backup form written by export.
type envelope struct {
	Version      string      `json:"version"`
	CreatedAt    string      `json:"createdAt"`
	Transactions []RawRecord `json:"transactions"`
}

func parseJSON(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var bare []RawRecord
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Transactions != nil {
		return env.Transactions, nil
	}

	return nil, ErrFormat
}
