package ui

import (
	"encoding/json"

	"github.com/atotto/clipboard"

	"classdesk/internal/model"
)

// copyToClipboard copies text to the system clipboard.
func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// rowJSON renders st the way the API returns it.
func rowJSON(st model.Student) (string, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
