package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fixed reply texts for the pipeline failure modes. The wording is part of
// the product surface and does not vary with the configured provider.
const (
	MsgInvalidResponse     = "Invalid response format from the Gemini API."
	MsgContactError        = "An error occurred while contacting the Gemini API."
	MsgUnexpectedStructure = "Unexpected response structure from the Gemini API."
)

// AnswerResult wraps plain text as a Result carrying only an answer.
func AnswerResult(text string) Result {
	raw, _ := json.Marshal(text)
	return Result{Answer: raw}
}

// DecodeResult interprets a raw model reply. A reply that opens with '{' is
// never parsed: it is wrapped verbatim as a plain answer. Any other reply is
// parsed as a JSON object. The asymmetry is inherited behavior and must stay:
// structured shapes only render when the model emits leading whitespace
// before the JSON object, and brace-prefixed replies always come back as
// opaque text.
func DecodeResult(raw string) (Result, error) {
	if strings.HasPrefix(raw, "{") {
		return AnswerResult(raw), nil
	}
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return Result{}, fmt.Errorf("decode model reply: %w", err)
	}
	return res, nil
}
