package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-india-travel-guide/internal/types"
)

// Decoded is the outcome of parsing a structured response: either the typed
// records, or the reason they could not be produced.
type Decoded[T any] struct {
	Records []T
	OK      bool
	Reason  string
}

func decodeFailure[T any](format string, args ...any) Decoded[T] {
	return Decoded[T]{Reason: fmt.Sprintf(format, args...)}
}

// cleanJSONResponse strips markdown fences and any prose around the outermost
// JSON array or object.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSpace(strings.TrimSuffix(response, "```"))

	start := strings.IndexAny(response, "[{")
	if start == -1 {
		return response
	}
	closing := "]"
	if response[start] == '{' {
		closing = "}"
	}
	end := strings.LastIndex(response, closing)
	if end <= start {
		return response
	}
	return strings.TrimSpace(response[start : end+1])
}

// decodeRecords parses raw as a JSON array of T. An object wrapping the array
// under wrapperKey is accepted too, since models sometimes add one.
func decodeRecords[T any](raw, wrapperKey string) Decoded[T] {
	cleaned := cleanJSONResponse(raw)
	if cleaned == "" {
		return decodeFailure[T]("empty response")
	}

	var records []T
	switch cleaned[0] {
	case '[':
		if err := json.Unmarshal([]byte(cleaned), &records); err != nil {
			return decodeFailure[T]("invalid JSON array: %v", err)
		}
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
			return decodeFailure[T]("invalid JSON object: %v", err)
		}
		inner, ok := wrapper[wrapperKey]
		if !ok {
			return decodeFailure[T]("object has no %q field", wrapperKey)
		}
		if err := json.Unmarshal(inner, &records); err != nil {
			return decodeFailure[T]("invalid %q field: %v", wrapperKey, err)
		}
	default:
		return decodeFailure[T]("response is not JSON")
	}

	if records == nil {
		records = []T{}
	}
	return Decoded[T]{Records: records, OK: true}
}

// validated keeps at most limit records that pass check and returns the
// reasons for the dropped ones.
func validated[T any](records []T, limit int, check func(T) error) ([]T, []string) {
	out := make([]T, 0, min(len(records), limit))
	var dropped []string
	for i, r := range records {
		if err := check(r); err != nil {
			dropped = append(dropped, fmt.Sprintf("record %d: %v", i, err))
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, r)
	}
	return out, dropped
}

func checkRestaurant(r types.Restaurant) error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("rating %v out of range", r.Rating)
	}
	return nil
}

func checkHotel(h types.Hotel) error {
	if strings.TrimSpace(h.Name) == "" {
		return errors.New("missing name")
	}
	if h.StarRating < 0 || h.StarRating > 5 {
		return fmt.Errorf("star rating %v out of range", h.StarRating)
	}
	return nil
}

func generateCacheKey(operation string, parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return operation + ":" + strings.Join(parts, ":")
}
