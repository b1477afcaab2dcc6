package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/media-confidence/aifaq/internal/domain"
)

// diagnosisBlockPattern matches the first fenced block labelled "diagnosis".
var diagnosisBlockPattern = regexp.MustCompile("```diagnosis\\r?\\n([\\s\\S]*?)\\r?\\n```")

// Extraction is the result of scanning one assistant reply.
type Extraction struct {
	// DisplayText is the reply with the diagnosis block removed.
	DisplayText string
	// Diagnosis is nil when no usable block was found.
	Diagnosis *domain.Diagnosis
}

// ExtractDiagnosis locates the diagnosis block in reply and decodes it.
// A missing or malformed block is not an error: Diagnosis is simply nil.
// A block whose fences are well formed is always stripped from the display
// text, even if its payload fails to decode.
func ExtractDiagnosis(reply string) Extraction {
	loc := diagnosisBlockPattern.FindStringSubmatchIndex(reply)
	if loc == nil {
		return Extraction{DisplayText: reply}
	}

	display := strings.TrimSpace(reply[:loc[0]] + reply[loc[1]:])
	payload := reply[loc[2]:loc[3]]

	d, ok := decodeDiagnosis(payload)
	if !ok {
		return Extraction{DisplayText: display}
	}
	return Extraction{DisplayText: display, Diagnosis: d}
}

// decodeDiagnosis is strict about presence-but-malformed fields and tolerant
// of absent optional ones.
func decodeDiagnosis(payload string) (*domain.Diagnosis, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil || fields == nil {
		return nil, false
	}

	rawDomain, ok := fields["domain"]
	if !ok {
		return nil, false
	}
	var slug string
	if err := json.Unmarshal(rawDomain, &slug); err != nil {
		return nil, false
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, false
	}

	keywords := []string{}
	if raw, ok := fields["keywords"]; ok && !isJSONNull(raw) {
		if err := json.Unmarshal(raw, &keywords); err != nil {
			return nil, false
		}
	}

	var summary string
	if raw, ok := fields["summary"]; ok && !isJSONNull(raw) {
		if err := json.Unmarshal(raw, &summary); err != nil {
			return nil, false
		}
	}

	return &domain.Diagnosis{
		Domain:   slug,
		Keywords: keywords,
		Summary:  summary,
	}, true
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
