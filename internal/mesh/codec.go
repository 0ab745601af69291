package mesh

import (
	"encoding/json"
	"errors"
	"fmt"

	"xr_archive/internal/domain/models"
)

var ErrDecode = errors.New("malformed record payload")

var errStructuredScalar = errors.New("object or array where text is expected")

// wireRecord is the form a record takes inside the shared namespace.
// Nested fields travel as JSON strings because the substrate does not keep
// nested structures intact across peers.
type wireRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	MainImage   string `json:"mainImage"`
	Gallery     string `json:"gallery"`
	Hotspots    string `json:"hotspots"`
	Prompts     string `json:"prompts"`
}

// Encode converts a record into its wire payload.
func Encode(rec models.Record) ([]byte, error) {
	const op = "mesh.Encode"

	gallery, err := json.Marshal(nonNilGallery(rec.Gallery))
	if err != nil {
		return nil, fmt.Errorf("%s: gallery: %w", op, err)
	}
	hotspots, err := json.Marshal(nonNilHotspots(rec.Hotspots))
	if err != nil {
		return nil, fmt.Errorf("%s: hotspots: %w", op, err)
	}
	prompts, err := json.Marshal(rec.Prompts)
	if err != nil {
		return nil, fmt.Errorf("%s: prompts: %w", op, err)
	}

	payload, err := json.Marshal(wireRecord{
		ID:          rec.ID,
		Title:       rec.Title,
		Subtitle:    rec.Subtitle,
		Description: rec.Description,
		MainImage:   rec.MainImage,
		Gallery:     string(gallery),
		Hotspots:    string(hotspots),
		Prompts:     string(prompts),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return payload, nil
}

// Decode turns a wire payload received under key back into a record.
// Scalar fields are copied as they are: strings verbatim, numbers and
// booleans as their literal text. Nested fields are accepted both as
// JSON-encoded strings and as already structured values; an empty string
// is not valid JSON and rejects the record. The record id always comes
// from the key.
func Decode(key string, payload []byte) (models.Record, error) {
	const op = "mesh.Decode"

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return models.Record{}, fmt.Errorf("%s: %w: %v", op, ErrDecode, err)
	}
	if fields == nil {
		return models.Record{}, fmt.Errorf("%s: %w: not an object", op, ErrDecode)
	}

	rec := models.Record{ID: key}

	scalars := []struct {
		name string
		dst  *string
	}{
		{"title", &rec.Title},
		{"subtitle", &rec.Subtitle},
		{"description", &rec.Description},
		{"mainImage", &rec.MainImage},
	}
	for _, s := range scalars {
		if err := decodeScalar(fields[s.name], s.dst); err != nil {
			return models.Record{}, fmt.Errorf("%s: %w: %s: %v", op, ErrDecode, s.name, err)
		}
	}

	if err := decodeNested(fields["gallery"], &rec.Gallery); err != nil {
		return models.Record{}, fmt.Errorf("%s: %w: gallery: %v", op, ErrDecode, err)
	}
	if err := decodeNested(fields["hotspots"], &rec.Hotspots); err != nil {
		return models.Record{}, fmt.Errorf("%s: %w: hotspots: %v", op, ErrDecode, err)
	}
	if err := decodeNested(fields["prompts"], &rec.Prompts); err != nil {
		return models.Record{}, fmt.Errorf("%s: %w: prompts: %v", op, ErrDecode, err)
	}

	rec.Gallery = nonNilGallery(rec.Gallery)
	rec.Hotspots = nonNilHotspots(rec.Hotspots)

	return rec, nil
}

func decodeScalar(raw json.RawMessage, dst *string) error {
	if isAbsent(raw) {
		return nil
	}

	switch raw[0] {
	case '"':
		return json.Unmarshal(raw, dst)
	case '{', '[':
		return errStructuredScalar
	}

	*dst = string(raw)
	return nil
}

func decodeNested(raw json.RawMessage, dst any) error {
	if isAbsent(raw) {
		return nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return err
		}
		return json.Unmarshal([]byte(encoded), dst)
	}

	return json.Unmarshal(raw, dst)
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func nonNilGallery(g []string) []string {
	if g == nil {
		return []string{}
	}
	return g
}

func nonNilHotspots(h []models.Hotspot) []models.Hotspot {
	if h == nil {
		return []models.Hotspot{}
	}
	return h
}
