package models

import "strings"

const (
	moodMarker     = "| Mood:"
	keywordsMarker = "| Keywords:"
)

// Draft содержимое формы редактора до сборки записи
type Draft struct {
	Title           string   `json:"title"`
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	MainImage       string   `json:"mainImage"`
	Gallery         []string `json:"gallery"`
	SpaceStructure  string   `json:"spaceStructure"`  // Уходит в prompts.composition
	ColorPalette    string   `json:"colorPalette"`    // Левая часть prompts.materials
	LightingShadows string   `json:"lightingShadows"` // Левая часть prompts.lighting
	Atmosphere      string   `json:"atmosphere"`      // Правая часть prompts.lighting после "| Mood:"
	Keywords        string   `json:"keywords"`        // Правая часть prompts.materials после "| Keywords:"
}

// DraftFromRecord заполняет форму из существующей записи
func DraftFromRecord(rec Record) Draft {
	lighting, atmosphere := splitMarker(rec.Prompts.Lighting, moodMarker)
	palette, keywords := splitMarker(rec.Prompts.Materials, keywordsMarker)

	return Draft{
		Title:           rec.Title,
		Subtitle:        rec.Subtitle,
		Description:     rec.Description,
		MainImage:       rec.MainImage,
		Gallery:         append([]string(nil), rec.Gallery...),
		SpaceStructure:  rec.Prompts.Composition,
		ColorPalette:    palette,
		LightingShadows: lighting,
		Atmosphere:      atmosphere,
		Keywords:        keywords,
	}
}

// LightingPrompt собирает "<освещение> | Mood: <атмосфера>"
func (d Draft) LightingPrompt() string {
	return joinMarker(d.LightingShadows, moodMarker, d.Atmosphere)
}

// MaterialsPrompt собирает "<палитра> | Keywords: <ключевые слова>"
func (d Draft) MaterialsPrompt() string {
	return joinMarker(d.ColorPalette, keywordsMarker, d.Keywords)
}

func joinMarker(head, marker, tail string) string {
	head = strings.TrimSpace(head)
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return head
	}
	if head == "" {
		return marker + " " + tail
	}
	return head + " " + marker + " " + tail
}

func splitMarker(s, marker string) (string, string) {
	head, tail, found := strings.Cut(s, marker)
	if !found {
		before, _, _ := strings.Cut(s, "|")
		return strings.TrimSpace(before), ""
	}
	return strings.TrimSpace(head), strings.TrimSpace(tail)
}
