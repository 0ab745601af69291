package models

// SchemaType тип узла схемы ответа модели
type SchemaType string

const (
	SchemaArray  SchemaType = "ARRAY"
	SchemaObject SchemaType = "OBJECT"
	SchemaString SchemaType = "STRING"
	SchemaNumber SchemaType = "NUMBER"
)

// Schema описывает ожидаемую структуру JSON-ответа модели
type Schema struct {
	Type       SchemaType
	Items      *Schema
	Properties map[string]*Schema
	Required   []string
}

// GenerateOptions параметры одного запроса к генеративной модели
type GenerateOptions struct {
	Temperature *float32
	Schema      *Schema // Если задана, модель отвечает JSON по этой схеме
}
