package models

import "time"

// Entity type tags carried in ChangeRecord.EntityType
const (
	EntityTypeSample     = "sample"
	EntityTypeTestResult = "test_result"
	EntityTypeSite       = "site"
)

// KnownEntityTypes — whitelist типов сущностей, участвующих в синхронизации.
// Запись с неизвестным типом отклоняется валидацией (bucket rejected).
var KnownEntityTypes = map[string]bool{
	EntityTypeSample:     true,
	EntityTypeTestResult: true,
	EntityTypeSite:       true,
}

// Sample представляет пробу воды, отобранную на точке контроля.
// Сериализуется в ChangeRecord.Payload.
type Sample struct {
	CollectedAt time.Time `json:"collected_at"` // CollectedAt время отбора пробы
	SiteID      string    `json:"site_id"`      // SiteID точка отбора
	CollectedBy string    `json:"collected_by"` // CollectedBy кто отобрал пробу
	Medium      string    `json:"medium"`       // Medium среда: "drinking", "surface", "waste"
	Notes       string    `json:"notes,omitempty"`
}

// TestResult представляет результат лабораторного анализа пробы.
type TestResult struct {
	MeasuredAt time.Time `json:"measured_at"` // MeasuredAt время измерения
	SampleID   string    `json:"sample_id"`   // SampleID ссылка на пробу
	Analyte    string    `json:"analyte"`     // Analyte определяемый показатель: "pH", "nitrate", ...
	Unit       string    `json:"unit"`        // Unit единица измерения
	Method     string    `json:"method"`      // Method метод анализа
	Value      float64   `json:"value"`       // Value измеренное значение
}

// Site представляет точку отбора проб.
type Site struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
