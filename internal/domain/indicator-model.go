package domain

// IndicatorValue is one economic indicator reading
type IndicatorValue struct {
	Code  string  `json:"codigo"`
	Name  string  `json:"nombre"`
	Unit  string  `json:"unidad_medida"`
	Date  string  `json:"fecha"`
	Value float64 `json:"valor"`
}

// Indicators holds the daily UF/USD/EUR values shown on the home screen
type Indicators struct {
	UF     IndicatorValue `json:"uf"`
	Dollar IndicatorValue `json:"dolar"`
	Euro   IndicatorValue `json:"euro"`
}
