package domain

// PerformanceDataPoint es el capital al cierre de un día de trading.
// Los días se numeran secuencialmente desde 1; los días más allá del histórico
// real son extrapolados por el generador de series.
type PerformanceDataPoint struct {
	Day     int     `json:"day"`
	Capital float64 `json:"capital"`
}

// DailyReturn es el retorno porcentual día-contra-día, alineado índice a
// índice con la serie de PerformanceDataPoint.
type DailyReturn struct {
	Day    int     `json:"day"`
	Return float64 `json:"return"` // porcentaje, redondeado a 1 decimal
}
