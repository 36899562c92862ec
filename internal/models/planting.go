package models

// PlantingRequest is the body of POST /planting
type PlantingRequest struct {
	Lat      *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon      *float64 `json:"lon" binding:"required,min=-180,max=180"`
	CropName string   `json:"cropName" binding:"required,max=100"`
}

type PlantingStatus string

const (
	PlantingStatusGood PlantingStatus = "good"
	PlantingStatusWait PlantingStatus = "wait"
	PlantingStatusRisk PlantingStatus = "risk"
)

type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskFactor is a named condition flagged by the scorer
type RiskFactor struct {
	Factor      string    `json:"factor"`
	Level       RiskLevel `json:"level"`
	Description string    `json:"description"`
	Mitigation  string    `json:"mitigation,omitempty"`
}

// PlantingWindow is the best day to plant within the next week
type PlantingWindow struct {
	DayIndex      int    `json:"dayIndex"`
	Date          string `json:"date"`
	FormattedDate string `json:"formattedDate"`
	Reason        string `json:"reason"`
}

// RainfallAnalysis holds the derived rainfall figures for a forecast window
type RainfallAnalysis struct {
	Next7DaysRain  float64
	Next14DaysRain float64
	MaxDailyRain   float64
	RainyDays      int
	DrySpellRisk   bool
}

// TemperatureAnalysis holds the derived temperature figures for a forecast window
type TemperatureAnalysis struct {
	AvgMaxTemp     float64
	AvgMinTemp     float64
	AvgTemp        float64
	TempVariation  float64
	MinTemp        float64
	MaxTemp        float64
	FrostRisk      bool
	HeatStressRisk bool
}

// ScoringResult is the outcome of one scorer run. It is never mutated after it is returned.
type ScoringResult struct {
	Recommendation     string
	Status             PlantingStatus
	Details            string
	Timing             string
	Confidence         int
	RainfallScore      int
	TemperatureScore   int
	TimingScore        int
	Rainfall           RainfallAnalysis
	Temperature        TemperatureAnalysis
	OptimalTemp        Range
	RiskFactors        []RiskFactor
	BestPlantingWindow PlantingWindow
	SoilPreparation    []string
}

// PlantingResponse is the payload of POST /planting
type PlantingResponse struct {
	Recommendation     string            `json:"recommendation"`
	Status             PlantingStatus    `json:"status"`
	Details            string            `json:"details"`
	Timing             string            `json:"timing"`
	Confidence         int               `json:"confidence"`
	Analysis           PlantingAnalysis  `json:"analysis"`
	RiskFactors        []RiskFactor      `json:"riskFactors"`
	BestPlantingWindow PlantingWindow    `json:"bestPlantingWindow"`
	CropInfo           *CropInfo         `json:"cropInfo"`
	SoilPreparation    []string          `json:"soilPreparation"`
	HistoricalContext  HistoricalContext `json:"historicalContext"`
	Data               PlantingData      `json:"data"`
}

type PlantingAnalysis struct {
	Rainfall    RainfallSummary    `json:"rainfall"`
	Temperature TemperatureSummary `json:"temperature"`
	Scores      ScoreSummary       `json:"scores"`
}

type RainfallSummary struct {
	Next7Days    float64             `json:"next7Days"`
	Next14Days   float64             `json:"next14Days"`
	RainyDays    int                 `json:"rainyDays"`
	Distribution []RainfallDataPoint `json:"distribution"`
	Verdict      string              `json:"verdict"`
}

type RainfallDataPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type TemperatureSummary struct {
	AvgMax       float64                `json:"avgMax"`
	AvgMin       float64                `json:"avgMin"`
	Average      float64                `json:"average"`
	OptimalRange Range                  `json:"optimalRange"`
	Distribution []TemperatureDataPoint `json:"distribution"`
	Verdict      string                 `json:"verdict"`
}

type TemperatureDataPoint struct {
	Date string  `json:"date"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

type ScoreSummary struct {
	Rainfall    int `json:"rainfall"`
	Temperature int `json:"temperature"`
	Timing      int `json:"timing"`
	Overall     int `json:"overall"`
}

type HistoricalContext struct {
	TypicalRainySeasonStart string `json:"typicalRainySeasonStart"`
	TypicalRainySeasonEnd   string `json:"typicalRainySeasonEnd"`
	DroughtProbability      string `json:"droughtProbability"`
}

// PlantingData carries the raw inputs the advice was computed from
type PlantingData struct {
	Forecast OpenMeteoDaily     `json:"forecast"`
	History  HistoricalInsights `json:"history"`
}
