package types

type ReportData struct {
	Title            string
	Timestamp        string
	ExecutionMode    string
	Report           *RunReport
	Config           ReportConfig
	Statistics       ReportStatistics
	DestinationStats []DestinationStatistic
	Pairs            []PairStatus
	HasFailures      bool
}

type ReportConfig struct {
	Concurrency       int
	MaxRetries        int
	Language          string
	Platform          string
	TotalDestinations int
	Destinations      []string
}

type ReportStatistics struct {
	TotalJobs      int
	TotalPairs     int
	SuccessRate    float64
	FailureRate    float64
	ProcessingTime string
}

type DestinationStatistic struct {
	Kind         string
	PairCount    int
	SuccessCount int
	FailureCount int
	SuccessRate  float64
}

type PairStatus struct {
	Line        int
	SourceImage string
	Destination string
	Attempts    int
	Duration    string
	Status      string
	StatusClass string
	Error       string
}
