package domain

// AllSatisfaction selects every satisfaction bucket, including rows with a
// missing bucket.
const AllSatisfaction = "All"

type Listing struct {
	RealSum            float64
	PricePerPerson     float64
	Dist               float64
	AttrIndex          float64
	PersonCapacity     float64
	RoomType           string
	TimePeriod         string
	DistanceBucket     string
	SatisfactionBucket string // empty when the source cell is missing
	HostIsSuperhost    bool
}

// FilterSelection is one request's filter state. An empty RoomTypes or
// TimePeriods leaves that dimension unfiltered.
type FilterSelection struct {
	RoomTypes    []string `json:"room_types"`
	TimePeriods  []string `json:"time_periods"`
	Satisfaction string   `json:"satisfaction"`
}

type PriceGroup struct {
	DistanceBucket string  `json:"distance_bucket"`
	RoomType       string  `json:"room_type"`
	TimePeriod     string  `json:"time_period"`
	AvgPrice       float64 `json:"avg_price"`
}
