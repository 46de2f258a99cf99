package report

// RecapItem is one row of the daily dashboard recap.
type RecapItem struct {
	EmployeeID   string  `json:"employee_id,omitempty"`
	Name         string  `json:"name"`
	Time         string  `json:"time"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason"`
	CheckInTime  *string `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
}

type RecapCounts struct {
	OnTime int `json:"on_time"`
	Late   int `json:"late"`
	Absent int `json:"absent"`
}

type TodayRecapResponse struct {
	Date   string      `json:"date"`
	Counts RecapCounts `json:"counts"`
	Items  []RecapItem `json:"items"`
}
